package di

import (
	"compass/application/commands/bus"
	"compass/application/ports"
	querybus "compass/application/queries/bus"
	"compass/application/services"
	"compass/infrastructure/config"
	"compass/interfaces/http/rest"
	"compass/pkg/auth"
	"compass/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	Metrics       *observability.Metrics
	Tracer        *observability.Tracer
	ItineraryRepo ports.ItineraryRepository
	UserRepo      ports.UserRepository
	Publisher     ports.EventPublisher
	Planner       ports.Planner
	Geocoder      ports.Geocoder
	Sessions      *services.SessionManager
	CommandBus    *bus.CommandBus
	QueryBus      *querybus.QueryBus
	JWTValidator  *auth.JWTValidator
	JWTGenerator  *auth.JWTGenerator
	Router        *rest.Router
}
