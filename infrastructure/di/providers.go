package di

import (
	"context"

	"compass/application/commands/bus"
	cmdhandlers "compass/application/commands/handlers"
	"compass/application/ports"
	querybus "compass/application/queries/bus"
	qryhandlers "compass/application/queries/handlers"
	"compass/application/services"
	"compass/infrastructure/ai"
	"compass/infrastructure/config"
	"compass/infrastructure/geocode"
	"compass/infrastructure/messaging"
	"compass/infrastructure/messaging/eventbridge"
	"compass/infrastructure/persistence/dynamodb"
	"compass/infrastructure/persistence/memory"
	"compass/interfaces/http/rest"
	"compass/interfaces/http/rest/handlers"
	"compass/pkg/auth"
	"compass/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideMetrics creates the metrics recorder
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	return observability.NewMetrics(client, logger, cfg.EnableMetrics)
}

// ProvideItineraryRepository creates an itinerary repository. Development
// runs against an in-memory store so the API works without AWS credentials.
func ProvideItineraryRepository(
	client *awsdynamodb.Client,
	cfg *config.Config,
	metrics *observability.Metrics,
	logger *zap.Logger,
) ports.ItineraryRepository {
	if cfg.IsDevelopment() {
		return memory.NewItineraryRepository()
	}
	return dynamodb.NewItineraryRepository(client, cfg.DynamoDBTable, metrics, logger)
}

// ProvideUserRepository creates a user repository
func ProvideUserRepository(
	client *awsdynamodb.Client,
	cfg *config.Config,
	logger *zap.Logger,
) ports.UserRepository {
	if cfg.IsDevelopment() {
		return memory.NewUserRepository()
	}
	return dynamodb.NewUserRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEventPublisher creates the domain event publisher. Without a
// configured bus name events are dropped, which is the local-dev mode.
func ProvideEventPublisher(
	client *awseventbridge.Client,
	cfg *config.Config,
	logger *zap.Logger,
) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return messaging.NewNoopPublisher()
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer("compass", cfg.EnableTracing)
}

// ProvidePlanner creates the OpenAI-backed plan generator
func ProvidePlanner(cfg *config.Config, metrics *observability.Metrics, tracer *observability.Tracer, logger *zap.Logger) ports.Planner {
	return ai.NewOpenAIPlanner(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger,
		ai.WithTimeout(cfg.GenerationTimeout),
		ai.WithMetrics(metrics),
		ai.WithTracer(tracer),
	)
}

// ProvideGeocoder creates the map-location geocoder
func ProvideGeocoder(cfg *config.Config, logger *zap.Logger) ports.Geocoder {
	return geocode.NewNominatimGeocoder(cfg.GeocoderBaseURL, cfg.GeocoderUserAgent, logger)
}

// ProvideSessionManager creates the per-user planner session manager
func ProvideSessionManager() *services.SessionManager {
	return services.NewSessionManager()
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	itineraryRepo ports.ItineraryRepository,
	publisher ports.EventPublisher,
	sessions *services.SessionManager,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus()
	err := cmdhandlers.RegisterAll(commandBus,
		cmdhandlers.NewSaveItineraryHandler(itineraryRepo, publisher, sessions, logger),
		cmdhandlers.NewUpdateItineraryHandler(itineraryRepo, publisher, sessions, logger),
		cmdhandlers.NewDeleteItineraryHandler(itineraryRepo, publisher, sessions, logger),
	)
	if err != nil {
		return nil, err
	}
	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	itineraryRepo ports.ItineraryRepository,
	sessions *services.SessionManager,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()
	err := qryhandlers.RegisterAll(queryBus,
		qryhandlers.NewListItinerariesHandler(itineraryRepo, sessions, logger),
		qryhandlers.NewGetItineraryHandler(itineraryRepo, logger),
	)
	if err != nil {
		return nil, err
	}
	return queryBus, nil
}

// ProvideJWTValidator creates the token validator used by the auth middleware
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideJWTGenerator creates the token issuer used by register and login
func ProvideJWTGenerator(cfg *config.Config) (*auth.JWTGenerator, error) {
	return auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideRouter creates the HTTP router with all handlers wired
func ProvideRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	userRepo ports.UserRepository,
	generator *auth.JWTGenerator,
	validator *auth.JWTValidator,
	sessions *services.SessionManager,
	planner ports.Planner,
	geocoder ports.Geocoder,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(
		handlers.NewAuthHandler(userRepo, generator, logger),
		handlers.NewItineraryHandler(commandBus, queryBus, sessions, logger),
		handlers.NewPlannerHandler(sessions, planner, geocoder, queryBus, logger),
		validator,
		cfg.EnableCORS,
		logger,
	)
}
