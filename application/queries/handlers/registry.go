package handlers

import (
	"context"
	"fmt"

	"compass/application/queries"
	"compass/application/queries/bus"
)

// RegisterAll wires the itinerary query handlers into the query bus
func RegisterAll(
	queryBus *bus.QueryBus,
	list *ListItinerariesHandler,
	get *GetItineraryHandler,
) error {
	if err := queryBus.Register(queries.ListItinerariesQuery{}, bus.QueryHandlerFunc(
		func(ctx context.Context, query bus.Query) (interface{}, error) {
			q, ok := query.(queries.ListItinerariesQuery)
			if !ok {
				return nil, fmt.Errorf("unexpected query type %T", query)
			}
			return list.Handle(ctx, q)
		},
	)); err != nil {
		return err
	}

	return queryBus.Register(queries.GetItineraryQuery{}, bus.QueryHandlerFunc(
		func(ctx context.Context, query bus.Query) (interface{}, error) {
			q, ok := query.(queries.GetItineraryQuery)
			if !ok {
				return nil, fmt.Errorf("unexpected query type %T", query)
			}
			return get.Handle(ctx, q)
		},
	))
}
