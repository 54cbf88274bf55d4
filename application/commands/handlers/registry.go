package handlers

import (
	"context"
	"fmt"

	"compass/application/commands"
	"compass/application/commands/bus"
)

// RegisterAll wires the itinerary command handlers into the command bus
func RegisterAll(
	commandBus *bus.CommandBus,
	save *SaveItineraryHandler,
	update *UpdateItineraryHandler,
	del *DeleteItineraryHandler,
) error {
	if err := commandBus.Register(commands.SaveItineraryCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) error {
			c, ok := cmd.(commands.SaveItineraryCommand)
			if !ok {
				return fmt.Errorf("unexpected command type %T", cmd)
			}
			_, err := save.Handle(ctx, c)
			return err
		},
	)); err != nil {
		return err
	}

	if err := commandBus.Register(commands.UpdateItineraryCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) error {
			c, ok := cmd.(commands.UpdateItineraryCommand)
			if !ok {
				return fmt.Errorf("unexpected command type %T", cmd)
			}
			_, err := update.Handle(ctx, c)
			return err
		},
	)); err != nil {
		return err
	}

	return commandBus.Register(commands.DeleteItineraryCommand{}, bus.CommandHandlerFunc(
		func(ctx context.Context, cmd bus.Command) error {
			c, ok := cmd.(commands.DeleteItineraryCommand)
			if !ok {
				return fmt.Errorf("unexpected command type %T", cmd)
			}
			return del.Handle(ctx, c)
		},
	))
}
