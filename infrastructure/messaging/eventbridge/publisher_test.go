package eventbridge

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"compass/domain/events"
)

type fakePutEventsClient struct {
	inputs []*awsbridge.PutEventsInput
	output *awsbridge.PutEventsOutput
}

func (c *fakePutEventsClient) PutEvents(ctx context.Context, params *awsbridge.PutEventsInput, optFns ...func(*awsbridge.Options)) (*awsbridge.PutEventsOutput, error) {
	c.inputs = append(c.inputs, params)
	if c.output != nil {
		return c.output, nil
	}
	return &awsbridge.PutEventsOutput{
		Entries: make([]types.PutEventsResultEntry, len(params.Entries)),
	}, nil
}

// brokenEvent cannot be marshalled to JSON
type brokenEvent struct {
	events.BaseEvent
	Payload chan struct{} `json:"payload"`
}

func TestPublishBatch_SendsEntries(t *testing.T) {
	client := &fakePutEventsClient{}
	publisher := NewPublisher(client, "compass-events", zap.NewNop())

	saved := events.NewItinerarySaved("itin-1", "user-1", "Paris", true, time.Now())
	require.NoError(t, publisher.Publish(context.Background(), saved))

	require.Len(t, client.inputs, 1)
	entries := client.inputs[0].Entries
	require.Len(t, entries, 1)
	assert.Equal(t, events.EventItinerarySaved, aws.ToString(entries[0].DetailType))
	assert.Equal(t, "compass-events", aws.ToString(entries[0].EventBusName))
}

func TestPublishBatch_FailureLogNamesTheSentEvent(t *testing.T) {
	// The first event cannot be marshalled and is skipped, so the single
	// rejected entry must map back to the deleted event, not the broken one
	client := &fakePutEventsClient{
		output: &awsbridge.PutEventsOutput{
			FailedEntryCount: 1,
			Entries: []types.PutEventsResultEntry{{
				ErrorCode:    aws.String("ThrottlingException"),
				ErrorMessage: aws.String("rate exceeded"),
			}},
		},
	}
	core, logs := observer.New(zap.ErrorLevel)
	publisher := NewPublisher(client, "compass-events", zap.New(core))

	broken := brokenEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: "itin-0",
			EventType:   "itinerary.broken",
			Timestamp:   time.Now(),
			UserID:      "user-1",
		},
		Payload: make(chan struct{}),
	}
	deleted := events.NewItineraryDeleted("itin-1", "user-1", time.Now())

	err := publisher.PublishBatch(context.Background(), []events.DomainEvent{broken, deleted})
	require.Error(t, err)

	require.Len(t, client.inputs, 1)
	require.Len(t, client.inputs[0].Entries, 1)
	assert.Equal(t, events.EventItineraryDeleted, aws.ToString(client.inputs[0].Entries[0].DetailType))

	failures := logs.FilterMessage("Failed to publish event").All()
	require.Len(t, failures, 1)
	assert.Equal(t, events.EventItineraryDeleted, failures[0].ContextMap()["eventType"])
}
