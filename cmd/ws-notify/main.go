// Package main implements the itinerary-change notification Lambda. An
// EventBridge rule routes itinerary events here, and each one is pushed to
// the owning user's open WebSocket connections so other devices refresh
// their saved list.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"compass/application/ports"
	"compass/infrastructure/notify"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

var notifier ports.Notifier

// eventDetail is the slice of the published event this handler needs
type eventDetail struct {
	AggregateID string `json:"aggregate_id"`
	EventType   string `json:"event_type"`
	UserID      string `json:"user_id"`
}

func init() {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	endpoint := os.Getenv("WEBSOCKET_API_ENDPOINT")
	if endpoint == "" {
		log.Fatal("WEBSOCKET_API_ENDPOINT is required")
	}

	connectionsTable := os.Getenv("CONNECTIONS_TABLE")
	if connectionsTable == "" {
		connectionsTable = "compass-connections"
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	apiGwClient := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	notifier = notify.NewWebSocketNotifier(
		dynamodb.NewFromConfig(cfg),
		apiGwClient,
		connectionsTable,
		logger,
	)
}

func handler(ctx context.Context, event events.CloudWatchEvent) error {
	var detail eventDetail
	if err := json.Unmarshal(event.Detail, &detail); err != nil {
		return fmt.Errorf("failed to parse event detail: %w", err)
	}
	if detail.UserID == "" {
		log.Printf("Dropping %s event without a user", event.DetailType)
		return nil
	}

	return notifier.NotifyUser(ctx, detail.UserID, map[string]string{
		"event":       detail.EventType,
		"itineraryId": detail.AggregateID,
	})
}

func main() {
	lambda.Start(handler)
}
