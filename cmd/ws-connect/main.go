// Package main implements the WebSocket $connect Lambda. It authenticates
// the caller and registers the connection so itinerary-change notifications
// can reach every device the user has open.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"compass/pkg/auth"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var (
	dynamoClient *dynamodb.Client
	validator    *auth.JWTValidator
)

func init() {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	dynamoClient = dynamodb.NewFromConfig(cfg)

	validator, err = auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: os.Getenv("JWT_SECRET"),
		Issuer:    getEnv("JWT_ISSUER", "compass-backend"),
	})
	if err != nil {
		log.Fatalf("Failed to create JWT validator: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func connectionsTable() string {
	return getEnv("CONNECTIONS_TABLE", "compass-connections")
}

// storeConnection registers the connection under the user so the notifier's
// user index can fan out to it. A TTL reaps connections that never
// disconnect cleanly.
func storeConnection(ctx context.Context, connectionID, userID, endpoint string) error {
	now := time.Now()
	item := map[string]types.AttributeValue{
		"PK":           &types.AttributeValueMemberS{Value: fmt.Sprintf("CONN#%s", connectionID)},
		"ConnectionID": &types.AttributeValueMemberS{Value: connectionID},
		"UserID":       &types.AttributeValueMemberS{Value: userID},
		"ConnectedAt":  &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		"Endpoint":     &types.AttributeValueMemberS{Value: endpoint},
		"TTL":          &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", now.Add(24*time.Hour).Unix())},
	}

	_, err := dynamoClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(connectionsTable()),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to store connection: %w", err)
	}
	return nil
}

func extractToken(request events.APIGatewayWebsocketProxyRequest) string {
	if token := request.QueryStringParameters["token"]; token != "" {
		return token
	}
	header := request.Headers["Authorization"]
	return strings.TrimPrefix(header, "Bearer ")
}

func handler(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID

	claims, err := validator.ValidateToken(extractToken(request))
	if err != nil {
		log.Printf("Authentication failed for connection %s: %v", connectionID, err)
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusUnauthorized,
			Body:       `{"error": "unauthorized"}`,
		}, nil
	}

	endpoint := fmt.Sprintf("%s/%s", request.RequestContext.DomainName, request.RequestContext.Stage)
	if err := storeConnection(ctx, connectionID, claims.UserID, endpoint); err != nil {
		log.Printf("Failed to store connection %s: %v", connectionID, err)
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"error": "internal server error"}`,
		}, nil
	}

	log.Printf("Connection %s established for user %s", connectionID, claims.UserID)
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Body:       `{"status": "connected"}`,
	}, nil
}

func main() {
	lambda.Start(handler)
}
