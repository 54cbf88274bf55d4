package notify

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"compass/application/ports"
)

// UserConnectionsIndexName is the connections-table GSI keyed by user, so a
// notification fans out to every device the user has open
const UserConnectionsIndexName = "user-connections-index"

// WebSocketNotifier pushes itinerary-change messages to a user's active
// WebSocket connections through the API Gateway Management API. Clients use
// the push to refresh their local list after another device mutates it.
type WebSocketNotifier struct {
	dynamoClient     *dynamodb.Client
	apiGwClient      *apigatewaymanagementapi.Client
	connectionsTable string
	logger           *zap.Logger
}

// NewWebSocketNotifier creates a notifier backed by a connections table
func NewWebSocketNotifier(
	dynamoClient *dynamodb.Client,
	apiGwClient *apigatewaymanagementapi.Client,
	connectionsTable string,
	logger *zap.Logger,
) ports.Notifier {
	return &WebSocketNotifier{
		dynamoClient:     dynamoClient,
		apiGwClient:      apiGwClient,
		connectionsTable: connectionsTable,
		logger:           logger,
	}
}

type pushMessage struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NotifyUser sends a message to every active connection for the user.
// A connection that has gone away is cleaned up rather than failing the send;
// the method only errors when the connection lookup itself fails.
func (n *WebSocketNotifier) NotifyUser(ctx context.Context, userID string, message interface{}) error {
	connectionIDs, err := n.connectionsForUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(connectionIDs) == 0 {
		return nil
	}

	payload, err := json.Marshal(pushMessage{
		Type:      "itineraries.changed",
		Timestamp: time.Now().Unix(),
		Data:      message,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push message: %w", err)
	}

	for _, connectionID := range connectionIDs {
		_, err := n.apiGwClient.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(connectionID),
			Data:         payload,
		})
		if err != nil {
			var gone *apigwtypes.GoneException
			if stderrors.As(err, &gone) {
				n.removeConnection(ctx, connectionID)
				continue
			}
			n.logger.Warn("Failed to push to connection",
				zap.String("connectionID", connectionID),
				zap.String("userID", userID),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (n *WebSocketNotifier) connectionsForUser(ctx context.Context, userID string) ([]string, error) {
	result, err := n.dynamoClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(n.connectionsTable),
		IndexName:              aws.String(UserConnectionsIndexName),
		KeyConditionExpression: aws.String("UserID = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}

	connectionIDs := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		if connID, ok := item["ConnectionID"].(*types.AttributeValueMemberS); ok {
			connectionIDs = append(connectionIDs, connID.Value)
		}
	}
	return connectionIDs, nil
}

func (n *WebSocketNotifier) removeConnection(ctx context.Context, connectionID string) {
	_, err := n.dynamoClient.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(n.connectionsTable),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("CONN#%s", connectionID)},
		},
	})
	if err != nil {
		n.logger.Warn("Failed to remove stale connection",
			zap.String("connectionID", connectionID),
			zap.Error(err),
		)
		return
	}
	n.logger.Debug("Removed stale connection", zap.String("connectionID", connectionID))
}
