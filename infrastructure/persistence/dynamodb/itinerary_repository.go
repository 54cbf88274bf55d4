package dynamodb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"compass/application/ports"
	"compass/domain/core/entities"
	"compass/domain/core/validators"
	"compass/domain/core/valueobjects"
	"compass/pkg/errors"
	"compass/pkg/observability"
)

// CreatedAtIndexName is the GSI that orders a user's itineraries by creation
// time, so listing never needs a client-side sort
const CreatedAtIndexName = "CreatedAtIndex"

// ItineraryRepository implements the ItineraryRepository port on a DynamoDB
// single table: PK USER#{uid}, SK ITIN#{id}
type ItineraryRepository struct {
	client    *dynamodb.Client
	tableName string
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewItineraryRepository creates a new DynamoDB itinerary repository
func NewItineraryRepository(client *dynamodb.Client, tableName string, metrics *observability.Metrics, logger *zap.Logger) ports.ItineraryRepository {
	return &ItineraryRepository{
		client:    client,
		tableName: tableName,
		metrics:   metrics,
		logger:    logger,
	}
}

// itineraryItem represents the DynamoDB item structure for a saved itinerary.
// Plan holds the plan document as raw JSON: structured plans as an object,
// records written by older clients as a bare string.
type itineraryItem struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	EntityType  string `dynamodbav:"EntityType"`
	ItineraryID string `dynamodbav:"ItineraryID"`
	UserID      string `dynamodbav:"UserID"`
	Destination string `dynamodbav:"Destination"`
	Preferences string `dynamodbav:"Preferences"`
	Weather     string `dynamodbav:"Weather"`
	CrowdType   string `dynamodbav:"CrowdType"`
	StartDate   string `dynamodbav:"StartDate"`
	EndDate     string `dynamodbav:"EndDate,omitempty"`
	IsDayTrip   bool   `dynamodbav:"IsDayTrip"`
	Plan        string `dynamodbav:"Plan"`
	CreatedAt   string `dynamodbav:"CreatedAt"`
}

func userPK(userID string) string {
	return fmt.Sprintf("USER#%s", userID)
}

func itinerarySK(id valueobjects.ItineraryID) string {
	return fmt.Sprintf("ITIN#%s", id.String())
}

// Save persists an itinerary, overwriting any record with the same ID.
// PutItem is a plain upsert, so a retried save converges on one record.
func (r *ItineraryRepository) Save(ctx context.Context, itinerary *entities.SavedItinerary) error {
	item, err := r.toItem(itinerary)
	if err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return errors.Wrap(err, "failed to marshal itinerary")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	r.record(ctx, "save", err)
	if err != nil {
		return mapStoreError("save", err)
	}

	r.logger.Debug("Itinerary saved to DynamoDB",
		zap.String("itineraryID", itinerary.ID().String()),
		zap.String("userID", itinerary.UserID()),
	)
	return nil
}

// GetByID retrieves one of a user's itineraries
func (r *ItineraryRepository) GetByID(ctx context.Context, userID string, id valueobjects.ItineraryID) (*entities.SavedItinerary, error) {
	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": userPK(userID),
		"SK": itinerarySK(id),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal key")
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	})
	r.record(ctx, "get", err)
	if err != nil {
		return nil, mapStoreError("get", err)
	}
	if out.Item == nil {
		return nil, errors.NewNotFoundError("itinerary")
	}

	var item itineraryItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal itinerary")
	}
	return r.fromItem(item)
}

// ListByUser retrieves all itineraries for a user, newest first. The query
// runs against the createdAt GSI with ScanIndexForward disabled, so DynamoDB
// returns the records already in descending order.
func (r *ItineraryRepository) ListByUser(ctx context.Context, userID string) ([]*entities.SavedItinerary, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(userPK(userID)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query expression")
	}

	var itineraries []*entities.SavedItinerary
	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(CreatedAtIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			r.record(ctx, "list", err)
			return nil, mapStoreError("list", err)
		}
		for _, raw := range page.Items {
			var item itineraryItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, errors.Wrap(err, "failed to unmarshal itinerary")
			}
			itinerary, err := r.fromItem(item)
			if err != nil {
				// A single corrupt record is logged and skipped, not fatal
				// for the whole list
				r.logger.Warn("Skipping unreadable itinerary record",
					zap.String("itineraryID", item.ItineraryID),
					zap.Error(err),
				)
				continue
			}
			itineraries = append(itineraries, itinerary)
		}
	}

	r.record(ctx, "list", nil)
	return itineraries, nil
}

// Update replaces an existing itinerary. The condition requires the record to
// already exist, so an update never creates - a missing ID is a not-found
// error.
func (r *ItineraryRepository) Update(ctx context.Context, itinerary *entities.SavedItinerary) error {
	item, err := r.toItem(itinerary)
	if err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return errors.Wrap(err, "failed to marshal itinerary")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(PK) AND attribute_exists(SK)"),
	})
	r.record(ctx, "update", err)
	if err != nil {
		return mapStoreError("update", err)
	}
	return nil
}

// Delete removes an itinerary. DeleteItem on an absent key is a no-op, so a
// retried delete reports the same outcome as the first.
func (r *ItineraryRepository) Delete(ctx context.Context, userID string, id valueobjects.ItineraryID) error {
	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": userPK(userID),
		"SK": itinerarySK(id),
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal key")
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	})
	r.record(ctx, "delete", err)
	if err != nil {
		return mapStoreError("delete", err)
	}
	return nil
}

func (r *ItineraryRepository) toItem(itinerary *entities.SavedItinerary) (itineraryItem, error) {
	planJSON, err := marshalPlan(itinerary.Plan())
	if err != nil {
		return itineraryItem{}, err
	}

	return itineraryItem{
		PK:          userPK(itinerary.UserID()),
		SK:          itinerarySK(itinerary.ID()),
		EntityType:  "ITINERARY",
		ItineraryID: itinerary.ID().String(),
		UserID:      itinerary.UserID(),
		Destination: itinerary.Destination(),
		Preferences: itinerary.Preferences(),
		Weather:     itinerary.Weather(),
		CrowdType:   itinerary.CrowdType().String(),
		StartDate:   itinerary.Dates().StartDateString(),
		EndDate:     itinerary.Dates().EndDateString(),
		IsDayTrip:   itinerary.Dates().IsDayTrip(),
		Plan:        planJSON,
		CreatedAt:   itinerary.CreatedAt().UTC().Format(time.RFC3339Nano),
	}, nil
}

func (r *ItineraryRepository) fromItem(item itineraryItem) (*entities.SavedItinerary, error) {
	id, err := valueobjects.NewItineraryIDFromString(item.ItineraryID)
	if err != nil {
		return nil, err
	}

	crowdType, err := valueobjects.NewCrowdTypeFromString(item.CrowdType)
	if err != nil {
		return nil, err
	}

	dates, err := valueobjects.NewTripDates(item.IsDayTrip, item.StartDate, item.EndDate)
	if err != nil {
		return nil, err
	}

	plan, err := validators.DecodeStoredPlan(json.RawMessage(item.Plan))
	if err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, errors.NewValidationError("stored itinerary has a malformed creation time").WithCause(err)
	}

	return entities.ReconstructItinerary(
		id,
		item.UserID,
		item.Destination,
		item.Preferences,
		item.Weather,
		crowdType,
		dates,
		plan,
		createdAt,
	)
}

func (r *ItineraryRepository) record(ctx context.Context, operation string, err error) {
	if r.metrics != nil {
		r.metrics.RecordStoreOperation(ctx, operation, err == nil)
	}
}

// marshalPlan renders the plan for storage. Structured plans are stored as a
// JSON object; a legacy free-text plan keeps its original bare-string shape
// so older clients can still read it back.
func marshalPlan(plan entities.Plan) (string, error) {
	if plan.IsLegacy() {
		raw, err := json.Marshal(plan.LegacyText)
		if err != nil {
			return "", errors.Wrap(err, "failed to marshal legacy plan")
		}
		return string(raw), nil
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal plan")
	}
	return string(raw), nil
}
