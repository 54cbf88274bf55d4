package dynamodb

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"compass/application/ports"
	"compass/domain/core/entities"
	"compass/pkg/errors"
)

// UserIDIndexName is the GSI that resolves an account by user ID; the primary
// key is the email so registration can enforce uniqueness with one condition
const UserIDIndexName = "UserIdIndex"

// UserRepository implements the UserRepository port on the same DynamoDB
// table as the itineraries: PK ACCOUNT#{email}, SK PROFILE
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserRepository creates a new DynamoDB user repository
func NewUserRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

type userItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	EntityType   string `dynamodbav:"EntityType"`
	AccountID    string `dynamodbav:"AccountID"`
	Email        string `dynamodbav:"Email"`
	PasswordHash string `dynamodbav:"PasswordHash"`
	CreatedAt    string `dynamodbav:"CreatedAt"`
}

func accountPK(email string) string {
	return fmt.Sprintf("ACCOUNT#%s", strings.ToLower(email))
}

// Save persists a new user. The existence condition on the email key makes
// double registration fail atomically.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	item := userItem{
		PK:           accountPK(user.Email()),
		SK:           "PROFILE",
		EntityType:   "ACCOUNT",
		AccountID:    user.ID(),
		Email:        user.Email(),
		PasswordHash: user.PasswordHash(),
		CreatedAt:    user.CreatedAt().UTC().Format(time.RFC3339Nano),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return errors.Wrap(err, "failed to marshal user")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if stderrors.As(err, &conditionFailed) {
			return errors.NewAuthError(errors.ErrorTypeAuthExists, "an account with this email already exists")
		}
		return mapStoreError("register", err)
	}

	r.logger.Info("User registered", zap.String("userID", user.ID()))
	return nil
}

// GetByEmail retrieves a user by email address
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": accountPK(email),
		"SK": "PROFILE",
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal key")
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	})
	if err != nil {
		return nil, mapStoreError("get user", err)
	}
	if out.Item == nil {
		return nil, errors.NewNotFoundError("user")
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal user")
	}
	return r.fromItem(item)
}

// GetByID retrieves a user by ID through the user ID GSI
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	keyCond := expression.Key("AccountID").Equal(expression.Value(id))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query expression")
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(UserIDIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, mapStoreError("get user", err)
	}
	if len(out.Items) == 0 {
		return nil, errors.NewNotFoundError("user")
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal user")
	}
	return r.fromItem(item)
}

func (r *UserRepository) fromItem(item userItem) (*entities.User, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, errors.NewValidationError("stored user has a malformed creation time").WithCause(err)
	}
	return entities.ReconstructUser(item.AccountID, item.Email, item.PasswordHash, createdAt), nil
}
