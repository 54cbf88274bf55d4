package dynamodb

import (
	stderrors "errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"compass/pkg/errors"
)

// mapStoreError translates a DynamoDB failure into the store error taxonomy.
// A ValidationException naming an index means the table is missing the
// createdAt GSI - a deployment problem, reported distinctly from permission
// failures so the operator knows which of the two to fix.
func mapStoreError(operation string, err error) error {
	if err == nil {
		return nil
	}

	var conditionFailed *types.ConditionalCheckFailedException
	if stderrors.As(err, &conditionFailed) {
		return errors.NewNotFoundError("itinerary")
	}

	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		message := apiErr.ErrorMessage()

		switch code {
		case "AccessDeniedException", "UnrecognizedClientException", "MissingAuthenticationToken":
			return errors.NewStorePermissionError(operation, err)
		case "ValidationException":
			if strings.Contains(strings.ToLower(message), "index") {
				return errors.NewStoreMissingIndexError("createdAt", err)
			}
		case "ResourceNotFoundException":
			if strings.Contains(strings.ToLower(message), "index") {
				return errors.NewStoreMissingIndexError("createdAt", err)
			}
		}
	}

	return errors.NewStoreError(operation, err)
}
