package dynamodb

import (
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"

	"compass/domain/core/entities"
	"compass/pkg/errors"
)

func TestMapStoreError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected errors.ErrorType
	}{
		{
			name:     "access denied maps to permission",
			err:      &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "not authorized"},
			expected: errors.ErrorTypeStorePermission,
		},
		{
			name:     "validation naming an index maps to missing index",
			err:      &smithy.GenericAPIError{Code: "ValidationException", Message: "The table does not have the specified index: CreatedAtIndex"},
			expected: errors.ErrorTypeStoreMissingIndex,
		},
		{
			name:     "missing index resource maps to missing index",
			err:      &smithy.GenericAPIError{Code: "ResourceNotFoundException", Message: "Requested index not found"},
			expected: errors.ErrorTypeStoreMissingIndex,
		},
		{
			name:     "conditional check failure maps to not found",
			err:      &types.ConditionalCheckFailedException{},
			expected: errors.ErrorTypeNotFound,
		},
		{
			name:     "throttling maps to unknown store error",
			err:      &smithy.GenericAPIError{Code: "ProvisionedThroughputExceededException", Message: "slow down"},
			expected: errors.ErrorTypeStoreUnknown,
		},
		{
			name:     "plain error maps to unknown store error",
			err:      fmt.Errorf("connection reset"),
			expected: errors.ErrorTypeStoreUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapStoreError("save", tt.err)
			assert.True(t, errors.IsType(mapped, tt.expected), "got %v", mapped)
		})
	}
}

func TestMapStoreError_Nil(t *testing.T) {
	assert.NoError(t, mapStoreError("save", nil))
}

func TestMarshalPlanShapes(t *testing.T) {
	legacy, err := marshalPlan(entities.Plan{LegacyText: "Day 1: wander the old town"})
	assert.NoError(t, err)
	assert.Equal(t, `"Day 1: wander the old town"`, legacy)
}
