package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/certhub/internal/models"
)

func TestSummaryOmitsPayloadAndReview(t *testing.T) {
	reviewer := uint(2)
	pa := models.PendingAction{
		ID:              5,
		ActionType:      "create",
		ResourceType:    "Field",
		Data:            datatypes.JSON(`{"name":"Safety"}`),
		Status:          "rejected",
		ReviewedBy:      &reviewer,
		RejectionReason: "duplicate",
		CreatedAt:       time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	b, err := json.Marshal(NewPendingActionSummaries([]models.PendingAction{pa}))
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"id":5,"actionType":"create","resourceType":"Field","status":"rejected","createdAt":"2025-01-02T03:04:05Z"}]`,
		string(b))
}
