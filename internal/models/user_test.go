package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserToListResponse(t *testing.T) {
	email := "jordan@acme.example"
	now := time.Now()
	user := User{
		ID:           uuid.New(),
		Username:     "jordan",
		DisplayName:  "Jordan Reyes",
		Email:        &email,
		IsManager:    true,
		DailyGoal:    25,
		LoginEnabled: true,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	resp := user.ToListResponse()
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, "jordan", resp.Username)
	assert.Equal(t, "Jordan Reyes", resp.DisplayName)
	assert.True(t, resp.IsManager)
	assert.Equal(t, 25, resp.DailyGoal)

	// The list shape must not leak contact details
	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "email")
}
