package utils

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithUser_RoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ctx := WithUser(context.Background(), userID, "ada@example.com")

	gotID, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, userID, gotID)

	email, ok := GetEmailFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", email)
}

func TestGetUserIDFromContext_Empty(t *testing.T) {
	t.Parallel()

	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = GetEmailFromContext(context.Background())
	assert.False(t, ok)
}

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+7", 7*3600)
	ts := time.Date(2025, time.March, 14, 16, 30, 0, 0, loc)

	assert.Equal(t, "2025-03-14T09:30:00Z", FormatTimestamp(ts))
}
