package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_Transitions(t *testing.T) {
	terminal := []BookingStatus{BookingStatusAccepted, BookingStatusDeclined, BookingStatusCancelled}

	for _, next := range terminal {
		assert.True(t, BookingStatusPending.CanTransition(next), "Pending -> %s", next)
	}
	assert.False(t, BookingStatusPending.CanTransition(BookingStatusPending))

	for _, from := range terminal {
		assert.True(t, from.IsTerminal())
		for _, next := range append(terminal, BookingStatusPending) {
			assert.False(t, from.CanTransition(next), "%s -> %s", from, next)
		}
	}
}

func TestBookingStatus_TimestampColumn(t *testing.T) {
	assert.Equal(t, "accepted_at", BookingStatusAccepted.TimestampColumn())
	assert.Equal(t, "declined_at", BookingStatusDeclined.TimestampColumn())
	assert.Equal(t, "declined_at", BookingStatusCancelled.TimestampColumn())
	assert.Empty(t, BookingStatusPending.TimestampColumn())
}

func TestUserJSONNeverCarriesPassword(t *testing.T) {
	u := User{ID: 1, Email: "a@x.com", PasswordHash: "$2a$10$secret", Role: RoleUser}

	payload, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(payload), "secret")
	assert.NotContains(t, string(payload), "password")
}
