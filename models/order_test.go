package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    OrderStatus
		wantErr bool
	}{
		{in: "Pending", want: OrderStatusPending},
		{in: " SHIPPED ", want: OrderStatusShipped},
		{in: "processing", want: OrderStatusProcessing},
		{in: "completed", want: OrderStatusCompleted},
		{in: "Cancelled", want: OrderStatusCancelled},
		{in: "delivered", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrderStatus(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOrderStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEveryTransitionIsAllowed(t *testing.T) {
	for _, from := range OrderStatuses {
		for _, to := range OrderStatuses {
			assert.True(t, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.False(t, OrderStatusPending.CanTransitionTo("delivered"))
}

func TestUserLabel(t *testing.T) {
	assert.Equal(t, "Dara", User{DisplayName: "Dara", Email: "d@example.com"}.Label())
	assert.Equal(t, "d@example.com", User{Email: "d@example.com"}.Label())
}
