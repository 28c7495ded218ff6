package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceEvent(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		guests    int
		want      float64
	}{
		{"wedding", TypeWedding, 100, 10000},
		{"wedding single guest", TypeWedding, 1, 5050},
		{"corporate", TypeCorporate, 40, 3400},
		{"social", TypeSocial, 30, 1900},
		{"other", TypeOther, 20, 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PriceEvent(tt.eventType, tt.guests)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriceEventUnknownType(t *testing.T) {
	_, err := PriceEvent("Birthday", 10)
	assert.ErrorIs(t, err, ErrInvalidEventType)
}

func TestPriceEventRejectsZeroGuests(t *testing.T) {
	_, err := PriceEvent(TypeWedding, 0)
	assert.Error(t, err)

	_, err = PriceEvent(TypeWedding, -5)
	assert.Error(t, err)
}

func TestEventStatusTransitions(t *testing.T) {
	assert.Contains(t, statusTransitions[StatusPending], StatusConfirmed)
	assert.Contains(t, statusTransitions[StatusPending], StatusCancelled)
	assert.Contains(t, statusTransitions[StatusConfirmed], StatusCompleted)
	assert.Contains(t, statusTransitions[StatusConfirmed], StatusCancelled)
	assert.Empty(t, statusTransitions[StatusCancelled])
	assert.Empty(t, statusTransitions[StatusCompleted])
}
