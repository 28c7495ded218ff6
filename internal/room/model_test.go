package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveRate(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"no discount passes through", 199.99, 0, 199.99},
		{"20 percent off 200", 200, 20, 160},
		{"15 percent off 199 rounds", 199, 15, 169},
		{"rounds half up", 150, 15, 128}, // 127.5 -> 128
		{"full discount", 100, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Room{PricePerNight: tt.price, Discount: tt.discount}
			assert.Equal(t, tt.want, r.EffectiveRate())
		})
	}
}

func TestBookable(t *testing.T) {
	assert.True(t, (&Room{Status: StatusAvailable}).Bookable())
	assert.True(t, (&Room{Status: StatusOccupied}).Bookable())
	assert.False(t, (&Room{Status: StatusCleaning}).Bookable())
	assert.False(t, (&Room{Status: StatusMaintenance}).Bookable())
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusAvailable, StatusOccupied, StatusCleaning, StatusMaintenance} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("Demolished"))
	assert.False(t, ValidStatus("available")) // statuses are case sensitive
}
