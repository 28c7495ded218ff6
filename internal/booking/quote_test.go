package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharath018/hotel-management-backend/internal/room"
)

func TestComputeQuotePlainStay(t *testing.T) {
	r := &room.Room{PricePerNight: 200}

	q, err := ComputeQuote(r, day("2026-03-01"), day("2026-03-04"), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, 200.0, q.NightlyRate)
	assert.Equal(t, 600.0, q.RoomTotal)
	assert.Equal(t, 600.0, q.Total)
	assert.True(t, q.Complete)
}

func TestComputeQuoteDiscountAndExtras(t *testing.T) {
	// 20% off 200 = 160/night, 3 nights = 480, plus Breakfast 15 and
	// Airport Shuttle 30 = 525.
	r := &room.Room{PricePerNight: 200, Discount: 20}

	q, err := ComputeQuote(r, day("2026-03-01"), day("2026-03-04"),
		[]string{"Breakfast", "Airport Shuttle"})
	require.NoError(t, err)

	assert.Equal(t, 160.0, q.NightlyRate)
	assert.Equal(t, 480.0, q.RoomTotal)
	assert.Equal(t, 45.0, q.ExtrasTotal)
	assert.Equal(t, 525.0, q.Total)
	assert.Len(t, q.Extras, 2)
}

func TestComputeQuoteDiscountRoundsPerNight(t *testing.T) {
	// 15% off 199 = 169.15, rounds to 169 per night before multiplying.
	r := &room.Room{PricePerNight: 199, Discount: 15}

	q, err := ComputeQuote(r, day("2026-03-01"), day("2026-03-03"), nil)
	require.NoError(t, err)

	assert.Equal(t, 169.0, q.NightlyRate)
	assert.Equal(t, 338.0, q.Total)
}

func TestComputeQuoteRejectsShortStays(t *testing.T) {
	r := &room.Room{PricePerNight: 200}

	_, err := ComputeQuote(r, day("2026-03-04"), day("2026-03-04"), nil)
	assert.ErrorIs(t, err, ErrInvalidStayDates)

	_, err = ComputeQuote(r, day("2026-03-04"), day("2026-03-01"), nil)
	assert.ErrorIs(t, err, ErrInvalidStayDates)
}

func TestComputeQuoteUnknownExtra(t *testing.T) {
	r := &room.Room{PricePerNight: 200}

	_, err := ComputeQuote(r, day("2026-03-01"), day("2026-03-04"), []string{"Helipad"})
	assert.ErrorIs(t, err, ErrUnknownExtra)
}

func TestExtrasOnlyQuote(t *testing.T) {
	q, err := ExtrasOnlyQuote([]string{"Spa Access", "Valet Parking"})
	require.NoError(t, err)

	assert.False(t, q.Complete)
	assert.Equal(t, 0, q.Nights)
	assert.Equal(t, 75.0, q.ExtrasTotal)
	assert.Equal(t, 75.0, q.Total)
}

func TestExtrasOnlyQuoteNoExtras(t *testing.T) {
	q, err := ExtrasOnlyQuote(nil)
	require.NoError(t, err)

	assert.False(t, q.Complete)
	assert.Equal(t, 0.0, q.Total)
}
