package booking

import (
	"errors"
	"math"
	"time"

	"github.com/sharath018/hotel-management-backend/internal/room"
)

// AvailableExtras is the fixed add-on catalog, priced flat per stay.
var AvailableExtras = map[string]float64{
	"Breakfast":       15,
	"Airport Shuttle": 30,
	"Late Check-out":  20,
	"Spa Access":      50,
	"Valet Parking":   25,
}

var (
	ErrInvalidStayDates = errors.New("check-out must be after check-in")
	ErrUnknownExtra     = errors.New("unknown extra requested")
)

// Quote is a priced stay. Complete is false when dates were missing and only
// the extras subtotal could be computed; an incomplete quote is never
// bookable.
type Quote struct {
	Nights      int         `json:"nights"`
	NightlyRate float64     `json:"nightlyRate"`
	RoomTotal   float64     `json:"roomTotal"`
	Extras      []ExtraItem `json:"extras"`
	ExtrasTotal float64     `json:"extrasTotal"`
	Total       float64     `json:"totalAmount"`
	Complete    bool        `json:"complete"`
}

// ParseStayDate parses the wire format used for check-in/check-out dates.
func ParseStayDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// ResolveExtras maps extra names to priced items, rejecting unknown names.
func ResolveExtras(names []string) ([]ExtraItem, float64, error) {
	items := make([]ExtraItem, 0, len(names))
	var total float64
	for _, name := range names {
		price, ok := AvailableExtras[name]
		if !ok {
			return nil, 0, ErrUnknownExtra
		}
		items = append(items, ExtraItem{Name: name, Price: price})
		total += price
	}
	return items, total, nil
}

// ComputeQuote prices a stay: nights times the room's effective nightly
// rate, plus flat extras. Nights are whole days between the truncated
// dates, rounded up; a stay shorter than one night is rejected. The extras
// sum is added after the per-night rounding and is itself never rounded.
func ComputeQuote(r *room.Room, checkIn, checkOut time.Time, extraNames []string) (*Quote, error) {
	checkIn = TruncateToDay(checkIn)
	checkOut = TruncateToDay(checkOut)

	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		return nil, ErrInvalidStayDates
	}

	extras, extrasTotal, err := ResolveExtras(extraNames)
	if err != nil {
		return nil, err
	}

	rate := r.EffectiveRate()
	roomTotal := float64(nights) * rate

	return &Quote{
		Nights:      nights,
		NightlyRate: rate,
		RoomTotal:   roomTotal,
		Extras:      extras,
		ExtrasTotal: extrasTotal,
		Total:       roomTotal + extrasTotal,
		Complete:    true,
	}, nil
}

// ExtrasOnlyQuote prices a stay whose dates are not yet chosen. Every
// caller gets the same answer for this state: an extras-only subtotal
// explicitly tagged incomplete, never a silent zero or a bare nightly rate.
func ExtrasOnlyQuote(extraNames []string) (*Quote, error) {
	extras, extrasTotal, err := ResolveExtras(extraNames)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Extras:      extras,
		ExtrasTotal: extrasTotal,
		Total:       extrasTotal,
		Complete:    false,
	}, nil
}
