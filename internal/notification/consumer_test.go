package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sharath018/hotel-management-backend/utils"
)

func TestDescribeEventNewEvent(t *testing.T) {
	// Exact payload shape the event service publishes on creation.
	evt := utils.DomainEvent{
		Type: utils.EventNewEvent,
		Payload: map[string]interface{}{
			"event_id":   uint(12),
			"name":       "Smith Wedding",
			"event_type": "Wedding",
			"date":       "2026-06-20",
			"guests":     120,
		},
	}

	title, message, category := describeEvent(evt)
	assert.Equal(t, "New event request", title)
	assert.Equal(t, "Wedding event requested for 120 guests", message)
	assert.Equal(t, CategoryEvent, category)
}

func TestDescribeEventBookingLifecycle(t *testing.T) {
	tests := []struct {
		name     string
		evt      utils.DomainEvent
		title    string
		message  string
		category string
	}{
		{
			name: "new booking",
			evt: utils.DomainEvent{
				Type: utils.EventNewBooking,
				Payload: map[string]interface{}{
					"booking_id":  uint(9),
					"room_number": "204",
					"check_in":    "2026-03-01",
					"check_out":   "2026-03-04",
				},
			},
			title:    "New booking",
			message:  "Room 204 booked from 2026-03-01 to 2026-03-04",
			category: CategoryBooking,
		},
		{
			name: "check in",
			evt: utils.DomainEvent{
				Type:    utils.EventCheckIn,
				Payload: map[string]interface{}{"booking_id": uint(9), "room_number": "204"},
			},
			title:    "Guest checked in",
			message:  "Room 204 is now occupied",
			category: CategoryBooking,
		},
		{
			name: "check out",
			evt: utils.DomainEvent{
				Type:    utils.EventCheckOut,
				Payload: map[string]interface{}{"booking_id": uint(9), "room_number": "204"},
			},
			title:    "Guest checked out",
			message:  "Room 204 needs cleaning",
			category: CategoryBooking,
		},
		{
			name: "payment received",
			evt: utils.DomainEvent{
				Type:    utils.EventPaymentReceived,
				Payload: map[string]interface{}{"amount": "525.00", "reference": "booking #9"},
			},
			title:    "Payment received",
			message:  "$525.00 received for booking #9",
			category: CategoryPayment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, message, category := describeEvent(tt.evt)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.message, message)
			assert.Equal(t, tt.category, category)
		})
	}
}

func TestDescribeEventUnknownTypeIsDropped(t *testing.T) {
	title, _, _ := describeEvent(utils.DomainEvent{Type: "room_painted"})
	assert.Empty(t, title)
}
