package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/sharath018/hotel-management-backend/utils"
)

// StartKafkaConsumer runs a background consumer that turns domain events
// into staff notifications. It returns immediately; the read loop runs
// until the process exits.
func StartKafkaConsumer(svc Service) {
	reader := utils.NewKafkaReader()

	go func() {
		defer reader.Close()
		log.Println("✅ Kafka consumer started")

		for {
			msg, err := reader.ReadMessage(context.Background())
			if err != nil {
				log.Printf("❌ Kafka read error: %v", err)
				return
			}

			var evt utils.DomainEvent
			if err := json.Unmarshal(msg.Value, &evt); err != nil {
				log.Printf("⚠️ Skipping malformed event at offset %d: %v", msg.Offset, err)
				continue
			}

			handleDomainEvent(svc, evt)
		}
	}()
}

func handleDomainEvent(svc Service, evt utils.DomainEvent) {
	ctx := context.Background()

	title, message, category := describeEvent(evt)
	if title == "" {
		return
	}

	if err := svc.NotifyStaff(ctx, title, message, category); err != nil {
		log.Printf("⚠️ Failed to notify staff for %s: %v", evt.Type, err)
	}
}

func describeEvent(evt utils.DomainEvent) (title, message, category string) {
	str := func(key string) string {
		if v, ok := evt.Payload[key]; ok {
			return fmt.Sprint(v)
		}
		return ""
	}

	switch evt.Type {
	case utils.EventNewBooking:
		return "New booking",
			fmt.Sprintf("Room %s booked from %s to %s", str("room_number"), str("check_in"), str("check_out")),
			CategoryBooking
	case utils.EventCheckIn:
		return "Guest checked in",
			fmt.Sprintf("Room %s is now occupied", str("room_number")),
			CategoryBooking
	case utils.EventCheckOut:
		return "Guest checked out",
			fmt.Sprintf("Room %s needs cleaning", str("room_number")),
			CategoryBooking
	case utils.EventNewEvent:
		return "New event request",
			fmt.Sprintf("%s event requested for %s guests", str("event_type"), str("guests")),
			CategoryEvent
	case utils.EventNewInquiry:
		return "New inquiry",
			fmt.Sprintf("From %s: %s", str("name"), str("subject")),
			CategoryInquiry
	case utils.EventPaymentReceived:
		return "Payment received",
			fmt.Sprintf("$%s received for %s", str("amount"), str("reference")),
			CategoryPayment
	case utils.EventPaymentReversed:
		return "Payment reversed",
			fmt.Sprintf("$%s reversed for %s", str("amount"), str("reference")),
			CategoryPayment
	}
	return "", "", ""
}
