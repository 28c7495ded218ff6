package notification

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/v4/messaging"

	"github.com/sharath018/hotel-management-backend/utils"
)

// FCMChannel delivers push notifications through Firebase Cloud Messaging.
type FCMChannel struct{}

func NewFCMChannel() *FCMChannel {
	if err := utils.InitFirebase(); err != nil {
		log.Printf("⚠️ FCM channel disabled: %v", err)
	}
	return &FCMChannel{}
}

// Send pushes a message to up to 500 device tokens per multicast call.
func (f *FCMChannel) Send(tokens []string, title, body string) error {
	if !utils.IsFCMEnabled() {
		return nil
	}
	if len(tokens) == 0 {
		return nil
	}

	client := utils.GetFCMClient()
	ctx := context.Background()

	const batchSize = 500
	var lastErr error
	for start := 0; start < len(tokens); start += batchSize {
		end := start + batchSize
		if end > len(tokens) {
			end = len(tokens)
		}

		message := &messaging.MulticastMessage{
			Tokens: tokens[start:end],
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
		}

		resp, err := client.SendEachForMulticast(ctx, message)
		if err != nil {
			lastErr = err
			log.Printf("❌ FCM multicast failed: %v", err)
			continue
		}
		if resp.FailureCount > 0 {
			log.Printf("⚠️ FCM delivered %d/%d in batch", resp.SuccessCount, end-start)
		}
	}

	if lastErr != nil {
		return fmt.Errorf("push delivery incomplete: %w", lastErr)
	}
	return nil
}
