package booking

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// PaymentGateway abstracts the payment provider so the booking flow can be
// exercised without network calls.
type PaymentGateway interface {
	CreateOrder(amountMinor int64, currency, receipt string, notes map[string]interface{}) (string, error)
	FetchPayment(paymentID string) (map[string]interface{}, error)
}

type razorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway wraps the Razorpay SDK client.
func NewRazorpayGateway(key, secret string) PaymentGateway {
	return &razorpayGateway{client: razorpay.NewClient(key, secret)}
}

func (g *razorpayGateway) CreateOrder(amountMinor int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create payment order: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok {
		return "", errors.New("payment order response missing id")
	}
	return orderID, nil
}

func (g *razorpayGateway) FetchPayment(paymentID string) (map[string]interface{}, error) {
	payment, err := g.client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment %s: %w", paymentID, err)
	}
	return payment, nil
}

// VerifySignature checks the gateway's HMAC-SHA256 signature over
// "orderID|paymentID".
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
