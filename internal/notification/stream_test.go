package notification

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamPayloadCarriesDedupeID(t *testing.T) {
	item := &InAppNotification{
		ID:        42,
		UserID:    7,
		Title:     "Booking confirmed",
		Message:   "Your booking for room 204 is confirmed.",
		Category:  CategoryBooking,
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(streamPayload(item), &decoded))

	assert.Equal(t, float64(42), decoded["id"])
	assert.Equal(t, float64(7), decoded["user_id"])
	assert.Equal(t, "Booking confirmed", decoded["title"])
	assert.Equal(t, CategoryBooking, decoded["category"])
}

func TestWriteSSEIncludesEventID(t *testing.T) {
	w := httptest.NewRecorder()

	writeSSE(w, 42, `{"id":42}`)

	body := w.Body.String()
	assert.Equal(t, "id: 42\nevent: inapp\ndata: {\"id\":42}\n\n", body)
}

func TestWriteSSEOmitsZeroID(t *testing.T) {
	w := httptest.NewRecorder()

	writeSSE(w, 0, `{"title":"hi"}`)

	body := w.Body.String()
	assert.NotContains(t, body, "id:")
	assert.Contains(t, body, "event: inapp\ndata: {\"title\":\"hi\"}\n\n")
}
