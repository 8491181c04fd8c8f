package queue

import (
	"encoding/json"
	"time"
)

// BillingRequest asks the billing worker to run the monthly billing of a group.
// The worker resolves the requester's group and permissions itself.
type BillingRequest struct {
	// RequestedBy is the finance admin on whose behalf billing runs.
	RequestedBy string `json:"requested_by"`

	// Period is an optional YYYY-MM month. Empty bills the worker's current month.
	Period string `json:"period,omitempty"`

	AllowDuplicate bool      `json:"allow_duplicate,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewBillingRequest creates a billing request stamped with the current time.
func NewBillingRequest(requestedBy, period string) *BillingRequest {
	return &BillingRequest{
		RequestedBy: requestedBy,
		Period:      period,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *BillingRequest) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BillingRequestFromJSON creates a message from JSON bytes
func BillingRequestFromJSON(data []byte) (*BillingRequest, error) {
	var msg BillingRequest
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
