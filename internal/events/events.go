package events

import (
	"encoding/json"
	"time"
)

// Envelope is the JSON shape every SSE payload uses. Consumers key off
// Type and Version; everything event-specific rides in Data.
type Envelope struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Marshal builds an envelope and returns it as a JSON string ready to
// publish on the hub. Payloads are plain maps and small structs, so a
// marshal failure would be a programming error; it degrades to an
// envelope with no data rather than breaking the stream.
func Marshal(requestID, eventType string, version int, data any) string {
	var raw json.RawMessage
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			raw = b
		}
	}
	env := Envelope{
		Type:      eventType,
		Version:   version,
		At:        time.Now().UTC(),
		RequestID: requestID,
		Data:      raw,
	}
	b, _ := json.Marshal(env)
	return string(b)
}
