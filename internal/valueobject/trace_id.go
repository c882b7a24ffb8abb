package valueobject

import (
	"encoding/json"

	"github.com/google/uuid"
)

// TraceID is a fresh, process-lifetime-unique identifier attached to a
// failure context, pointing a reader at the matching trace file.
type TraceID struct {
	value string
}

// NewTraceID generates a fresh TraceID.
func NewTraceID() TraceID {
	return TraceID{value: uuid.NewString()}
}

// TraceIDFromString wraps an already-generated trace id, e.g. when
// deserializing a persisted failure context.
func TraceIDFromString(value string) TraceID {
	return TraceID{value: value}
}

// String returns the canonical string form.
func (t TraceID) String() string {
	return t.value
}

// MarshalJSON renders the trace id as its canonical string.
func (t TraceID) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

// UnmarshalJSON parses the trace id.
func (t *TraceID) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = TraceIDFromString(raw)
	return nil
}
