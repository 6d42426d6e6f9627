package codec

import (
	"encoding/json"
	"strings"
)

// EventFormat is one entry of the structured event-format sequence stored in
// a checklist's event_format field. Time is optional and empty when the entry
// came from the legacy bare-string encoding.
type EventFormat struct {
	Format string `json:"format"`
	Time   string `json:"time,omitempty"`
}

// ParseEventFormats decodes the wire string into an ordered sequence of
// entries. A JSON array decodes to the structured form; any non-empty string
// that is not a JSON array is treated as a single legacy entry with no time.
// Empty input yields an empty sequence, so corrupted historical data can
// never make a form unusable.
func ParseEventFormats(raw string) []EventFormat {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var entries []EventFormat
		if err := json.Unmarshal([]byte(trimmed), &entries); err == nil {
			return entries
		}
	}

	return []EventFormat{{Format: raw}}
}

// SerializeEventFormats encodes the sequence as a JSON array. The empty
// sequence serialises to the empty string rather than "[]" so legacy readers
// of an untouched field still observe emptiness.
//
// ParseEventFormats(SerializeEventFormats(x)) round-trips for any x; the
// reverse direction is intentionally lossy for legacy bare strings, which are
// upgraded to the structured encoding the first time they are re-serialised.
func SerializeEventFormats(entries []EventFormat) string {
	if len(entries) == 0 {
		return ""
	}
	encoded, err := json.Marshal(entries)
	if err != nil {
		return ""
	}
	return string(encoded)
}

// IsLegacyEventFormat reports whether the raw value uses the pre-structured
// plain-string encoding.
func IsLegacyEventFormat(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	if !strings.HasPrefix(trimmed, "[") {
		return true
	}
	var entries []EventFormat
	return json.Unmarshal([]byte(trimmed), &entries) != nil
}
