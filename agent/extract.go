package agent

import (
	"encoding/json"
	"strings"
)

// Extract pulls the JSON document out of a model reply. A trimmed reply that
// is valid JSON is returned as is, whatever its shape; DecodeBatch rejects
// anything but an envelope object. Only when the whole reply fails to parse
// is the span from the first '{' to the last '}' tried. It returns false when
// neither parses, and the caller should show the reply as plain text.
//
// Caller beware: a reply holding two separate objects yields one span that
// covers both, which does not parse. No further recovery is attempted.
func Extract(raw string) (json.RawMessage, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}

	if json.Valid([]byte(s)) {
		return json.RawMessage(s), true
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end <= start {
		return nil, false
	}

	span := s[start : end+1]
	if json.Valid([]byte(span)) {
		return json.RawMessage(span), true
	}

	return nil, false
}
