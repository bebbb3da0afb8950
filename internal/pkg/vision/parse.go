package vision

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrParse is returned when the model output could not be turned into JSON
// even after the brace-extraction fallback.
var ErrParse = errors.New("model output is not valid JSON")

// ParseErrorPayload is what callers hand to the client when ParseModelJSON
// fails. Parse failures never fail the user-facing request.
var ParseErrorPayload = json.RawMessage(`{"error":"Could not parse response"}`)

// Greedy first-{ to last-} span. Models wrap JSON in prose or code fences
// often enough that this fallback is a load-bearing recovery strategy.
var jsonSpanRe = regexp.MustCompile(`\{[\s\S]*\}`)

// ParseModelJSON turns free-text model output into a JSON payload. It tries a
// direct parse first, then the first top-level {...} span. The returned
// payload is the compacted candidate, not a re-marshaled struct, so the
// model's shape reaches the caller verbatim.
func ParseModelJSON(text string) (json.RawMessage, error) {
	candidate := strings.TrimSpace(text)

	if isJSONObject(candidate) {
		return json.RawMessage(candidate), nil
	}

	span := jsonSpanRe.FindString(candidate)
	if span != "" && isJSONObject(span) {
		return json.RawMessage(span), nil
	}

	return nil, ErrParse
}

func isJSONObject(s string) bool {
	return strings.HasPrefix(s, "{") && gjson.Valid(s)
}
