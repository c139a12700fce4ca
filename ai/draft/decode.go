package draft

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/pkg/errors"
)

// decodeModelJSON decodes a constrained JSON object out of raw model text.
// Ladder: strict decode of the whole text, then the first balanced
// brace-delimited substring, then a repaired version of that substring.
// Model output wrapped in ```json fences or prose falls to step two.
func decodeModelJSON(text string, v any) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("draft: empty model output")
	}

	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	candidate, ok := firstBalancedObject(text)
	if !ok {
		return errors.New("draft: no JSON object in model output")
	}
	if err := json.Unmarshal([]byte(candidate), v); err == nil {
		return nil
	}

	repaired, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		return errors.Wrap(err, "draft: repair model JSON")
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return errors.Wrap(err, "draft: decode repaired model JSON")
	}
	slog.Debug("model JSON decoded after repair", "bytes", len(repaired))
	return nil
}

// firstBalancedObject scans for the first brace-balanced substring,
// ignoring braces inside JSON strings.
func firstBalancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	// Unterminated object; hand the tail to the repair step.
	return text[start:], true
}
