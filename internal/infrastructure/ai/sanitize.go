package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ParseErrorMessage is the stable marker callers can rely on when the
// model output could not be parsed.
const ParseErrorMessage = "AI response format error. Could not parse JSON."

const rawSampleLimit = 200

var fenceRe = regexp.MustCompile("```json\\s*|```")

// ParseError carries a short sample of the offending output so it can
// be logged or returned without dumping the whole response.
type ParseError struct {
	Message       string `json:"error"`
	RawTextSample string `json:"raw_text_sample"`
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// SanitizeJSON strips markdown code fences from a model response and
// parses the remainder as strict JSON. It never panics; a malformed
// response yields a ParseError instead.
func SanitizeJSON(rawText string) (json.RawMessage, *ParseError) {
	cleaned := strings.TrimSpace(fenceRe.ReplaceAllString(rawText, ""))

	var probe any
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, &ParseError{
			Message:       ParseErrorMessage,
			RawTextSample: truncate(rawText, rawSampleLimit) + "...",
		}
	}
	return json.RawMessage(cleaned), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
