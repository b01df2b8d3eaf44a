package apiclient

import (
	"bytes"
	"strings"

	"github.com/antonholmquist/jason"
	"github.com/k3a/html2text"

	"github.com/tphakala/weatherdash/internal/errors"
)

// Error kinds returned by Client. Each failure wraps exactly one of these,
// whether the cause was the network or a non-2xx response.
var (
	ErrFetch  = errors.NewStd("fetch error")
	ErrCreate = errors.NewStd("create error")
	ErrDelete = errors.NewStd("delete error")
	ErrSync   = errors.NewStd("sync error")
)

// operationError carries the user-facing message for one operation kind.
type operationError struct {
	msg  string
	kind error
}

func (e *operationError) Error() string { return e.msg }
func (e *operationError) Unwrap() error { return e.kind }

const maxSummaryLen = 200

// summarizeBody extracts a short human-readable hint from an error response.
// JSON bodies yield their message or error field, HTML pages their text.
func summarizeBody(contentType string, body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var summary string
	switch {
	case strings.Contains(contentType, "json") || body[0] == '{':
		obj, err := jason.NewObjectFromBytes(body)
		if err != nil {
			summary = string(body)
			break
		}
		for _, key := range []string{"message", "error", "detail"} {
			if s, err := obj.GetString(key); err == nil && s != "" {
				summary = s
				break
			}
		}
		if summary == "" {
			summary = string(body)
		}
	case strings.Contains(contentType, "html") || body[0] == '<':
		summary = html2text.HTML2Text(string(body))
	default:
		summary = string(body)
	}

	summary = strings.Join(strings.Fields(summary), " ")
	if len(summary) > maxSummaryLen {
		summary = summary[:maxSummaryLen] + "..."
	}
	return summary
}
