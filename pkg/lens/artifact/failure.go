package artifact

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// GenericErrorMessage is shown when nothing better describes a failure.
const GenericErrorMessage = "an error occurred"

var errNotText = errors.New("body is not utf-8 text")

// ErrorMessage returns a message describing a failed submission. It never panics.
//
// The body is read first, as JSON carrying a message under detail.error or detail.message (detail may
// also be a plain string or a list of validation errors). A body that is not JSON gives way to the
// transport error message. GenericErrorMessage covers everything else, including JSON without a
// message.
func ErrorMessage(raw []byte, transportErr error) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = GenericErrorMessage
		}
	}()

	if len(raw) > 0 {
		detail, err := decodeErrorBody(raw)
		if err == nil {
			if detail != "" {
				return detail
			}

			return GenericErrorMessage
		}
	}

	if transportErr != nil {
		if text := transportErr.Error(); text != "" {
			return text
		}
	}

	return GenericErrorMessage
}

func decodeErrorBody(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", errNotText
	}

	var body map[string]json.RawMessage

	err := json.Unmarshal(raw, &body)
	if err != nil {
		return "", errors.Wrap(err, "unable to decode error body")
	}

	return detailMessage(body["detail"]), nil
}

// detailMessage reads detail.error, then detail.message. Empty strings and non-string values are
// skipped.
func detailMessage(detail json.RawMessage) string {
	if len(detail) == 0 {
		return ""
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(detail, &fields); err == nil {
		for _, key := range []string{"error", "message"} {
			if s := jsonString(fields[key]); s != "" {
				return s
			}
		}

		return ""
	}

	if s := jsonString(detail); s != "" {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}

		return strings.Join(msgs, "; ")
	}

	return ""
}

func jsonString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}

	return s
}
