package validator

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

const (
	exitingStatusCode = 3
	exitingStatusText = "EXITING"
)

type statusKind int

const (
	statusUnknown statusKind = iota
	statusNumber
	statusText
)

// Status is a validator status as reported by the API. The API is not
// consistent about its type: it may be a numeric code or a string name.
type Status struct {
	kind   statusKind
	number float64
	text   string
	raw    string
}

// NumericStatus returns a Status holding a numeric code
func NumericStatus(code float64) Status {
	return Status{kind: statusNumber, number: code, raw: strconv.FormatFloat(code, 'f', -1, 64)}
}

// TextStatus returns a Status holding a string name
func TextStatus(text string) Status {
	return Status{kind: statusText, text: text, raw: strconv.Quote(text)}
}

// UnmarshalJSON accepts numbers and strings. Anything else decodes to an
// unknown status instead of failing the whole payload.
func (s *Status) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	*s = Status{raw: string(trimmed)}

	if len(trimmed) == 0 {
		return nil
	}

	switch c := trimmed[0]; {
	case c == '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return nil
		}

		s.kind = statusText
		s.text = text
	case c == '-' || (c >= '0' && c <= '9'):
		number, err := strconv.ParseFloat(string(trimmed), 64)
		if err != nil {
			return nil
		}

		s.kind = statusNumber
		s.number = number
	}

	return nil
}

// IsExiting reports whether the status is the numeric code 3 or the string "EXITING"
func (s Status) IsExiting() bool {
	switch s.kind {
	case statusNumber:
		return s.number == exitingStatusCode
	case statusText:
		return s.text == exitingStatusText
	default:
		return false
	}
}

func (s Status) String() string {
	if s.raw == "" {
		return "null"
	}

	return s.raw
}
