package quote

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a quotation.
type Status int

const (
	// Draft quotations can be edited freely.
	Draft Status = iota
	// Approved quotations are frozen.
	Approved
)

func (s Status) String() string {
	switch s {
	case Draft:
		return "draft"
	case Approved:
		return "approved"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case Draft, Approved:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("invalid status %d", int(s))
}

// UnmarshalText accepts "draft"/"approved" and "borrador"/"aprobada".
func (s *Status) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "draft", "borrador":
		*s = Draft
	case "approved", "aprobada":
		*s = Approved
	default:
		return fmt.Errorf("invalid status %q", string(text))
	}
	return nil
}
