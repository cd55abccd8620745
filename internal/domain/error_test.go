package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "message only",
			err: &Error{
				Code:    EINVALID,
				Message: "invalid input",
			},
			expected: "invalid input",
		},
		{
			name: "with operation",
			err: &Error{
				Code:    ENOTFOUND,
				Op:      "quote.remove_item",
				Message: "line item not found: 4",
			},
			expected: "quote.remove_item: line item not found: 4",
		},
		{
			name: "with wrapped error",
			err: &Error{
				Code:    EINTERNAL,
				Op:      "quote.import",
				Message: "failed to decode snapshot",
				Err:     errors.New("unexpected EOF"),
			},
			expected: "quote.import: failed to decode snapshot: unexpected EOF",
		},
		{
			name: "wrapped error without op",
			err: &Error{
				Code:    EINTERNAL,
				Message: "failed to decode snapshot",
				Err:     errors.New("unexpected EOF"),
			},
			expected: "failed to decode snapshot: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{
		Code:    EINTERNAL,
		Message: "wrapped",
		Err:     underlying,
	}

	if unwrapped := err.Unwrap(); unwrapped != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", unwrapped, underlying)
	}

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"domain error", &Error{Code: EINVALID, Message: "test"}, EINVALID},
		{"wrapped domain error", fmt.Errorf("wrapped: %w", &Error{Code: ENOTFOUND, Message: "test"}), ENOTFOUND},
		{"validation error", NewValidationError("quote.validate", "items", "required"), EINVALID},
		{"non-domain error", errors.New("some error"), EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"domain error with message", &Error{Code: EINVALID, Message: "quantity must be greater than 0"}, "quantity must be greater than 0"},
		{"internal error hides message", &Error{Code: EINTERNAL, Message: "stack trace leaked"}, "An internal error occurred. Please try again later."},
		{"validation error shows field", NewValidationError("", "discount.value", "cannot be negative"), "discount.value: cannot be negative"},
		{"validation error lists fields in order", AddFieldError(NewValidationError("quote.validate", "items[1].quantity", "must be greater than 0"), "discount.value", "cannot be negative"), "discount.value: cannot be negative\nitems[1].quantity: must be greater than 0"},
		{"wrapped validation error", fmt.Errorf("cannot approve: %w", NewValidationError("", "items", "at least one line item is required")), "items: at least one line item is required"},
		{"non-domain error returns generic message", errors.New("some internal detail"), "An internal error occurred. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.expected {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorOp(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"domain error with op", &Error{Code: EINVALID, Op: "quote.set_item", Message: "test"}, "quote.set_item"},
		{"domain error without op", &Error{Code: EINVALID, Message: "test"}, ""},
		{"validation error op", NewValidationError("quote.validate", "items", "required"), "quote.validate"},
		{"non-domain error", errors.New("test"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorOp(tt.err); got != tt.expected {
				t.Errorf("ErrorOp() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf(ENOTFOUND, "quote.set_item", "no line item at index %d", 7)

	var domainErr *Error
	if !errors.As(err, &domainErr) {
		t.Fatal("Errorf should return *Error")
	}
	if domainErr.Code != ENOTFOUND {
		t.Errorf("Code = %q, want %q", domainErr.Code, ENOTFOUND)
	}
	if domainErr.Op != "quote.set_item" {
		t.Errorf("Op = %q, want %q", domainErr.Op, "quote.set_item")
	}
	if domainErr.Message != "no line item at index 7" {
		t.Errorf("Message = %q, want %q", domainErr.Message, "no line item at index 7")
	}
}

func TestWrapError(t *testing.T) {
	t.Run("wraps non-nil error", func(t *testing.T) {
		underlying := errors.New("decode error")
		err := WrapError(underlying, EINVALID, "quote.import", "malformed snapshot")

		if ErrorCode(err) != EINVALID {
			t.Errorf("Code = %q, want %q", ErrorCode(err), EINVALID)
		}
		if !errors.Is(err, underlying) {
			t.Error("should wrap underlying error")
		}
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		if err := WrapError(nil, EINTERNAL, "test", "test"); err != nil {
			t.Errorf("WrapError(nil) should return nil, got %v", err)
		}
	})
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     string
		expected bool
	}{
		{"matching code", &Error{Code: ENOTFOUND, Message: "test"}, ENOTFOUND, true},
		{"non-matching code", &Error{Code: EINVALID, Message: "test"}, ENOTFOUND, false},
		{"non-domain error matches EINTERNAL", errors.New("test"), EINTERNAL, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Run("single field error", func(t *testing.T) {
		err := NewValidationError("quote.validate", "items[0].description", "description is required")

		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatal("NewValidationError should return *ValidationError")
		}

		expected := "quote.validate: items[0].description: description is required"
		if ve.Error() != expected {
			t.Errorf("Error() = %q, want %q", ve.Error(), expected)
		}
	})

	t.Run("multiple field errors", func(t *testing.T) {
		err := NewValidationError("quote.validate", "items[0].quantity", "must be greater than 0")
		err = AddFieldError(err, "discount.value", "cannot be negative")

		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatal("should be ValidationError")
		}
		if len(ve.Fields) != 2 {
			t.Errorf("Fields count = %d, want 2", len(ve.Fields))
		}
		if ve.Error() != "quote.validate: validation failed for 2 fields" {
			t.Errorf("Error() = %q", ve.Error())
		}
	})

	t.Run("messages are sorted by field", func(t *testing.T) {
		ve := &ValidationError{Fields: map[string]string{
			"tax.rate":       "must be between 0 and 1",
			"discount.value": "cannot be negative",
		}}

		want := []string{
			"discount.value: cannot be negative",
			"tax.rate: must be between 0 and 1",
		}
		got := ve.Messages()
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("Messages() = %v, want %v", got, want)
		}
		if ve.String() != want[0]+"\n"+want[1] {
			t.Errorf("String() = %q", ve.String())
		}
	})

	t.Run("add field to nil error", func(t *testing.T) {
		err := AddFieldError(nil, "items", "at least one line item is required")

		if fields := GetValidationFields(err); len(fields) != 1 {
			t.Errorf("Fields count = %d, want 1", len(fields))
		}
	})
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"validation error", NewValidationError("test", "field", "error"), true},
		{"domain error", &Error{Code: EINVALID, Message: "test"}, false},
		{"standard error", errors.New("test"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.expected {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetValidationFields(t *testing.T) {
	if fields := GetValidationFields(errors.New("test")); fields != nil {
		t.Errorf("GetValidationFields should return nil for non-validation error")
	}

	fields := GetValidationFields(NewValidationError("test", "items", "required"))
	if fields["items"] != "required" {
		t.Errorf("fields[items] = %q, want %q", fields["items"], "required")
	}
}

func TestConvenienceFunctions(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		err := NotFound("quote.remove_item", "line item", "3")
		if ErrorCode(err) != ENOTFOUND {
			t.Errorf("NotFound code = %q, want %q", ErrorCode(err), ENOTFOUND)
		}
		if err.Error() != "quote.remove_item: line item not found: 3" {
			t.Errorf("NotFound message = %q", err.Error())
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		err := Invalid("quote.import", "snapshot has no items")
		if ErrorCode(err) != EINVALID {
			t.Errorf("Invalid code = %q, want %q", ErrorCode(err), EINVALID)
		}
	})

	t.Run("Conflict", func(t *testing.T) {
		err := Conflict("quote.add_item", "quotation already approved")
		if ErrorCode(err) != ECONFLICT {
			t.Errorf("Conflict code = %q, want %q", ErrorCode(err), ECONFLICT)
		}
	})

	t.Run("Internal", func(t *testing.T) {
		underlying := errors.New("boom")
		err := Internal(underlying, "quote.export", "failed to export")

		if ErrorCode(err) != EINTERNAL {
			t.Errorf("Internal code = %q, want %q", ErrorCode(err), EINTERNAL)
		}
		if !errors.Is(err, underlying) {
			t.Error("Internal should wrap underlying error")
		}
		if msg := ErrorMessage(err); msg != "An internal error occurred. Please try again later." {
			t.Errorf("Internal message should be hidden, got %q", msg)
		}
	})
}
