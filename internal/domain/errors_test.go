package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestRecordError_Message(t *testing.T) {
	t.Parallel()

	err := NewMalformedRecordError(12, 5)
	if got := err.Error(); got != "line 12: 5 fields: malformed record" {
		t.Fatalf("unexpected Error(): %q", got)
	}

	noFields := &RecordError{Line: 3, Err: fmt.Errorf("uid %q: %w", "x", ErrValidation)}
	if got := noFields.Error(); got != `line 3: uid "x": validation error` {
		t.Fatalf("unexpected Error(): %q", got)
	}
}

func TestRecordError_Unwrap(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("read entries: %w", NewMalformedRecordError(2, 3))
	if !errors.Is(wrapped, ErrMalformedRecord) {
		t.Fatal("errors.Is(err, ErrMalformedRecord) = false")
	}

	var recErr *RecordError
	if !errors.As(wrapped, &recErr) || recErr.Line != 2 {
		t.Fatalf("errors.As did not recover the record error: %v", wrapped)
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{ErrNotFound, ErrAlreadyExists, ErrValidation, ErrMalformedRecord, ErrArtifactHeader}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}
