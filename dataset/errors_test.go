package dataset

import (
	"context"
	"errors"
	"testing"

	errorslib "github.com/goliatone/go-errors"
)

func TestAsGoError_MapsKinds(t *testing.T) {
	err := NewError(KindValidation, "bad column", nil)
	ge := AsGoError(err)
	if ge == nil {
		t.Fatalf("expected mapped error")
	}
	if ge.Category != errorslib.CategoryValidation {
		t.Fatalf("expected validation category, got %v", ge.Category)
	}

	if AsGoError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestKindFromError(t *testing.T) {
	if got := KindFromError(NewError(KindNotFound, "nope", nil)); got != KindNotFound {
		t.Fatalf("expected not_found, got %v", got)
	}
	if got := KindFromError(context.Canceled); got != KindCanceled {
		t.Fatalf("expected canceled, got %v", got)
	}
	if got := KindFromError(errors.New("boom")); got != KindInternal {
		t.Fatalf("expected internal, got %v", got)
	}
}

func TestDatasetError_Unwrap(t *testing.T) {
	inner := errors.New("driver said no")
	err := NewError(KindInternal, "insert failed", inner)
	if !errors.Is(err, inner) {
		t.Fatalf("expected unwrap to reach inner error")
	}
	if err.Error() != "insert failed: driver said no" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
