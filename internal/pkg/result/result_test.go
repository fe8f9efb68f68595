package result

import (
	"errors"
	"testing"
)

func TestOk(t *testing.T) {
	t.Parallel()

	r := Ok(42)
	if !r.IsOk() {
		t.Fatal("expected success envelope")
	}
	if r.Value() != 42 {
		t.Fatalf("expected 42, got %d", r.Value())
	}
	if r.Err() != nil {
		t.Fatalf("expected nil error, got %v", r.Err())
	}

	v, err := r.Unwrap()
	if err != nil || v != 42 {
		t.Fatalf("unexpected unwrap %d, %v", v, err)
	}
}

func TestFail(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("boom")
	r := Fail[int](sentinel)
	if r.IsOk() {
		t.Fatal("expected failure envelope")
	}
	if !errors.Is(r.Err(), sentinel) {
		t.Fatalf("expected sentinel, got %v", r.Err())
	}
	if r.Value() != 0 {
		t.Fatalf("expected zero value, got %d", r.Value())
	}
}

func TestFailNilErrorNormalized(t *testing.T) {
	t.Parallel()

	r := Fail[string](nil)
	if r.IsOk() {
		t.Fatal("nil-error failure must not report success")
	}
	if !errors.Is(r.Err(), ErrNoValue) {
		t.Fatalf("expected ErrNoValue, got %v", r.Err())
	}
}

func TestZeroValueIsFailure(t *testing.T) {
	t.Parallel()

	var r Result[int]
	if r.IsOk() {
		t.Fatal("zero envelope must not report success")
	}
	if !errors.Is(r.Err(), ErrNoValue) {
		t.Fatalf("expected ErrNoValue, got %v", r.Err())
	}
}
