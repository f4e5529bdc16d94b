package repository

import (
	"context"
	"errors"
	"testing"
)

// Empty patches are rejected before any SQL is issued, so a nil pool is fine.
func TestEmptyPatchesReturnErrNoFields(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	if _, err := store.UpdateStudent(ctx, "s1", StudentUpdate{}); !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields for student, got %v", err)
	}
	if _, err := store.UpdateAssignment(ctx, 1, AssignmentUpdate{}); !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields for assignment, got %v", err)
	}
	if _, err := store.UpdateWeek(ctx, 1, WeekUpdate{}); !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields for week, got %v", err)
	}
	if _, err := store.UpdateResource(ctx, "r1", ResourceUpdate{}); !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields for resource, got %v", err)
	}
}

func TestLinkCodecRoundTrip(t *testing.T) {
	if got := string(encodeLinks(nil)); got != "[]" {
		t.Fatalf("expected nil to encode as [], got %s", got)
	}
	encoded := encodeLinks([]string{"a.pdf", "b.pdf"})
	decoded := decodeLinks(encoded)
	if len(decoded) != 2 || decoded[0] != "a.pdf" || decoded[1] != "b.pdf" {
		t.Fatalf("round trip mismatch: %v", decoded)
	}
	if got := decodeLinks(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice for null column, got %v", got)
	}
	if got := decodeLinks([]byte("not json")); len(got) != 0 {
		t.Fatalf("expected malformed data to decode as empty, got %v", got)
	}
}
