package observability

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestNewRequestIDReturnsUUID(t *testing.T) {
	id := NewRequestID()
	if id == "" {
		t.Fatal("expected non-empty request id")
	}

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected valid UUID, got %q: %v", id, err)
	}
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	want := "abc-123"

	ctx = ContextWithRequestID(ctx, want)
	got := RequestIDFromContext(ctx)

	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRequestIDFromContextWhenMissingOrWrongType(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		got := RequestIDFromContext(context.Background())
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), RequestIDKey, 42)
		got := RequestIDFromContext(ctx)
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})
}

func TestRequestIDFromHeader(t *testing.T) {
	tests := []struct {
		name  string
		value string
		keep  bool
	}{
		{name: "valid uuid", value: "0b7e9a64-3c55-4d8f-a1f2-5e9b6c0d4e21", keep: true},
		{name: "empty", value: ""},
		{name: "garbage", value: "abc-123"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RequestIDFromHeader(tc.value)
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("expected UUID, got %q: %v", got, err)
			}
			if tc.keep && got != tc.value {
				t.Fatalf("expected %q to be kept, got %q", tc.value, got)
			}
			if !tc.keep && got == tc.value {
				t.Fatalf("expected %q to be replaced", tc.value)
			}
		})
	}
}
