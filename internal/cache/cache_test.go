package cache

import (
	"context"
	"errors"
	"testing"
)

func TestApprovedKey(t *testing.T) {
	tests := []struct {
		categoryID uint
		want       string
	}{
		{0, "advertisements:approved:category:0"},
		{12, "advertisements:approved:category:12"},
	}

	for _, tt := range tests {
		if got := ApprovedKey(tt.categoryID); got != tt.want {
			t.Errorf("ApprovedKey(%d) = %q, want %q", tt.categoryID, got, tt.want)
		}
	}
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Noop

	if err := c.SetApproved(ctx, 1, []byte(`[]`)); err != nil {
		t.Fatalf("SetApproved() error = %v", err)
	}
	if _, err := c.GetApproved(ctx, 1); !errors.Is(err, ErrMiss) {
		t.Errorf("GetApproved() error = %v, want ErrMiss", err)
	}
	if err := c.InvalidateApproved(ctx); err != nil {
		t.Errorf("InvalidateApproved() error = %v", err)
	}
}
