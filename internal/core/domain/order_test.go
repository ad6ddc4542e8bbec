package domain

import (
	"errors"
	"testing"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusPending, StatusInTransit, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusDelivered, false},
		{StatusPending, StatusPending, false},
		{StatusInTransit, StatusDelivered, true},
		{StatusInTransit, StatusCancelled, true},
		{StatusInTransit, StatusPending, false},
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusInTransit, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: want %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	if StatusPending.Terminal() {
		t.Errorf("PENDING must not be terminal")
	}
	if StatusInTransit.Terminal() {
		t.Errorf("IN_TRANSIT must not be terminal")
	}
	if !StatusDelivered.Terminal() {
		t.Errorf("DELIVERED must be terminal")
	}
	if !StatusCancelled.Terminal() {
		t.Errorf("CANCELLED must be terminal")
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "IN_TRANSIT", "DELIVERED", "CANCELLED"} {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("ParseStatus(%q) returned error: %v", s, err)
		}
	}

	// The enumeration is closed: free-form strings are rejected.
	for _, s := range []string{"", "pending", "SHIPPED", "EN ROUTE", "PENDING "} {
		if _, err := ParseStatus(s); !errors.Is(err, ErrUnknownStatus) {
			t.Errorf("ParseStatus(%q): expected ErrUnknownStatus, got %v", s, err)
		}
	}
}

func TestParseSize(t *testing.T) {
	size, err := ParseSize("")
	if err != nil {
		t.Fatalf("empty size must yield the default, got error: %v", err)
	}
	if size != SizeSmall {
		t.Errorf("default size: want %s, got %s", SizeSmall, size)
	}

	for _, s := range []string{"SMALL", "MEDIUM", "LARGE"} {
		if _, err := ParseSize(s); err != nil {
			t.Errorf("ParseSize(%q) returned error: %v", s, err)
		}
	}

	if _, err := ParseSize("EXTRA_LARGE"); !errors.Is(err, ErrUnknownSize) {
		t.Errorf("expected ErrUnknownSize, got %v", err)
	}
}
