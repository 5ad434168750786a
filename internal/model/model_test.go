package model

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"short", true},
		{"1234567", true},
		{"12345678", false},
		{"a-valid-password", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrValidation) {
			t.Errorf("ValidatePassword(%q) error does not match ErrValidation", tt.password)
		}
	}
}

func TestTotalEncounters(t *testing.T) {
	h := &Hunt{PreviousEncounters: 50, PhaseEncounters: 10, PhaseCount: 2}
	if got := h.TotalEncounters(); got != 60 {
		t.Errorf("expected total 60, got %d", got)
	}
}

func TestHuntValidate(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)

	tests := []struct {
		name    string
		hunt    Hunt
		wantErr error
	}{
		{"fresh", *NewHunt(25), nil},
		{"negative previous", Hunt{PreviousEncounters: -1, PhaseCount: 1}, ErrValidation},
		{"negative phase", Hunt{PhaseEncounters: -1, PhaseCount: 1}, ErrValidation},
		{"zero phase count", Hunt{PhaseCount: 0}, ErrValidation},
		{"end before start", Hunt{PhaseCount: 1, StartTime: &start, EndTime: &before}, ErrValidation},
		{"total overflows", Hunt{PhaseCount: 1, PreviousEncounters: math.MaxInt64, PhaseEncounters: 1}, ErrOverflow},
	}

	for _, tt := range tests {
		err := tt.hunt.Validate()
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.wantErr, err)
		}
	}
}

func TestShinyValidate(t *testing.T) {
	bad := Gender(7)
	if err := (&Shiny{Species: 1, Gender: &bad}).Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for unknown gender, got %v", err)
	}
	if err := (&Shiny{Species: 1, PhaseNumber: Ptr(int64(-2))}).Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for negative phase number, got %v", err)
	}
	if err := (&Shiny{Species: 1, Gender: Ptr(GenderFemale)}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheckedAdd(t *testing.T) {
	tests := []struct {
		a, b int64
		want int64
		ok   bool
	}{
		{1, 2, 3, true},
		{math.MaxInt64, 0, math.MaxInt64, true},
		{math.MaxInt64, 1, 0, false},
		{math.MinInt64, -1, 0, false},
		{math.MinInt64, 1, math.MinInt64 + 1, true},
	}

	for _, tt := range tests {
		got, ok := CheckedAdd(tt.a, tt.b)
		if ok != tt.ok || got != tt.want {
			t.Errorf("CheckedAdd(%d, %d) = %d, %v; want %d, %v", tt.a, tt.b, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHuntLabel(t *testing.T) {
	names := func(id SpeciesID) string { return id.String() }

	h := NewHunt(25)
	if got := h.Label(names); got != "#25 - Inconnue" {
		t.Errorf("unexpected label %q", got)
	}

	h.Place = Ptr("Route 1")
	if got := h.Label(names); got != "#25 - Route 1" {
		t.Errorf("unexpected label %q", got)
	}
}

func TestHuntCloneIsDeep(t *testing.T) {
	huntID := int64(3)
	h := &Hunt{ID: huntID, PhaseCount: 1, Place: Ptr("Cave"), Shinies: []*Shiny{{ID: 9, HuntID: &huntID}}}
	c := h.Clone()

	*c.Place = "Lake"
	*c.Shinies[0].HuntID = 4
	c.Shinies[0].ID = 10

	if *h.Place != "Cave" {
		t.Errorf("clone shares place with original")
	}
	if !h.Shinies[0].BelongsTo(3) || h.Shinies[0].ID != 9 {
		t.Errorf("clone shares shinies with original")
	}
}
