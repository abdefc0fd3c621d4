package orders

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func validItems() []ItemInput {
	return []ItemInput{
		{ItemID: "PA1", Name: "Vegetarian Lasagna", Qty: 2, Price: 205},
		{ItemID: "DR1", Name: "Coca-Cola", Qty: 1, Price: 55},
	}
}

func TestNormalizeItems(t *testing.T) {
	items, err := NormalizeItems(validItems())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].LineTotal != 410 {
		t.Errorf("lineTotal = %v, want 410", items[0].LineTotal)
	}
	if got := CalcSubtotal(items); got != 465 {
		t.Errorf("subtotal = %v, want 465", got)
	}
}

func TestNormalizeItemsResolvesIDAndName(t *testing.T) {
	items, err := NormalizeItems([]ItemInput{
		{ItemID: "PA1", Qty: 1, Price: 10},
		{Name: "Custom Cake", Qty: 1, Price: 10},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if items[0].Name != "PA1" {
		t.Errorf("name fallback = %q, want PA1", items[0].Name)
	}
	if items[1].ItemID != "Custom Cake" {
		t.Errorf("itemId fallback = %q, want Custom Cake", items[1].ItemID)
	}
}

func TestNormalizeItemsRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		items []ItemInput
	}{
		{"empty", nil},
		{"no id or name", []ItemInput{{Qty: 1, Price: 10}}},
		{"zero qty", []ItemInput{{ItemID: "X", Qty: 0, Price: 10}}},
		{"negative qty", []ItemInput{{ItemID: "X", Qty: -1, Price: 10}}},
		{"fractional qty", []ItemInput{{ItemID: "X", Qty: 1.5, Price: 10}}},
		{"nan qty", []ItemInput{{ItemID: "X", Qty: math.NaN(), Price: 10}}},
		{"inf qty", []ItemInput{{ItemID: "X", Qty: math.Inf(1), Price: 10}}},
		{"negative price", []ItemInput{{ItemID: "X", Qty: 1, Price: -5}}},
		{"nan price", []ItemInput{{ItemID: "X", Qty: 1, Price: math.NaN()}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NormalizeItems(tc.items); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestLineTotalRounding(t *testing.T) {
	items, err := NormalizeItems([]ItemInput{{ItemID: "X", Qty: 3, Price: 0.10}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if items[0].LineTotal != 0.30 {
		t.Errorf("lineTotal = %v, want 0.30", items[0].LineTotal)
	}
}

func TestValidatePlacement(t *testing.T) {
	in, err := ValidatePlacement("123456", "  Dana  ", "20250101-1200", validItems())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if in.StudentID != "123456" || in.StudentName != "Dana" || in.Subtotal != 465 {
		t.Errorf("unexpected input: %+v", in)
	}
}

func TestValidatePlacementRejects(t *testing.T) {
	longName := strings.Repeat("a", 81)
	cases := []struct {
		name                     string
		student, label, slot     string
		items                    []ItemInput
	}{
		{"missing student", "", "", "s1", validItems()},
		{"missing slot", "123456", "", "", validItems()},
		{"short studentId", "12345", "", "s1", validItems()},
		{"long studentId", "1234567", "", "s1", validItems()},
		{"non-digit studentId", "12345a", "", "s1", validItems()},
		{"name too long", "123456", longName, "s1", validItems()},
		{"no items", "123456", "", "s1", nil},
		{"zero subtotal", "123456", "", "s1", []ItemInput{{ItemID: "X", Qty: 1, Price: 0}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ValidatePlacement(tc.student, tc.label, tc.slot, tc.items); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}
