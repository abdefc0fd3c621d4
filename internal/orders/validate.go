package orders

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var studentIDPattern = regexp.MustCompile(`^[0-9]{6}$`)

const maxStudentNameLen = 80

// Round2 currency-rounding ke 2 desimal.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NormalizeItems validates raw line items and resolves itemId/name either
// way (one may be empty, not both). Qty must be a positive integer, price
// finite and non-negative. Returns nil + error on the first bad item.
func NormalizeItems(raw []ItemInput) ([]OrderItem, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: items are required", ErrValidation)
	}
	out := make([]OrderItem, 0, len(raw))
	for _, it := range raw {
		itemID := strings.TrimSpace(it.ItemID)
		name := strings.TrimSpace(it.Name)
		if itemID == "" && name == "" {
			return nil, fmt.Errorf("%w: item needs an itemId or name", ErrValidation)
		}
		if math.IsNaN(it.Qty) || math.IsInf(it.Qty, 0) || it.Qty <= 0 || it.Qty != math.Trunc(it.Qty) {
			return nil, fmt.Errorf("%w: invalid qty", ErrValidation)
		}
		if math.IsNaN(it.Price) || math.IsInf(it.Price, 0) || it.Price < 0 {
			return nil, fmt.Errorf("%w: invalid price", ErrValidation)
		}
		if itemID == "" {
			itemID = name
		}
		if name == "" {
			name = itemID
		}
		qty := int(it.Qty)
		out = append(out, OrderItem{
			ItemID:    itemID,
			Name:      name,
			Qty:       qty,
			Price:     it.Price,
			LineTotal: Round2(it.Price * float64(qty)),
		})
	}
	return out, nil
}

// CalcSubtotal: jumlah line_total, dibulatkan 2 desimal.
func CalcSubtotal(items []OrderItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.LineTotal
	}
	return Round2(sum)
}

// ValidatePlacement runs every fail-fast check that does not need the
// database and returns a ready PlaceOrderInput. No persistence is touched
// here; transactional checks (slot, capacity, active order) live in
// PlaceOrderTx.
func ValidatePlacement(studentID, studentName, slotID string, items []ItemInput) (PlaceOrderInput, error) {
	var in PlaceOrderInput

	student := strings.TrimSpace(studentID)
	slot := strings.TrimSpace(slotID)
	if student == "" || slot == "" {
		return in, fmt.Errorf("%w: studentId and slotId are required", ErrValidation)
	}
	if !studentIDPattern.MatchString(student) {
		return in, fmt.Errorf("%w: invalid studentId format", ErrValidation)
	}
	name := strings.TrimSpace(studentName)
	if len(name) > maxStudentNameLen {
		return in, fmt.Errorf("%w: student name too long", ErrValidation)
	}

	normalized, err := NormalizeItems(items)
	if err != nil {
		return in, err
	}
	subtotal := CalcSubtotal(normalized)
	if subtotal <= 0 {
		return in, fmt.Errorf("%w: invalid subtotal", ErrValidation)
	}

	in.StudentID = student
	in.StudentName = name
	in.SlotID = slot
	in.Items = normalized
	in.Subtotal = subtotal
	return in, nil
}
