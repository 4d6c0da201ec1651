package pricing

import (
	"fmt"
	"math"
)

// MaxVariantBatch returns how many units of the shared batch the given
// variant may still claim once its siblings' allocations are
// subtracted. The result is clamped at zero, so shrinking the base
// batch below the current allocations tightens the cap instead of
// going negative.
func MaxVariantBatch(variantID string, totalBase float64, variants []Variant) float64 {
	others := 0.0
	for _, v := range variants {
		if v.ID == variantID {
			continue
		}
		others += v.BatchSize
	}
	return math.Max(0, totalBase-others)
}

// AllocationCheck reports whether a proposed variant batch size fits
// inside the shared batch, and how much room is actually left.
type AllocationCheck struct {
	Valid      bool    `json:"valid"`
	MaxAllowed float64 `json:"maxAllowed"`
	Message    string  `json:"message,omitempty"`
}

// ValidateAllocation checks a proposed batch size for one variant
// against the capacity its siblings leave free. Negative proposals are
// always invalid, regardless of the cap.
func ValidateAllocation(variantID string, proposed, totalBase float64, variants []Variant) AllocationCheck {
	maxAllowed := MaxVariantBatch(variantID, totalBase, variants)
	if proposed < 0 {
		return AllocationCheck{MaxAllowed: maxAllowed, Message: "batch size cannot be negative"}
	}
	if proposed > maxAllowed {
		return AllocationCheck{
			MaxAllowed: maxAllowed,
			Message:    fmt.Sprintf("only %.2f units of the base batch are unallocated", maxAllowed),
		}
	}
	return AllocationCheck{Valid: true, MaxAllowed: maxAllowed}
}
