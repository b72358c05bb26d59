package anchors

import (
	"fmt"
	"strconv"
	"strings"
)

type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// FitError is the error form of a failed ValidationResult.
type FitError struct {
	Validation ValidationResult
}

func (e *FitError) Error() string {
	return "anchor does not fit: " + strings.Join(e.Validation.Errors, "; ")
}

// Err returns nil for a valid result and a *FitError otherwise.
func (v ValidationResult) Err() error {
	if v.IsValid {
		return nil
	}
	return &FitError{Validation: v}
}

// ValidateFit checks that the anchor physically fits the block. Every rule is
// evaluated and each violation reported in rule order. The anchor height sits
// above the surface and is not checked.
func ValidateFit(concrete ConcreteDimensions, anchor AnchorDimensions) ValidationResult {
	errs := []string{}

	if anchor.Width > concrete.Width {
		errs = append(errs, "Anchor width exceeds concrete width")
	}
	if anchor.Depth > concrete.Depth {
		errs = append(errs, "Anchor depth exceeds concrete depth")
	}
	if limit := MaxEmbedDepth(concrete); anchor.EmbedDepth > limit {
		errs = append(errs, fmt.Sprintf("Embedment depth exceeds maximum allowed (%smm)",
			strconv.FormatFloat(limit, 'f', -1, 64)))
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
