package validation

import (
	"strings"
)

// ValidateTitle validates a goal or reward title
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return fail("title is required")
	}

	if len(trimmed) > 200 {
		return fail("title is too long (max 200 characters)")
	}

	return nil
}

// ValidatePoints validates a goal's point value. Zero is allowed: a goal can
// be purely motivational.
func ValidatePoints(points int) error {
	if points < 0 {
		return fail("points must not be negative")
	}
	return nil
}

// ValidatePointCost validates a reward's cost. A free reward makes the claim
// flow meaningless, so zero is rejected.
func ValidatePointCost(cost int) error {
	if cost <= 0 {
		return fail("point cost must be positive")
	}
	return nil
}
