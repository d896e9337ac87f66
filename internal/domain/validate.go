package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// CheckPositive requires v > 0.
func CheckPositive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return Invalid(field, "must be greater than zero, got %s", v.String())
	}
	return nil
}

// CheckNonNegative requires v >= 0.
func CheckNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return Invalid(field, "must not be negative, got %s", v.String())
	}
	return nil
}

// CheckPercent requires 0 <= v <= 100.
func CheckPercent(field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return Invalid(field, "must be between 0 and 100, got %s", v.String())
	}
	return nil
}

// CheckRange requires min <= v <= max.
func CheckRange(field string, v, min, max decimal.Decimal) error {
	if v.LessThan(min) || v.GreaterThan(max) {
		return Invalid(field, "must be between %s and %s, got %s", min.String(), max.String(), v.String())
	}
	return nil
}

// CheckPUE accepts zero, meaning the configured default, or a power usage
// effectiveness of at least 1.
func CheckPUE(field string, v decimal.Decimal) error {
	if !v.IsZero() && v.LessThan(decimal.NewFromInt(1)) {
		return Invalid(field, "must be at least 1, got %s", v.String())
	}
	return nil
}

// CheckIntRange requires min <= v <= max.
func CheckIntRange(field string, v, min, max int) error {
	if v < min || v > max {
		return Invalid(field, "must be between %d and %d, got %d", min, max, v)
	}
	return nil
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
