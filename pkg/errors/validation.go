package errors

import "math"

// ValidateDimensions checks a canvas size in pixels against maxDim.
func ValidateDimensions(width, height, maxDim int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidDimension, "width and height must be positive integers, got %dx%d", width, height)
	}
	if width > maxDim || height > maxDim {
		return New(ErrCodeInvalidDimension, "width and height must be %d pixels or less, got %dx%d", maxDim, width, height)
	}
	return nil
}

// ValidateScale checks a device pixel ratio.
func ValidateScale(scale float64) error {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return New(ErrCodeInvalidInput, "scale must be a positive number, got %v", scale)
	}
	return nil
}

// ValidateGoal checks a daily step goal.
func ValidateGoal(goal int) error {
	if goal <= 0 {
		return New(ErrCodeInvalidInput, "goal must be a positive integer, got %d", goal)
	}
	return nil
}

// ValidateRecord checks a daily record against the number of days in a year.
func ValidateRecord(record []int, days int) error {
	if len(record) > days {
		return New(ErrCodeInvalidInput, "data has %d entries, a year has at most %d", len(record), days)
	}
	for i, steps := range record {
		if steps < 0 {
			return New(ErrCodeInvalidInput, "day %d has a negative step count (%d)", i+1, steps)
		}
	}
	return nil
}
