// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "math"

// Normalized positions are clamped into [PositionMin, PositionMax] by
// every writer so the pin glyph stays fully inside the board bounds.
const (
	PositionMin = 0.02
	PositionMax = 0.98
)

// ClampPosition clamps a normalized coordinate into the writable range.
func ClampPosition(v float64) float64 {
	if v < PositionMin {
		return PositionMin
	}
	if v > PositionMax {
		return PositionMax
	}
	return v
}

// CategoryIndex derives the category band for a vertical position:
// min(floor(y * n), n-1), clamped at zero. Membership is a pure
// function of position, so it can never drift from the visual location.
func CategoryIndex(y float64, n int) int {
	if n <= 0 {
		return 0
	}
	idx := int(math.Floor(y * float64(n)))
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}
