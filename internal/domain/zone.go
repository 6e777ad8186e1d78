package domain

import (
	"math"
	"time"
)

// Zone is a point of interest selected on the map.
type Zone struct {
	ID        string
	X         float64
	Y         float64
	CreatedAt time.Time
}

// Bounds limits accepted coordinates. The zero value accepts everything.
type Bounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (b Bounds) IsZero() bool {
	return b == Bounds{}
}

// Contains reports whether (x, y) lies inside b, edges included.
func (b Bounds) Contains(x, y float64) bool {
	if b.IsZero() {
		return true
	}
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// IsFinite reports whether both coordinates are real numbers.
func IsFinite(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && !math.IsNaN(y) && !math.IsInf(y, 0)
}
