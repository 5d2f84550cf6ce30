package fields

import "fmt"

// Point is an affine curve point whose coordinates live in the BN254 scalar
// field. Owner public keys are carried through oracle calls as Points.
type Point struct {
	X Fr
	Y Fr
}

// NewPoint builds a Point from its coordinates.
func NewPoint(x, y Fr) Point {
	return Point{X: x, Y: y}
}

// IsZero reports whether both coordinates are zero. Such a point is used as
// an "empty" marker and never lies on the curve.
func (p Point) IsZero() bool {
	return p.X.IsZero() && p.Y.IsZero()
}

// ToFields returns [x, y].
func (p Point) ToFields() []Fr {
	return []Fr{p.X, p.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", p.X, p.Y)
}
