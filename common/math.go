package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vector is the 2D vector used across the simulation. Y points up.
type Vector = cp.Vector

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// LerpVector interpolates from a to b by t.
func LerpVector(a, b Vector, t float64) Vector {
	return a.Lerp(b, t)
}

// RoundVector rounds both components half away from zero.
func RoundVector(v Vector) Vector {
	return Vector{X: math.Round(v.X), Y: math.Round(v.Y)}
}

// Up, Down, Left and Right nudge a point by one world unit.
func Up(v Vector) Vector    { return Vector{X: v.X, Y: v.Y + 1} }
func Down(v Vector) Vector  { return Vector{X: v.X, Y: v.Y - 1} }
func Left(v Vector) Vector  { return Vector{X: v.X - 1, Y: v.Y} }
func Right(v Vector) Vector { return Vector{X: v.X + 1, Y: v.Y} }

func Xor(a, b bool) bool {
	return a != b
}
