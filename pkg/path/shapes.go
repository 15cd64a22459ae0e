// Package path generates parametric two-joint paths in step space.
// Generators are pure: the same inputs always yield the same sequence.
// Clamping and dispatch to the arm are the caller's concern.
package path

import "math"

// Point is one target pair for the two driven joints, in raw steps.
type Point struct {
	A int
	B int
}

// Circle returns numPoints targets approximating a circle of the given
// radius (in steps) around the (centerA, centerB) pair, repeated loops
// times. Point i sits at angle 2π·i/numPoints, so point 0 is at
// (centerA+radius, centerB).
func Circle(centerA, centerB int, radius float64, numPoints, loops int) []Point {
	if numPoints <= 0 || loops <= 0 {
		return nil
	}
	points := make([]Point, 0, numPoints*loops)
	for l := 0; l < loops; l++ {
		for i := 0; i < numPoints; i++ {
			theta := 2 * math.Pi * float64(i) / float64(numPoints)
			points = append(points, Point{
				A: round(float64(centerA) + radius*math.Cos(theta)),
				B: round(float64(centerB) + radius*math.Sin(theta)),
			})
		}
	}
	return points
}

// Polygon returns targets tracing a regular polygon with the given
// number of sides. Vertices lie on the circumscribed circle of radius
// sideLength/(2·sin(π/sides)) around the center pair, at angles
// 2π·k/sides. Each side is linearly interpolated with pointsPerSide
// points, including the starting vertex and excluding the end vertex,
// which starts the next side.
func Polygon(centerA, centerB int, sideLength float64, sides, pointsPerSide int) []Point {
	if sides < 3 || pointsPerSide <= 0 {
		return nil
	}
	radius := sideLength / (2 * math.Sin(math.Pi/float64(sides)))

	vertices := make([][2]float64, sides)
	for k := 0; k < sides; k++ {
		theta := 2 * math.Pi * float64(k) / float64(sides)
		vertices[k] = [2]float64{
			float64(centerA) + radius*math.Cos(theta),
			float64(centerB) + radius*math.Sin(theta),
		}
	}

	points := make([]Point, 0, sides*pointsPerSide)
	for k := 0; k < sides; k++ {
		from := vertices[k]
		to := vertices[(k+1)%sides]
		for i := 0; i < pointsPerSide; i++ {
			t := float64(i) / float64(pointsPerSide)
			points = append(points, Point{
				A: round(from[0] + (to[0]-from[0])*t),
				B: round(from[1] + (to[1]-from[1])*t),
			})
		}
	}
	return points
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
