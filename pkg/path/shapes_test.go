package path

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCircle(t *testing.T) {
	points := Circle(2048, 2048, 500, 36, 1)
	if len(points) != 36 {
		t.Fatalf("got %d points, want 36", len(points))
	}
	if points[0] != (Point{A: 2548, B: 2048}) {
		t.Errorf("point 0 = %+v, want {2548 2048}", points[0])
	}
	// A quarter turn lands on top of the circle, give or take rounding.
	if q := points[9]; abs(q.A-2048) > 1 || abs(q.B-2548) > 1 {
		t.Errorf("point 9 = %+v, want about {2048 2548}", q)
	}
	for i, p := range points {
		da, db := float64(p.A-2048), float64(p.B-2048)
		r := math.Hypot(da, db)
		if math.Abs(r-500) > 1 {
			t.Errorf("point %d at radius %.2f, want 500", i, r)
		}
	}
}

func TestCircleLoops(t *testing.T) {
	single := Circle(2048, 2048, 500, 36, 1)
	triple := Circle(2048, 2048, 500, 36, 3)
	if len(triple) != 3*len(single) {
		t.Fatalf("got %d points, want %d", len(triple), 3*len(single))
	}
	for l := 0; l < 3; l++ {
		if diff := cmp.Diff(single, triple[l*36:(l+1)*36]); diff != "" {
			t.Errorf("loop %d differs (-want +got):\n%s", l, diff)
		}
	}
}

func TestCircleDeterministic(t *testing.T) {
	a := Circle(1000, 3000, 250, 12, 2)
	b := Circle(1000, 3000, 250, 12, 2)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("repeated call differs (-first +second):\n%s", diff)
	}
}

func TestCircleInvalidArgs(t *testing.T) {
	if got := Circle(2048, 2048, 500, 0, 1); got != nil {
		t.Errorf("numPoints=0: got %v, want nil", got)
	}
	if got := Circle(2048, 2048, 500, 36, 0); got != nil {
		t.Errorf("loops=0: got %v, want nil", got)
	}
}

func TestPolygon(t *testing.T) {
	const (
		sides        = 8
		perSide      = 10
		sideLength   = 300.0
		centerA      = 2048
		centerB      = 2048
		circumradius = sideLength / 0.76536686473 // 2·sin(π/8)
	)

	points := Polygon(centerA, centerB, sideLength, sides, perSide)
	if len(points) != sides*perSide {
		t.Fatalf("got %d points, want %d", len(points), sides*perSide)
	}

	// The first point of each side is that side's starting vertex.
	for k := 0; k < sides; k++ {
		theta := 2 * math.Pi * float64(k) / float64(sides)
		want := Point{
			A: round(centerA + circumradius*math.Cos(theta)),
			B: round(centerB + circumradius*math.Sin(theta)),
		}
		if got := points[k*perSide]; got != want {
			t.Errorf("side %d start = %+v, want %+v", k, got, want)
		}
	}

	// Interior points stay on the chord between consecutive vertices,
	// so each side's A and B progress monotonically.
	for k := 0; k < sides; k++ {
		side := points[k*perSide : (k+1)*perSide]
		for i := 1; i < len(side); i++ {
			if sign(side[i].A-side[i-1].A)*sign(side[perSide-1].A-side[0].A) < 0 {
				t.Errorf("side %d not monotonic in A: %v", k, side)
				break
			}
		}
	}
}

func TestPolygonInvalidArgs(t *testing.T) {
	if got := Polygon(2048, 2048, 300, 2, 10); got != nil {
		t.Errorf("sides=2: got %v, want nil", got)
	}
	if got := Polygon(2048, 2048, 300, 6, 0); got != nil {
		t.Errorf("pointsPerSide=0: got %v, want nil", got)
	}
}

func TestPolygonTriangleClosure(t *testing.T) {
	// The last interpolated point of the final side sits one step short
	// of the starting vertex, so the path closes when replayed.
	points := Polygon(0, 0, 1000, 3, 10)
	start := points[0]
	last := points[len(points)-1]
	first := Polygon(0, 0, 1000, 3, 10)[0]
	if start != first {
		t.Fatalf("start not deterministic: %+v vs %+v", start, first)
	}
	d := math.Hypot(float64(last.A-start.A), float64(last.B-start.B))
	if d > 1000.0/10+1 {
		t.Errorf("gap from last point to start is %.1f steps, want within one interpolation step", d)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
