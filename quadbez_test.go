package dxfpath

import (
	"slices"
	"testing"
)

func TestBezier3PRaise(t *testing.T) {
	q := Bezier3P{
		Pt(3.1, 4.1),
		Pt(5.9, 2.6),
		Pt(5.3, 5.8),
	}
	c := q.Raise()
	for i := range 11 {
		ts := float64(i) / 10
		assertNear(t, c.Eval(ts), q.Eval(ts), 1e-12)
	}
}

func TestBezier3PSubdivide(t *testing.T) {
	q := Bezier3P{V(3.1, 4.1, 1), V(5.9, 2.6, 2), V(5.3, 5.8, 0)}
	q0, q1 := q.Subdivide()
	for i := range 11 {
		ts := float64(i) / 10
		assertNear(t, q0.Eval(ts), q.Eval(ts/2), 1e-12)
		assertNear(t, q1.Eval(ts), q.Eval(0.5+ts/2), 1e-12)
	}
	assertNear(t, q.Reverse().Eval(0.25), q.Eval(0.75), 1e-12)
}

func TestBezier3PFlatten(t *testing.T) {
	q := Bezier3P{Pt(0, 0), Pt(5, 10), Pt(10, 0)}
	vertices := slices.Collect(q.Flatten(0.01, 4))
	if len(vertices) < 5 {
		t.Fatalf("got %d vertices, want at least 5", len(vertices))
	}
	diff(t, q.P0, vertices[0])
	diff(t, q.P2, vertices[len(vertices)-1])
	if d := maxDeviation(q.Raise(), vertices); d > 0.01+1e-9 {
		t.Errorf("deviation %g exceeds 0.01", d)
	}
}
