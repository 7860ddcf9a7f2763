package dxfpath

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

// square returns a closed counter-clockwise square with its lower left corner
// at (x, y).
func square(x, y, size float64) *Path {
	return FromVertices([]Vec3{
		Pt(x, y),
		Pt(x+size, y),
		Pt(x+size, y+size),
		Pt(x, y+size),
	}, true)
}

func TestSignedArea2D(t *testing.T) {
	ccw := []Vec3{Pt(0, 0), Pt(2, 0), Pt(2, 3), Pt(0, 3)}
	diff(t, 6.0, SignedArea2D(ccw))
	cw := []Vec3{Pt(0, 0), Pt(0, 3), Pt(2, 3), Pt(2, 0)}
	diff(t, -6.0, SignedArea2D(cw))
	diff(t, 0.0, SignedArea2D(ccw[:2]))
}

func TestOrientation(t *testing.T) {
	tests := []struct {
		name string
		p    *Path
		want Winding
	}{
		{"ccw", square(0, 0, 1), CounterClockwise},
		{"cw", square(0, 0, 1).Reversed(), Clockwise},
		{"circle", func() *Path {
			p := &Path{}
			p.AddEllipse(EllipseFromArc(Pt(5, 5), 1, ZAxis, 0, 360), 1, false)
			return p
		}(), CounterClockwise},
		{"open", FromVertices([]Vec3{Pt(0, 0), Pt(1, 0), Pt(1, 1)}, false), CounterClockwise},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Orientation(tt.p)
			if err != nil {
				t.Fatal(err)
			}
			diff(t, tt.want, got)
		})
	}
}

func TestOrientationIndeterminate(t *testing.T) {
	tests := []struct {
		name string
		p    *Path
	}{
		{"empty", NewPath(Pt(1, 1))},
		{"line", FromVertices([]Vec3{Pt(0, 0), Pt(1, 0)}, false)},
		{"back and forth", FromVertices([]Vec3{Pt(0, 0), Pt(1, 0), Pt(0, 0)}, false)},
		{"collinear", FromVertices([]Vec3{Pt(0, 0), Pt(1, 1), Pt(2, 2)}, true)},
		{"figure eight", FromVertices([]Vec3{Pt(0, 0), Pt(2, 2), Pt(2, 0), Pt(0, 2)}, true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Orientation(tt.p); !errors.Is(err, ErrIndeterminateOrientation) {
				t.Errorf("got error %v, want %v", err, ErrIndeterminateOrientation)
			}
			if _, err := Orient(tt.p, Clockwise); !errors.Is(err, ErrIndeterminateOrientation) {
				t.Errorf("got error %v, want %v", err, ErrIndeterminateOrientation)
			}
		})
	}
}

func TestOrient(t *testing.T) {
	p := square(0, 0, 1)
	got, err := Orient(p, CounterClockwise)
	if err != nil {
		t.Fatal(err)
	}
	if got != p {
		t.Error("correctly oriented path should be returned as is")
	}
	got, err = Orient(p, Clockwise)
	if err != nil {
		t.Fatal(err)
	}
	if w, _ := Orientation(got); w != Clockwise {
		t.Errorf("got %v, want %v", w, Clockwise)
	}
}

func TestGroup(t *testing.T) {
	outer := square(0, 0, 10)
	hole := square(2, 2, 6).Reversed()
	island := square(4, 4, 2)
	secondHole := square(8.5, 8.5, 1)
	other := square(20, 0, 3).Reversed()
	degenerate := FromVertices([]Vec3{Pt(0, 0), Pt(5, 5), Pt(0, 0)}, false)

	groups := Group([]*Path{island, degenerate, other, hole, secondHole, outer})
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	first := groups[0]
	if len(first) != 4 {
		t.Fatalf("got %d paths in first group, want 4", len(first))
	}
	wantBoxes := []Box{
		outer.BoundingBox(),
		hole.BoundingBox(),
		island.BoundingBox(),
		secondHole.BoundingBox(),
	}
	wantWindings := []Winding{CounterClockwise, Clockwise, CounterClockwise, Clockwise}
	for i, p := range first {
		diff(t, wantBoxes[i], p.BoundingBox(), boxComparer)
		w, err := Orientation(p)
		if err != nil {
			t.Fatal(err)
		}
		diff(t, wantWindings[i], w)
	}

	second := groups[1]
	if len(second) != 1 {
		t.Fatalf("got %d paths in second group, want 1", len(second))
	}
	diff(t, other.BoundingBox(), second[0].BoundingBox(), boxComparer)
	if w, _ := Orientation(second[0]); w != CounterClockwise {
		t.Errorf("exterior has winding %v, want %v", w, CounterClockwise)
	}
}

func TestGroupEqualAreas(t *testing.T) {
	a := square(0, 0, 1)
	b := square(5, 0, 1)
	c := square(0, 0, 1)
	groups := Group([]*Path{a, b, c})
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	for i, want := range []*Path{a, b, c} {
		if groups[i][0] != want {
			t.Errorf("group %d doesn't start with input path %d", i, i)
		}
	}
}

func TestGroupTouching(t *testing.T) {
	outer := square(0, 0, 10)
	inner := square(0, 0, 5)
	groups := Group([]*Path{inner, outer})
	if len(groups) != 1 || len(groups[0]) != 2 {
		t.Fatalf("got groups %v, want one group of two paths", groups)
	}
}

func TestGroupEmpty(t *testing.T) {
	if groups := Group(nil); groups != nil {
		t.Errorf("got %v, want nil", groups)
	}
	degenerate := FromVertices([]Vec3{Pt(0, 0), Pt(5, 5)}, false)
	if groups := Group([]*Path{degenerate}); len(groups) != 0 {
		t.Errorf("got %v, want no groups", groups)
	}
}

var boxComparer = cmp.Comparer(func(a, b Box) bool {
	return a.Min.IsClose(b.Min, 1e-9) && a.Max.IsClose(b.Max, 1e-9)
})
