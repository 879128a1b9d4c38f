package geometry

import (
	"image"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/scan-diagrams/internal/errors"
)

func TestRescale_Example(t *testing.T) {
	region := &Region{X1: 10, Y1: 10, X2: 50, Y2: 60}

	got, err := Rescale(region, SourceSpace{Width: 100, Height: 100}, DestSpace{Width: 200, Height: 200})
	if err != nil {
		t.Fatalf("Rescale failed: %v", err)
	}

	want := &Rescaled{X: 20, Y: 180, X2: 100, Y2: 80}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rescale mismatch (-want +got):\n%s", diff)
	}
	if got.Width() != 80 || got.Height() != 100 {
		t.Errorf("size: got %dx%d, want 80x100", got.Width(), got.Height())
	}
	if n := got.Normalized(); n != image.Rect(20, 80, 100, 180) {
		t.Errorf("Normalized: got %v, want (20,80)-(100,180)", n)
	}
}

func TestRescale_NilRegion(t *testing.T) {
	got, err := Rescale(nil, SourceSpace{Width: 100, Height: 100}, DestSpace{Width: 200, Height: 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestRescale_InvalidDimension(t *testing.T) {
	region := &Region{X1: 1, Y1: 1, X2: 2, Y2: 2}
	tests := []struct {
		name string
		src  SourceSpace
		dst  DestSpace
	}{
		{"zero source width", SourceSpace{Width: 0, Height: 100}, DestSpace{Width: 200, Height: 200}},
		{"zero source height", SourceSpace{Width: 100, Height: 0}, DestSpace{Width: 200, Height: 200}},
		{"negative source width", SourceSpace{Width: -5, Height: 100}, DestSpace{Width: 200, Height: 200}},
		{"NaN source height", SourceSpace{Width: 100, Height: math.NaN()}, DestSpace{Width: 200, Height: 200}},
		{"infinite source width", SourceSpace{Width: math.Inf(1), Height: 100}, DestSpace{Width: 200, Height: 200}},
		{"zero dest width", SourceSpace{Width: 100, Height: 100}, DestSpace{Width: 0, Height: 200}},
		{"negative dest height", SourceSpace{Width: 100, Height: 100}, DestSpace{Width: 200, Height: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rescale(region, tt.src, tt.dst)
			if err == nil {
				t.Fatalf("expected error, got %+v", got)
			}
			if !errors.Is(err, errors.ErrCodeInvalidDimension) {
				t.Errorf("error code: got %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidDimension)
			}
			if got != nil {
				t.Errorf("result should be nil on error, got %+v", got)
			}
		})
	}
}

func TestRescale_MalformedRegion(t *testing.T) {
	src := SourceSpace{Width: 100, Height: 100}
	dst := DestSpace{Width: 200, Height: 200}
	tests := []struct {
		name   string
		region Region
		src    SourceSpace
	}{
		{"NaN x1", Region{X1: math.NaN(), Y1: 0, X2: 1, Y2: 1}, src},
		{"Inf y2", Region{X1: 0, Y1: 0, X2: 1, Y2: math.Inf(-1)}, src},
		{"NaN offset", Region{X1: 0, Y1: 0, X2: 1, Y2: 1}, SourceSpace{Width: 100, Height: 100, OffsetX: math.NaN()}},
		{"huge x2", Region{X1: 0, Y1: 0, X2: 1e300, Y2: 1}, src},
		{"huge negative x1", Region{X1: -1e18, Y1: 0, X2: 1, Y2: 1}, src},
		{"huge y1", Region{X1: 0, Y1: 1e15, X2: 1, Y2: 1}, src},
		{"scale overflows", Region{X1: 0, Y1: 0, X2: math.MaxFloat64, Y2: 1}, src},
		{"offset pushes out of range", Region{X1: 0, Y1: 0, X2: 1, Y2: 1}, SourceSpace{Width: 100, Height: 100, OffsetX: 1e12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.region
			_, err := Rescale(&r, tt.src, dst)
			if !errors.Is(err, errors.ErrCodeMalformedRegion) {
				t.Errorf("error: got %v, want %s", err, errors.ErrCodeMalformedRegion)
			}
		})
	}
}

func TestRescale_Identity(t *testing.T) {
	region := &Region{X1: 12, Y1: 30, X2: 70, Y2: 95}
	got, err := Rescale(region, SourceSpace{Width: 120, Height: 150}, DestSpace{Width: 120, Height: 150})
	if err != nil {
		t.Fatalf("Rescale failed: %v", err)
	}

	if got.Y != 150-30 {
		t.Errorf("Y: got %d, want %d", got.Y, 150-30)
	}
	if got.Y2 != 150-95 {
		t.Errorf("Y2: got %d, want %d", got.Y2, 150-95)
	}
	if got.X != 12 || got.X2 != 70 {
		t.Errorf("x unchanged expected: got %d,%d want 12,70", got.X, got.X2)
	}
}

func TestRescale_OffsetAppliedToXOnly(t *testing.T) {
	region := &Region{X1: 30, Y1: 20, X2: 60, Y2: 40}
	dst := DestSpace{Width: 100, Height: 100}

	base, err := Rescale(region, SourceSpace{Width: 100, Height: 100}, dst)
	if err != nil {
		t.Fatalf("Rescale failed: %v", err)
	}
	shifted, err := Rescale(region, SourceSpace{Width: 100, Height: 100, OffsetX: 10, OffsetY: 15}, dst)
	if err != nil {
		t.Fatalf("Rescale failed: %v", err)
	}

	if shifted.X != base.X-10 || shifted.X2 != base.X2-10 {
		t.Errorf("x offset: got %d,%d want %d,%d", shifted.X, shifted.X2, base.X-10, base.X2-10)
	}
	if shifted.Y != base.Y || shifted.Y2 != base.Y2 {
		t.Errorf("y must ignore the vertical offset: got %d,%d want %d,%d", shifted.Y, shifted.Y2, base.Y, base.Y2)
	}
}

func TestRescale_OffsetThenScale(t *testing.T) {
	// the offset is removed in canvas units, before scaling
	region := &Region{X1: 30, Y1: 0, X2: 60, Y2: 10}
	got, err := Rescale(region, SourceSpace{Width: 100, Height: 100, OffsetX: 10}, DestSpace{Width: 300, Height: 100})
	if err != nil {
		t.Fatalf("Rescale failed: %v", err)
	}
	if got.X != 60 || got.X2 != 150 {
		t.Errorf("x: got %d,%d want 60,150", got.X, got.X2)
	}
}

func TestRescale_RoundHalfToEven(t *testing.T) {
	tests := []struct {
		x1    float64
		wantX int
	}{
		{1.25, 2}, // 2.5 -> 2
		{1.75, 4}, // 3.5 -> 4
		{2.25, 4}, // 4.5 -> 4
		{1.3, 3},  // 2.6 -> 3
	}
	for _, tt := range tests {
		region := &Region{X1: tt.x1, Y1: 0, X2: 10, Y2: 10}
		got, err := Rescale(region, SourceSpace{Width: 50, Height: 50}, DestSpace{Width: 100, Height: 100})
		if err != nil {
			t.Fatalf("Rescale failed: %v", err)
		}
		if got.X != tt.wantX {
			t.Errorf("x1=%v: got X=%d, want %d", tt.x1, got.X, tt.wantX)
		}
	}
}

func TestRescale_FlipAbsoluteValue(t *testing.T) {
	// the region sticks out above the canvas; the flip goes negative and is folded back
	region := &Region{X1: 0, Y1: 50, X2: 10, Y2: 150}
	got, err := Rescale(region, SourceSpace{Width: 100, Height: 100}, DestSpace{Width: 200, Height: 200})
	if err != nil {
		t.Fatalf("Rescale failed: %v", err)
	}
	if got.Y != 100 {
		t.Errorf("Y: got %d, want 100", got.Y)
	}
	if got.Y2 != 100 {
		t.Errorf("Y2: got %d, want |200-300| = 100", got.Y2)
	}
}

func TestRescale_IndependentAxes(t *testing.T) {
	region := &Region{X1: 10, Y1: 10, X2: 20, Y2: 20}
	got, err := Rescale(region, SourceSpace{Width: 100, Height: 50}, DestSpace{Width: 400, Height: 100})
	if err != nil {
		t.Fatalf("Rescale failed: %v", err)
	}
	want := &Rescaled{X: 40, Y: 80, X2: 80, Y2: 60}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rescale mismatch (-want +got):\n%s", diff)
	}
}

func TestRescale_DoesNotMutateInput(t *testing.T) {
	region := &Region{X1: 30, Y1: 20, X2: 60, Y2: 40}
	before := *region

	for i := 0; i < 3; i++ {
		if _, err := Rescale(region, SourceSpace{Width: 100, Height: 100, OffsetX: 7}, DestSpace{Width: 300, Height: 300}); err != nil {
			t.Fatalf("Rescale failed: %v", err)
		}
	}

	if *region != before {
		t.Errorf("region mutated: got %+v, want %+v", *region, before)
	}
}

func TestRescale_StaysInsideDestination(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		sw := 1 + rng.Float64()*1000
		sh := 1 + rng.Float64()*1000
		dw := 1 + rng.Intn(4000)
		dh := 1 + rng.Intn(4000)

		region := &Region{
			X1: rng.Float64() * sw,
			Y1: rng.Float64() * sh,
			X2: rng.Float64() * sw,
			Y2: rng.Float64() * sh,
		}

		got, err := Rescale(region, SourceSpace{Width: sw, Height: sh}, DestSpace{Width: dw, Height: dh})
		if err != nil {
			t.Fatalf("Rescale failed: %v", err)
		}

		for _, x := range []int{got.X, got.X2} {
			if x < -1 || x > dw+1 {
				t.Fatalf("x=%d outside [0,%d] for %+v src=%vx%v", x, dw, *region, sw, sh)
			}
		}
		for _, y := range []int{got.Y, got.Y2} {
			if y < -1 || y > dh+1 {
				t.Fatalf("y=%d outside [0,%d] for %+v src=%vx%v", y, dh, *region, sw, sh)
			}
		}
	}
}

func TestRescale_AtCoordinateLimit(t *testing.T) {
	r := &Region{X1: 0, Y1: 0, X2: MaxCoordinate, Y2: 1}
	out, err := Rescale(r, SourceSpace{Width: 1, Height: 1}, DestSpace{Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("Rescale failed: %v", err)
	}
	if out.X2 != MaxCoordinate {
		t.Errorf("X2: got %d, want %d", out.X2, MaxCoordinate)
	}
}
