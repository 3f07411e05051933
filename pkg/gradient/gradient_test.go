package gradient

import (
	"image"
	"image/color"
	"testing"
)

var (
	silver    = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	steelBlue = color.RGBA{R: 0x7d, G: 0xa6, B: 0xff, A: 0xff}
)

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestEndpoints(t *testing.T) {
	boxes := []image.Rectangle{
		image.Rect(10, 20, 200, 80),
		image.Rect(0, 0, 5, 2),
		image.Rect(-4, -30, 4, 300),
	}
	for _, box := range boxes {
		v := New(box, silver, steelBlue)
		if got := v.At(v.Y0); got != silver {
			t.Errorf("%v: At(y0) = %v, want %v", box, got, silver)
		}
		if got := v.At(v.Y1); got != steelBlue {
			t.Errorf("%v: At(y1) = %v, want %v", box, got, steelBlue)
		}
	}
}

func TestMidpointRounds(t *testing.T) {
	black := color.RGBA{A: 0xff}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	// Rows 0..2: the middle row sits at t = 0.5, 127.5 rounds up.
	v := New(image.Rect(0, 0, 1, 3), black, white)
	got := v.At(1)
	want := color.RGBA{R: 128, G: 128, B: 128, A: 0xff}
	if got != want {
		t.Errorf("At(1) = %v, want %v", got, want)
	}
}

func TestClampsOutsideBounds(t *testing.T) {
	v := New(image.Rect(0, 10, 10, 20), silver, steelBlue)
	if got := v.At(-100); got != silver {
		t.Errorf("At above box = %v, want top color", got)
	}
	if got := v.At(1000); got != steelBlue {
		t.Errorf("At below box = %v, want bottom color", got)
	}
}

func TestSingleRow(t *testing.T) {
	v := New(image.Rect(0, 5, 10, 6), silver, steelBlue)
	if v.Y0 != v.Y1 {
		t.Fatalf("single row box: y0=%d y1=%d", v.Y0, v.Y1)
	}
	if got := v.At(5); got != silver {
		t.Errorf("single row = %v, want top color", got)
	}
}

func TestMonotonicChannels(t *testing.T) {
	v := New(image.Rect(0, 0, 1, 100), silver, steelBlue)
	prev := v.At(0)
	for y := 1; y < 100; y++ {
		c := v.At(y)
		if c.R > prev.R || c.G > prev.G || c.B < prev.B {
			t.Fatalf("row %d: %v does not move monotonically from %v", y, c, prev)
		}
		if absDiff(c.R, prev.R) > 2 || absDiff(c.B, prev.B) > 2 {
			t.Fatalf("row %d: jump from %v to %v", y, prev, c)
		}
		prev = c
	}
}

func TestImage(t *testing.T) {
	box := image.Rect(3, 7, 13, 27)
	img := New(box, silver, steelBlue).Image()
	if img.Bounds() != box {
		t.Fatalf("Image bounds = %v, want %v", img.Bounds(), box)
	}
	if got := img.RGBAAt(3, 7); got != silver {
		t.Errorf("top-left = %v, want %v", got, silver)
	}
	if got := img.RGBAAt(12, 26); got != steelBlue {
		t.Errorf("bottom-right = %v, want %v", got, steelBlue)
	}
	if img.RGBAAt(3, 15) != img.RGBAAt(12, 15) {
		t.Error("a row must have a single color")
	}
}

func TestFillClipsToDestination(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	v := New(image.Rect(5, 5, 20, 20), silver, steelBlue)
	v.Fill(dst, v.Bounds)
	if dst.RGBAAt(4, 4) != (color.RGBA{}) {
		t.Error("pixels outside the gradient box must be untouched")
	}
	if dst.RGBAAt(5, 5) != silver {
		t.Errorf("first gradient pixel = %v, want %v", dst.RGBAAt(5, 5), silver)
	}
}
