package globe

import (
	"math"
	"testing"
)

func TestWrapLongitude(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{540, 180},
		{-540, 180},
		{359, -1},
		{-359, 1},
		{720 + 45, 45},
		{-720 - 45, -45},
	}
	for _, tt := range tests {
		got := WrapLongitude(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapLongitude(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got <= -180 || got > 180 {
			t.Errorf("WrapLongitude(%v) = %v, outside (-180, 180]", tt.in, got)
		}
	}
}

func TestProjectInBounds(t *testing.T) {
	sizes := []GridKey{{1, 1}, {20, 10}, {36, 18}, {79, 39}, {80, 40}}
	rotations := []float64{0, 3, -3, 90.5, 179.999, 180, -180, 359, 1234.5, -98765.25}
	for _, size := range sizes {
		for _, rot := range rotations {
			for lat := -90.0; lat <= 90; lat += 7.5 {
				for lon := -540.0; lon <= 540; lon += 11.25 {
					col, row := Project(lat, lon, rot, size.Width, size.Height)
					if col < 0 || col >= size.Width || row < 0 || row >= size.Height {
						t.Fatalf("Project(%v, %v, %v, %v) = (%d, %d), out of bounds",
							lat, lon, rot, size, col, row)
					}
				}
			}
		}
	}
}

func TestProjectSeamContinuity(t *testing.T) {
	for _, w := range []int{20, 21, 36, 80} {
		for _, rot := range []float64{0, 1, 45, 179, 180, 181, -270} {
			for _, lat := range []float64{-90, -45, 0, 45, 90} {
				east, _ := Project(lat, 180, rot, w, 10)
				west, _ := Project(lat, -180, rot, w, 10)
				d := (east - west + w) % w
				if d > 1 && d < w-1 {
					t.Errorf("w=%d rot=%v lat=%v: seam columns %d and %d differ by more than 1",
						w, rot, lat, east, west)
				}
			}
		}
	}
}

func TestProjectKnownCells(t *testing.T) {
	tests := []struct {
		lat, lon, rot float64
		col, row      int
	}{
		{0, 0, 0, 18, 9},
		{15, 0, 0, 18, 7},
		{90, -180, 0, 0, 0},
		{-90, 0, 0, 18, 17},
		{0, 0, 180, 0, 9},
		{0, 0, 15, 19, 9},
		{0, 175, 10, 0, 9},
	}
	for _, tt := range tests {
		col, row := Project(tt.lat, tt.lon, tt.rot, 36, 18)
		if col != tt.col || row != tt.row {
			t.Errorf("Project(%v, %v, %v, 36, 18) = (%d, %d), want (%d, %d)",
				tt.lat, tt.lon, tt.rot, col, row, tt.col, tt.row)
		}
	}
}

func TestProjectPanicsOnEmptyGrid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero width")
		}
	}()
	Project(0, 0, 0, 0, 10)
}

func TestCellCenterRoundTrip(t *testing.T) {
	const w, h = 37, 19
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			lat, lon := cellCenter(col, row, w, h)
			c, r := Project(lat, lon, 0, w, h)
			if c != col || r != row {
				t.Fatalf("cell (%d, %d) projects back to (%d, %d)", col, row, c, r)
			}
		}
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(-90, 90, 5)
	want := []float64{-90, -45, 0, 45, 90}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("Linspace[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if got := Linspace(3, 7, 1); len(got) != 1 || got[0] != 3 {
		t.Errorf("Linspace(3, 7, 1) = %v", got)
	}
	if got := Linspace(0, 1, 0); got != nil {
		t.Errorf("Linspace(0, 1, 0) = %v, want nil", got)
	}
}
