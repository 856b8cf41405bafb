package overlay

import (
	"image"
	"testing"
)

func TestNewScale(t *testing.T) {
	t.Run("maps reference space to surface space", func(t *testing.T) {
		sc := NewScale(640, 480, 1280, 960)
		if sc.X != 2 || sc.Y != 2 {
			t.Errorf("expected 2x scale, got %+v", sc)
		}
		if got := sc.Point(100, 50); got != image.Pt(200, 100) {
			t.Errorf("expected (200,100), got %v", got)
		}
	})

	t.Run("non-uniform scaling", func(t *testing.T) {
		sc := NewScale(640, 480, 320, 960)
		if got := sc.Point(640, 480); got != image.Pt(320, 960) {
			t.Errorf("expected (320,960), got %v", got)
		}
	})

	t.Run("degenerate reference maps 1:1", func(t *testing.T) {
		sc := NewScale(0, 0, 1280, 960)
		if got := sc.Point(10, 20); got != image.Pt(10, 20) {
			t.Errorf("expected identity mapping, got %v", got)
		}
	})

	t.Run("rounds to nearest pixel", func(t *testing.T) {
		sc := NewScale(3, 3, 2, 2)
		if got := sc.Point(2, 2); got != image.Pt(1, 1) {
			t.Errorf("expected (1,1), got %v", got)
		}
	})
}

func TestJointRadius(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{100, 6},   // clamped low
		{480, 6},   // 480/80 = 6
		{640, 8},   // 640/80 = 8
		{960, 12},  // 960/80 = 12
		{1920, 12}, // clamped high
	}
	for _, tt := range tests {
		if got := JointRadius(tt.width); got != tt.want {
			t.Errorf("JointRadius(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestBadgeColor(t *testing.T) {
	tests := []struct {
		name     string
		accuracy float64
		want     [3]uint8
	}{
		{"high is green", 92, [3]uint8{ColorCorrect.R, ColorCorrect.G, ColorCorrect.B}},
		{"boundary 80 is green", 80, [3]uint8{ColorCorrect.R, ColorCorrect.G, ColorCorrect.B}},
		{"middle is amber", 65, [3]uint8{ColorAmber.R, ColorAmber.G, ColorAmber.B}},
		{"boundary 50 is amber", 50, [3]uint8{ColorAmber.R, ColorAmber.G, ColorAmber.B}},
		{"low is red", 45, [3]uint8{ColorWrong.R, ColorWrong.G, ColorWrong.B}},
		{"zero is red", 0, [3]uint8{ColorWrong.R, ColorWrong.G, ColorWrong.B}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := BadgeColor(tt.accuracy)
			if got := [3]uint8{c.R, c.G, c.B}; got != tt.want {
				t.Errorf("BadgeColor(%g) = %v, want %v", tt.accuracy, got, tt.want)
			}
		})
	}
}

func TestJointColor(t *testing.T) {
	if JointColor(true) != ColorCorrect {
		t.Error("correct joints must be green")
	}
	if JointColor(false) != ColorWrong {
		t.Error("incorrect joints must be red")
	}
	// Pure function of the flag: repeated calls are identical.
	if JointColor(true) != JointColor(true) {
		t.Error("joint color must be deterministic")
	}
}

func TestBadgeRect(t *testing.T) {
	r := BadgeRect(640)
	if r.Max.X > 640 {
		t.Errorf("badge overflows surface: %v", r)
	}
	if r.Min.Y <= 0 {
		t.Errorf("badge must sit inside the top edge: %v", r)
	}
	// Anchored top-right: a wider surface moves the badge right.
	wide := BadgeRect(1280)
	if wide.Min.X <= r.Min.X {
		t.Errorf("badge should track the right edge: %v vs %v", wide, r)
	}

	// Tiny surfaces keep the badge on-screen.
	small := BadgeRect(80)
	if small.Min.X < 0 {
		t.Errorf("badge off-screen on small surface: %v", small)
	}
}

func TestBadgeLabel(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     string
	}{
		{92, "92%"},
		{45, "45%"},
		{79.6, "80%"},
		{0, "0%"},
	}
	for _, tt := range tests {
		if got := BadgeLabel(tt.accuracy); got != tt.want {
			t.Errorf("BadgeLabel(%g) = %q, want %q", tt.accuracy, got, tt.want)
		}
	}
}
