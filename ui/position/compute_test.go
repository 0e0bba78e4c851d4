package position

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFlipFallsBackToClamp(t *testing.T) {
	// Neither side fits: bottom overflows (38+400 > 412) and top would start
	// at -398, so the panel is clamped and keeps the requested placement.
	trigger := Geometry{Top: 10, Left: 10, Width: 50, Height: 20, Bottom: 30, Right: 60}
	panel := Size(100, 400)
	viewport := Viewport{Width: 500, Height: 420}

	got := Compute(trigger, panel, BottomStart, viewport, 8, 8)

	assert.Equal(t, 12, got.Top)
	assert.Equal(t, 10, got.Left)
	assert.Equal(t, BottomStart, got.Placement)
}

func TestComputeAnchoring(t *testing.T) {
	trigger := NewGeometry(10, 20, 10, 1)
	panel := Size(6, 4)
	viewport := Viewport{Width: 80, Height: 40}

	tests := []struct {
		name      string
		placement Placement
		wantTop   int
		wantLeft  int
	}{
		{name: "bottom centers", placement: Bottom, wantTop: 12, wantLeft: 22},
		{name: "bottom-start aligns left edges", placement: BottomStart, wantTop: 12, wantLeft: 20},
		{name: "bottom-end aligns right edges", placement: BottomEnd, wantTop: 12, wantLeft: 24},
		{name: "top centers", placement: Top, wantTop: 5, wantLeft: 22},
		{name: "top-start aligns left edges", placement: TopStart, wantTop: 5, wantLeft: 20},
		{name: "top-end aligns right edges", placement: TopEnd, wantTop: 5, wantLeft: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(trigger, panel, tt.placement, viewport, 1, 1)
			assert.Equal(t, tt.wantTop, got.Top, "top")
			assert.Equal(t, tt.wantLeft, got.Left, "left")
			assert.Equal(t, tt.placement, got.Placement, "nothing overflows, placement is unchanged")
		})
	}
}

func TestComputeVerticalFlip(t *testing.T) {
	viewport := Viewport{Width: 80, Height: 40}

	t.Run("bottom flips to top when the bottom edge overflows", func(t *testing.T) {
		trigger := NewGeometry(30, 10, 10, 1)
		got := Compute(trigger, Size(20, 10), BottomStart, viewport, 1, 1)
		assert.Equal(t, TopStart, got.Placement)
		assert.Equal(t, 19, got.Top)
		assert.Equal(t, 10, got.Left)
	})

	t.Run("top flips to bottom when the top edge overflows", func(t *testing.T) {
		trigger := NewGeometry(2, 10, 10, 1)
		got := Compute(trigger, Size(20, 10), TopEnd, viewport, 1, 1)
		assert.Equal(t, BottomEnd, got.Placement)
		assert.Equal(t, 4, got.Top)
	})

	t.Run("top clamps when neither side fits", func(t *testing.T) {
		small := Viewport{Width: 80, Height: 12}
		trigger := NewGeometry(5, 10, 10, 1)
		got := Compute(trigger, Size(20, 10), TopStart, small, 1, 1)
		assert.Equal(t, TopStart, got.Placement)
		assert.Equal(t, 1, got.Top)
	})
}

func TestComputeHorizontalClampKeepsAlignment(t *testing.T) {
	viewport := Viewport{Width: 80, Height: 40}

	t.Run("right edge", func(t *testing.T) {
		trigger := NewGeometry(5, 75, 5, 1)
		got := Compute(trigger, Size(20, 5), BottomStart, viewport, 1, 1)
		assert.Equal(t, 59, got.Left)
		assert.Equal(t, BottomStart, got.Placement)
	})

	t.Run("left edge", func(t *testing.T) {
		trigger := NewGeometry(5, 0, 4, 1)
		got := Compute(trigger, Size(20, 5), BottomEnd, viewport, 1, 1)
		assert.Equal(t, 1, got.Left)
		assert.Equal(t, BottomEnd, got.Placement)
	})
}

func TestComputeDegenerateInputs(t *testing.T) {
	viewport := Viewport{Width: 40, Height: 20}
	trigger := NewGeometry(5, 5, 10, 1)

	t.Run("zero size panel", func(t *testing.T) {
		got := Compute(trigger, Size(0, 0), Bottom, viewport, 1, 1)
		assert.Equal(t, 7, got.Top)
		assert.Equal(t, 10, got.Left)
	})

	t.Run("panel larger than viewport pins to margin", func(t *testing.T) {
		got := Compute(trigger, Size(100, 100), BottomStart, viewport, 1, 1)
		assert.Equal(t, 1, got.Top)
		assert.Equal(t, 1, got.Left)
		assert.Equal(t, BottomStart, got.Placement)
	})

	t.Run("panel wider than viewport keeps left at margin", func(t *testing.T) {
		got := Compute(NewGeometry(10, 20, 50, 20), Size(600, 50), BottomStart, Viewport{Width: 500, Height: 420}, 8, 8)
		assert.Equal(t, 8, got.Left, "not 500-600-8")
		assert.Equal(t, 38, got.Top)
	})

	t.Run("trigger scrolled above the viewport", func(t *testing.T) {
		above := NewGeometry(-30, 5, 10, 1)
		got := Compute(above, Size(10, 5), BottomStart, viewport, 1, 1)
		assert.Equal(t, 1, got.Top)
	})

	t.Run("trigger scrolled below the viewport", func(t *testing.T) {
		below := NewGeometry(60, 5, 10, 1)
		got := Compute(below, Size(10, 5), TopStart, viewport, 1, 1)
		assert.Equal(t, 14, got.Top)
	})
}

func TestComputeIsDeterministic(t *testing.T) {
	trigger := NewGeometry(17, 33, 12, 1)
	panel := Size(30, 14)
	viewport := Viewport{Width: 90, Height: 30}

	first := Compute(trigger, panel, Bottom, viewport, 1, 2)
	for i := 0; i < 50; i++ {
		require.Equal(t, first, Compute(trigger, panel, Bottom, viewport, 1, 2))
	}
}

func TestComputeStaysInsideViewportWhenPanelFits(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		margin := rng.Intn(4)
		offset := rng.Intn(4)
		viewport := Viewport{Width: 20 + rng.Intn(200), Height: 10 + rng.Intn(80)}
		panel := Size(
			rng.Intn(viewport.Width-2*margin+1),
			rng.Intn(viewport.Height-2*margin+1),
		)
		trigger := NewGeometry(
			rng.Intn(viewport.Height*3)-viewport.Height,
			rng.Intn(viewport.Width*3)-viewport.Width,
			1+rng.Intn(20),
			1+rng.Intn(3),
		)
		placement := Placements()[rng.Intn(len(Placements()))]

		got := Compute(trigger, panel, placement, viewport, offset, margin)

		if got.Left < margin || got.Left > viewport.Width-panel.Width-margin ||
			got.Top < margin || got.Top > viewport.Height-panel.Height-margin {
			t.Fatalf("panel %v escaped viewport %+v (margin %d): trigger=%v placement=%v got=%v",
				panel, viewport, margin, trigger, placement, got)
		}
		assert.Equal(t, placement.Align(), got.Placement.Align(), "alignment never changes")
	}
}
