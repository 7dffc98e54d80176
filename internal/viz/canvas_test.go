package viz

import (
	"strings"
	"testing"

	"github.com/robosim-dev/swervesim/internal/geom"
)

func TestCanvasCenterProjection(t *testing.T) {
	c := NewCanvas(40, 20, 4.0)
	c.Center(geom.Vector2{X: 1.0, Y: 1.0})

	c.SetField(geom.Vector2{X: 1.0, Y: 1.0})

	if c.Grid[10][20] == 0x2800 {
		t.Error("viewport center did not land in the middle cell")
	}
}

func TestCanvasForwardIsUp(t *testing.T) {
	c := NewCanvas(40, 20, 4.0)

	// A point ahead of the viewport center (+X) must render above it.
	x, y := c.project(geom.Vector2{X: 1.0})
	cx, cy := c.project(geom.Vector2{})

	if y >= cy {
		t.Errorf("+X projected at row %d, center at %d; forward should be up", y, cy)
	}
	if x != cx {
		t.Errorf("+X should not move horizontally: %d vs %d", x, cx)
	}
}

func TestCanvasOutOfBoundsIgnored(t *testing.T) {
	c := NewCanvas(10, 5, 2.0)

	// Far outside the viewport; must not panic or wrap.
	c.SetField(geom.Vector2{X: 100, Y: -100})
	c.Set(-5, -5)

	if s := c.String(); strings.ContainsRune(s, 0x2801) {
		t.Error("out of bounds point lit a pixel")
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(10, 5, 2.0)
	c.SetField(geom.Vector2{})
	c.Clear()

	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("clear left pixels set")
			}
		}
	}
}
