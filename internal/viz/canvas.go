package viz

import (
	"strings"

	"github.com/robosim-dev/swervesim/internal/geom"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel grid with a viewport mapping field coordinates
// (meters, +X up the screen, +Y left) onto sub-pixel cells. The canvas size
// in sub-pixels is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	center geom.Vector2 // field point at the middle of the canvas
	scale  float64      // sub-pixels per meter
}

func NewCanvas(w, h int, metersAcross float64) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		scale:  float64(w*2) / metersAcross,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Center re-aims the viewport at the given field point.
func (c *Canvas) Center(p geom.Vector2) { c.center = p }

// project maps a field point to sub-pixel coordinates. Field +X points up
// the screen and +Y points left, so the robot drives "up" when commanded
// forward.
func (c *Canvas) project(p geom.Vector2) (int, int) {
	rel := p.Sub(c.center)
	x := c.Width - int(rel.Y*c.scale)
	y := c.Height*2 - int(rel.X*c.scale)
	return x, y
}

// Set lights the sub-pixel at (x, y).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// SetField lights the sub-pixel nearest the given field point.
func (c *Canvas) SetField(p geom.Vector2) {
	x, y := c.project(p)
	c.Set(x, y)
}

// Clear resets the canvas.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a sub-pixel line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawFieldLine draws a line between two field points.
func (c *Canvas) DrawFieldLine(a, b geom.Vector2) {
	x0, y0 := c.project(a)
	x1, y1 := c.project(b)
	c.DrawLine(x0, y0, x1, y1)
}

// DrawFieldPolygon draws a closed polygon through the given field points.
func (c *Canvas) DrawFieldPolygon(points ...geom.Vector2) {
	if len(points) < 2 {
		return
	}
	for i := range points {
		c.DrawFieldLine(points[i], points[(i+1)%len(points)])
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
