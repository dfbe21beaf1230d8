package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille patterns hold 2x4 dots per cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
const blank = 0x2800

var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Tag marks what a cell shows so themes and captures can color it.
type Tag uint8

const (
	Plain Tag = iota
	Active
	Changed
	Settled
	Queued
	OnPath
	Endpoint
	NumTags
)

// Canvas is a grid of braille cells addressed in dot coordinates. A cell
// may instead hold a text rune, used for node labels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Tags          [][]Tag
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Tags:   make([][]Tag, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Tags[i] = make([]Tag, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) {
	return c.Width * 2, c.Height * 4
}

func (c *Canvas) cell(x, y int) (col, row int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	return col, row, col < c.Width && row < c.Height
}

// Set turns on the dot at (x, y).
func (c *Canvas) Set(x, y int) {
	c.Mark(x, y, Plain)
}

// Mark turns on the dot at (x, y) and tags its cell. A higher tag wins over
// a lower one already in the cell.
func (c *Canvas) Mark(x, y int, tag Tag) {
	col, row, ok := c.cell(x, y)
	if !ok || !isBraille(c.Grid[row][col]) {
		return
	}
	c.Grid[row][col] |= dotBits[y%4][x%2]
	c.Tags[row][col] = max(c.Tags[row][col], tag)
}

func (c *Canvas) Unset(x, y int) {
	col, row, ok := c.cell(x, y)
	if !ok || !isBraille(c.Grid[row][col]) {
		return
	}
	c.Grid[row][col] &^= dotBits[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Tags[i][j] = Plain
		}
	}
}

// DrawLine draws a tagged line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, tag Tag) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Mark(x0, y0, tag)
		if x0 == x1 && y0 == y1 {
			return
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

// FillRect marks every dot in the inclusive rectangle.
func (c *Canvas) FillRect(x0, y0, x1, y1 int, tag Tag) {
	for y := min(y0, y1); y <= max(y0, y1); y++ {
		for x := min(x0, x1); x <= max(x0, x1); x++ {
			c.Mark(x, y, tag)
		}
	}
}

// Text writes s into cells starting at (col, row), replacing any dots.
func (c *Canvas) Text(col, row int, s string, tag Tag) {
	if row < 0 || row >= c.Height {
		return
	}
	for i, r := range []rune(s) {
		if x := col + i; x >= 0 && x < c.Width {
			c.Grid[row][x] = r
			c.Tags[row][x] = tag
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render returns the canvas with every run of equally tagged cells styled
// by the theme.
func (c *Canvas) Render(th Theme) string {
	var b strings.Builder
	for r, row := range c.Grid {
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && c.Tags[r][i] == c.Tags[r][start] {
				continue
			}
			style := lipgloss.NewStyle().Foreground(th.TagColor(c.Tags[r][start]))
			b.WriteString(style.Render(string(row[start:i])))
			start = i
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func isBraille(r rune) bool {
	return r >= blank && r <= blank+0xff
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
