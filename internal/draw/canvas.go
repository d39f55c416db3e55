package draw

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// maxChunkSize is the maximum bytes to write at once for smooth flow over
// SSH connections.
const maxChunkSize = 1400

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters, scaled from a fixed logical coordinate space to the actual
// terminal size. A rune overlay at cell resolution carries item glyphs on
// top of the pixel layer.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int    // termHeight * 2
	pixels         []bool // [y*termWidth + x]
	marks          []rune // [row*termWidth + col], 0 = no mark

	logicalWidth  float64
	logicalHeight float64 // In sub-pixels
	scaleX        float64
	scaleY        float64

	renderBuf strings.Builder
}

// NewCanvas creates a canvas mapping logical coordinates onto the given
// terminal dimensions.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth, logicalHeight: logicalHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the
// logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subPixelHeight := termHeight * 2
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]bool, subPixelHeight*termWidth)
		c.marks = make([]rune, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// Clear resets all pixels and marks.
func (c *Canvas) Clear() {
	clear(c.pixels)
	clear(c.marks)
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// SetFloat sets a pixel at logical coordinates.
func (c *Canvas) SetFloat(x, y float64) {
	c.setPixel(int(math.Round(x*c.scaleX)), int(math.Round(y*c.scaleY)))
}

// Mark places a glyph at the terminal cell covering the logical position.
// Marks render on top of the pixel layer.
func (c *Canvas) Mark(x, y float64, ch rune) {
	col := int(math.Round(x * c.scaleX))
	row := int(math.Round(y*c.scaleY)) / 2
	if col >= 0 && col < c.termWidth && row >= 0 && row < c.termHeight {
		c.marks[row*c.termWidth+col] = ch
	}
}

// DrawLine draws a line between two logical points using Bresenham's
// algorithm.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolyline draws connected segments through the given points.
func (c *Canvas) DrawPolyline(points []Point) {
	for i := 0; i+1 < len(points); i++ {
		c.DrawLine(points[i], points[i+1])
	}
}

// DrawRect draws an axis-aligned rectangle outline in logical space.
func (c *Canvas) DrawRect(x, y, w, h float64) {
	c.DrawLine(Point{x, y}, Point{x + w, y})
	c.DrawLine(Point{x + w, y}, Point{x + w, y + h})
	c.DrawLine(Point{x + w, y + h}, Point{x, y + h})
	c.DrawLine(Point{x, y + h}, Point{x, y})
}

// Render outputs the canvas using half-block characters, marks last so item
// glyphs stay visible. Output is chunked for smooth network flow.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 12)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			if mark := c.marks[row*c.termWidth+col]; mark != 0 {
				fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%c", row+1, col+1, mark)
				continue
			}

			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			var ch rune
			switch {
			case top && bottom:
				ch = BlockFull
			case top:
				ch = BlockUpperHalf
			case bottom:
				ch = BlockLowerHalf
			default:
				continue
			}
			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%c", row+1, col+1, ch)
		}
	}

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}
