// Package viewer renders a decorated street tile to a terminal: buildings,
// draped laundry lines and carpets, and the distance-gated animation in
// motion. Both the local and the SSH front ends run this loop.
package viewer

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/oldtown-game/decor/internal/config"
	"github.com/oldtown-game/decor/internal/curve"
	"github.com/oldtown-game/decor/internal/decor"
	"github.com/oldtown-game/decor/internal/draw"
	"github.com/oldtown-game/decor/internal/geom"
	"github.com/oldtown-game/decor/internal/input"
	"github.com/oldtown-game/decor/internal/scene"
)

const targetFPS = 30
const targetFrameTime = time.Second / targetFPS

// Logical render resolution; the canvas scales it to the real terminal.
const (
	logicalWidth  = 130.0
	logicalHeight = 84.0 // In sub-pixels, so 42 terminal rows
)

// Side-view projection: world X maps straight across, world Y is flipped
// onto the skyline.
const (
	groundRow = 78.0
	yScale    = 4.0
)

// Options configure a viewer session.
type Options struct {
	SessionSeed int64
	Tuning      config.Tuning
	TermSize    func() (int, int, error)
}

// Run drives the viewer until the user quits or the input stream closes.
func Run(r io.Reader, w io.Writer, opts Options) error {
	src := demoSource{seed: opts.SessionSeed}
	sc, err := scene.New(src, scene.Options{
		SessionSeed:      opts.SessionSeed,
		Constraints:      opts.Tuning.Constraints(),
		Bands:            opts.Tuning.Bands(),
		OrnamentVariants: 4,
	})
	if err != nil {
		return err
	}

	tile := scene.Tile{}
	batch := sc.Enter(tile)
	anchors := src.Anchors(tile)

	stream := input.StartStream(r)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	termW, termH, err := opts.TermSize()
	if err != nil {
		return err
	}
	canvas := draw.NewCanvas(termW, termH, logicalWidth, logicalHeight)

	simTime := 0.0
	lastTime := time.Now()

	for {
		frameStart := time.Now()
		simTime += frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		// ===== INPUT PHASE =====
		for {
			b, ok, closed := stream.Poll()
			if closed {
				return nil
			}
			if !ok {
				break
			}
			switch b {
			case 'q', 3, 27: // q, Ctrl-C, Esc
				draw.ClearScreen(w)
				return nil
			case 'n':
				tile.X++
				batch = sc.Enter(tile)
				anchors = src.Anchors(tile)
				draw.ClearScreen(w)
			case 'p':
				tile.X--
				batch = sc.Enter(tile)
				anchors = src.Anchors(tile)
				draw.ClearScreen(w)
			}
		}

		// ===== UPDATE PHASE =====
		if tw, th, err := opts.TermSize(); err == nil {
			canvas.Resize(tw, th)
		}
		viewerPos := orbit(simTime)
		sc.Advance(simTime, viewerPos)

		// ===== DRAW PHASE =====
		canvas.Clear()
		drawStreet(canvas, anchors)
		drawBatch(canvas, batch)
		canvas.Render(w)
		drawHUD(w, tile, batch, viewerPos, opts.Tuning)

		elapsed := time.Since(frameStart)
		if elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}
}

// orbit moves the viewer toward and away from the street so all three
// distance bands are exercised.
func orbit(t float64) geom.Vec3 {
	return geom.Vec3{
		X: 60,
		Y: 5,
		Z: 15 + 90*(0.5-0.5*math.Cos(0.12*t)),
	}
}

func project(p geom.Vec3) draw.Point {
	return draw.Point{X: p.X, Y: groundRow - p.Y*yScale}
}

func drawStreet(canvas *draw.Canvas, anchors []decor.AnchorCandidate) {
	canvas.DrawLine(draw.Point{X: 0, Y: groundRow}, draw.Point{X: logicalWidth, Y: groundRow})
	for _, a := range anchors {
		h := a.Height() * yScale
		canvas.DrawRect(a.Position.X-a.HalfWidth, groundRow-h, a.HalfWidth*2, h)
	}
}

func drawBatch(canvas *draw.Canvas, b *scene.Batch) {
	for di := range b.Descriptors {
		d := &b.Descriptors[di]

		pts := curve.Polyline(d.Start, d.End, d.Sag, curve.DefaultSegments)
		line := make([]draw.Point, len(pts))
		for i, p := range pts {
			line[i] = project(p)
		}
		canvas.DrawPolyline(line)

		switch d.Kind {
		case decor.KindCarpet:
			drawCarpet(canvas, b, di, d)
		default:
			for ai := 0; ai < b.ItemCount(di); ai++ {
				p := project(b.ItemPosition(di, ai))
				canvas.Mark(p.X, p.Y, tiltGlyph(b.ItemRotation(di, ai)))
			}
		}
	}
}

// drawCarpet hangs the carpet body below the curve, shifted by the current
// animation offset of its single instance.
func drawCarpet(canvas *draw.Canvas, b *scene.Batch, di int, d *decor.Descriptor) {
	mid := curve.SamplePoint(d.Start, d.End, d.Sag, 0.5)
	off := b.ItemPosition(di, 0).Sub(mid)
	depth := d.Width * yScale
	for i := 1; i < 8; i++ {
		t := float64(i) / 8
		p := project(curve.SamplePoint(d.Start, d.End, d.Sag, t).Add(off))
		canvas.DrawLine(p, draw.Point{X: p.X, Y: p.Y + depth})
	}
}

// tiltGlyph visualizes the rotational jitter of a cloth item.
func tiltGlyph(rot float64) rune {
	switch {
	case rot < -0.04:
		return '\\'
	case rot > 0.04:
		return '/'
	default:
		return '|'
	}
}

func drawHUD(w io.Writer, tile scene.Tile, b *scene.Batch, viewer geom.Vec3, t config.Tuning) {
	dist := viewer.Z
	band := "near"
	switch {
	case dist > t.Animation.CullDist:
		band = "very far"
	case dist > t.Animation.NearDist:
		band = "far"
	}
	draw.MoveCursor(w, 1, 1)
	fmt.Fprintf(w, "tile (%d,%d)  seed %d  decorations %d  viewer %.0fm [%s]  n/p: tile  q: quit",
		tile.X, tile.Y, b.Seed, len(b.Descriptors), dist, band)
}
