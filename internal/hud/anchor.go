package hud

import (
	"tokenhud/internal/scene"
	"tokenhud/internal/settings"
)

// CanvasTransform is the client viewport's pan/zoom state: pixel offset of
// the world origin, zoom scale, and viewport size in screen pixels. The HUD
// only reads it; the canvas owns it.
type CanvasTransform struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Scale   float64 `json:"scale"`
	ViewW   float64 `json:"viewW"`
	ViewH   float64 `json:"viewH"`
}

// Point is a screen-space position in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a screen-space rectangle in pixels.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Placement positions the HUD on screen. Overlay is the coordinate-space
// frame covering the visible canvas; Panel sits at the tracked token's bounds
// within it; Anchor is the panel center the sidebar hangs off.
type Placement struct {
	Overlay Rect    `json:"overlay"`
	Panel   Rect    `json:"panel"`
	Anchor  Point   `json:"anchor"`
	Scale   float64 `json:"scale"`
	Side    string  `json:"side"`
}

// PlacementOptions carry the settings the resolver honors.
type PlacementOptions struct {
	Mode          string
	ScaleWithZoom bool
}

const minCanvasScale = 0.1

// ResolvePlacement computes the HUD placement from the live canvas transform
// and the token's world-space bounds. It is a pure function of its inputs:
// nothing accumulates across calls. A transform that has not arrived yet
// (zero viewport) returns last unchanged rather than partial geometry.
func ResolvePlacement(tr CanvasTransform, bounds scene.GridRect, gridSize float64, opts PlacementOptions, last Placement) Placement {
	if tr.ViewW <= 0 || tr.ViewH <= 0 {
		return last
	}
	zoom := tr.Scale
	if zoom < minCanvasScale {
		zoom = minCanvasScale
	}
	if gridSize <= 0 {
		gridSize = 100
	}

	panel := Rect{
		X: bounds.X*gridSize*zoom + tr.OffsetX,
		Y: bounds.Y*gridSize*zoom + tr.OffsetY,
		W: bounds.W * gridSize * zoom,
		H: bounds.H * gridSize * zoom,
	}

	scale := 1.0
	if opts.ScaleWithZoom {
		scale = zoom
	}

	side := "center"
	switch opts.Mode {
	case settings.ModeLeft:
		side = "left"
	case settings.ModeRight:
		side = "right"
	}

	return Placement{
		Overlay: Rect{X: 0, Y: 0, W: tr.ViewW, H: tr.ViewH},
		Panel:   panel,
		Anchor:  panel.Center(),
		Scale:   scale,
		Side:    side,
	}
}
