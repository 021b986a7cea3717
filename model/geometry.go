package model

import "math"

// BBox represents a bounding box (rectangle) in page coordinates.
// Y grows downward in reading order, matching the layout collaborator's
// top-origin coordinate system.
type BBox struct {
	X      float64 `json:"x"` // Left
	Y      float64 `json:"y"` // Top
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewBBox creates a bounding box from an origin and dimensions.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromCorners creates a bounding box from corner coordinates
// [x0,y0,x1,y1] as supplied by the layout collaborator.
func NewBBoxFromCorners(x0, y0, x1, y1 float64) BBox {
	x := math.Min(x0, x1)
	y := math.Min(y0, y1)
	return BBox{
		X:      x,
		Y:      y,
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// Left returns the left edge X coordinate.
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate.
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate.
func (b BBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate.
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// Intersects checks if two bounding boxes intersect.
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Bottom() < other.Top() ||
		b.Top() > other.Bottom())
}

// Union returns the smallest bounding box containing both boxes.
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Top(), other.Top())
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Expand expands the bounding box by a margin on all sides. Used when
// re-reading page text around a citation for context.
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		X:      b.X - margin,
		Y:      b.Y - margin,
		Width:  b.Width + 2*margin,
		Height: b.Height + 2*margin,
	}
}

// Clamp restricts the bounding box to the given page dimensions.
func (b BBox) Clamp(pageWidth, pageHeight float64) BBox {
	x := math.Max(0, b.X)
	y := math.Max(0, b.Y)
	right := math.Min(pageWidth, b.Right())
	bottom := math.Min(pageHeight, b.Bottom())

	return BBox{
		X:      x,
		Y:      y,
		Width:  math.Max(0, right-x),
		Height: math.Max(0, bottom-y),
	}
}

// Area returns the area of the bounding box.
func (b BBox) Area() float64 {
	return b.Width * b.Height
}

// IsEmpty returns true if the bounding box has zero area.
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}
