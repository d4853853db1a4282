package viewport

import "math"

const (
	MinZoom  = 0.2
	MaxZoom  = 3.0
	ZoomStep = 0.2

	// Fraction of the viewport the rendered image occupies, centered.
	imageFraction = 0.8
)

type Point struct {
	X float64
	Y float64
}

// State holds the zoom/pan transform for the active image. Pan is expressed
// in screen pixels; the render transform divides it by zoom so a drag moves
// the image 1:1 with the pointer at any zoom level.
type State struct {
	Zoom float64
	Pan  Point

	dragging bool
	lastPos  Point
}

func New() State {
	return State{Zoom: 1.0}
}

func (s *State) ZoomIn() {
	s.Zoom = math.Min(s.Zoom+ZoomStep, MaxZoom)
}

func (s *State) ZoomOut() {
	s.Zoom = math.Max(s.Zoom-ZoomStep, MinZoom)
}

func (s *State) ResetZoom() {
	s.Zoom = 1.0
	s.Pan = Point{}
}

// BeginDrag starts a drag sequence. At 1x there is nothing to pan, so the
// image stays pinned and the call is a no-op.
func (s *State) BeginDrag(pos Point) {
	if s.Zoom == 1.0 {
		return
	}
	s.dragging = true
	s.lastPos = pos
}

// UpdateDrag adds the pointer delta since the last position to the pan.
// Without a preceding BeginDrag it is a no-op.
func (s *State) UpdateDrag(pos Point) {
	if !s.dragging {
		return
	}
	s.Pan.X += pos.X - s.lastPos.X
	s.Pan.Y += pos.Y - s.lastPos.Y
	s.lastPos = pos
}

func (s *State) EndDrag() {
	s.dragging = false
	s.lastPos = Point{}
}

func (s *State) Dragging() bool {
	return s.dragging
}

// ZoomToPoint toggles between 1x and a 2x view anchored on the clicked
// point. The click is given in viewport coordinates; it is honored only when
// it falls inside the image's rendered bounding box (the centered 80% of the
// viewport). From 1x the pan shifts so the clicked point lands on the
// viewport center; from any other zoom the view resets to 1x.
func (s *State) ZoomToPoint(click Point, viewportW, viewportH float64) {
	imgW := viewportW * imageFraction
	imgH := viewportH * imageFraction
	imgLeft := (viewportW - imgW) / 2
	imgTop := (viewportH - imgH) / 2
	if click.X < imgLeft || click.X > imgLeft+imgW ||
		click.Y < imgTop || click.Y > imgTop+imgH {
		return
	}

	if s.Zoom != 1.0 {
		s.ResetZoom()
		return
	}

	relX := click.X - viewportW/2
	relY := click.Y - viewportH/2
	s.Zoom = 2.0
	s.Pan = Point{
		X: s.Pan.X - relX,
		Y: s.Pan.Y - relY,
	}
}

// Transform returns the on-screen placement of the image: the scale factor
// and the translation applied after centering, in image-space pixels.
func (s *State) Transform() (scale, offsetX, offsetY float64) {
	return s.Zoom, s.Pan.X / s.Zoom, s.Pan.Y / s.Zoom
}
