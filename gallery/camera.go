package gallery

import "github.com/plus3/gallery/vec"

// Camera is the view singleton. Width is the number of game units visible
// horizontally; the visible height follows from the screen aspect ratio.
type Camera struct {
	Position vec.Vector
	Width    float64
}

// Scale returns the number of screen pixels per game unit.
func (c Camera) Scale(screenWidth float64) float64 {
	if c.Width <= 0 {
		return 1
	}
	return screenWidth / c.Width
}

// WorldToScreen projects a world position to screen coordinates. The world
// y axis points up, the screen y axis down; the camera sits at the centre.
func (c Camera) WorldToScreen(p vec.Vector, screenWidth, screenHeight float64) (x, y float64) {
	scale := c.Scale(screenWidth)
	rel := p.Sub(c.Position)
	return screenWidth/2 + rel.X*scale, screenHeight/2 - rel.Y*scale
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c Camera) ScreenToWorld(x, y, screenWidth, screenHeight float64) vec.Vector {
	scale := c.Scale(screenWidth)
	return c.Position.Add(vec.New((x-screenWidth/2)/scale, (screenHeight/2-y)/scale))
}
