package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Pan turns a click-drag on the window into an NDC offset for the screen
// pass. While the button is held the offset follows the cursor live; on
// release it becomes the baseline for the next drag.
type Pan struct {
	base     mgl32.Vec2
	offset   mgl32.Vec2
	start    mgl32.Vec2
	dragging bool
}

// Update feeds one frame of pointer state and returns the current offset.
// Cursor coordinates are window pixels with y growing downward.
func (p *Pan) Update(pressed bool, x, y float64, width, height int) mgl32.Vec2 {
	cursor := mgl32.Vec2{float32(x), float32(y)}

	if !pressed {
		if p.dragging {
			p.dragging = false
			p.base = p.offset
		}
		return p.offset
	}
	if !p.dragging {
		p.dragging = true
		p.start = cursor
	}
	if width <= 0 || height <= 0 {
		return p.offset
	}

	d := cursor.Sub(p.start)
	// screen y grows downward, NDC y grows upward
	p.offset = p.base.Add(mgl32.Vec2{
		d[0] * 2 / float32(width),
		-d[1] * 2 / float32(height),
	})
	return p.offset
}

func (p *Pan) Offset() mgl32.Vec2 { return p.offset }

func (p *Pan) Dragging() bool { return p.dragging }

// Reset recentres the picture and abandons any drag in progress.
func (p *Pan) Reset() { *p = Pan{} }
