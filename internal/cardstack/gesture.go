package cardstack

import (
	"math"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
)

const (
	DefaultThreshold = 1.0 / 3.0
	DefaultCardWidth = 300.0
	DefaultPeekDepth = 2

	rotationPerPixel = 0.1
)

type CardState int

const (
	Resting CardState = iota
	Dragging
	Committed
)

func (s CardState) String() string {
	switch s {
	case Resting:
		return "resting"
	case Dragging:
		return "dragging"
	case Committed:
		return "committed"
	default:
		return "unknown"
	}
}

// Resolve decides what a release at horizontal offset dx means. The drag
// commits only when |dx| is strictly greater than threshold*cardWidth; the
// sign of dx picks the direction.
func Resolve(dx, cardWidth, threshold float64) (CardState, enums.Direction) {
	if math.Abs(dx) > threshold*cardWidth {
		if dx > 0 {
			return Committed, enums.DirectionRight
		}
		return Committed, enums.DirectionLeft
	}
	return Resting, ""
}

// Feedback is what the top card renders while dragged.
type Feedback struct {
	Dx       float64         `json:"dx"`
	Rotation float64         `json:"rotation"`
	Opacity  float64         `json:"opacity"`
	Leaning  enums.Direction `json:"leaning,omitempty"`
}

func feedbackFor(dx, cardWidth float64) Feedback {
	fb := Feedback{Dx: dx, Rotation: dx * rotationPerPixel}
	if cardWidth > 0 {
		fb.Opacity = math.Min(math.Abs(dx)/(cardWidth/2), 1)
	}
	switch {
	case dx > 0:
		fb.Leaning = enums.DirectionRight
	case dx < 0:
		fb.Leaning = enums.DirectionLeft
	}
	return fb
}
