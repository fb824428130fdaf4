package cardstack

import (
	"math"
	"testing"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
)

func TestResolveThresholdIsStrict(t *testing.T) {
	cases := []struct {
		dx        float64
		state     CardState
		direction enums.Direction
	}{
		{dx: 99, state: Resting},
		{dx: 100, state: Resting},
		{dx: 101, state: Committed, direction: enums.DirectionRight},
		{dx: -99, state: Resting},
		{dx: -101, state: Committed, direction: enums.DirectionLeft},
		{dx: 0, state: Resting},
	}

	for _, tc := range cases {
		state, direction := Resolve(tc.dx, DefaultCardWidth, DefaultThreshold)
		if state != tc.state || direction != tc.direction {
			t.Fatalf("unexpected resolve for dx=%v: got %s/%q want %s/%q", tc.dx, state, direction, tc.state, tc.direction)
		}
	}
}

func TestFeedbackOpacityAndRotation(t *testing.T) {
	fb := feedbackFor(75, 300)
	if fb.Opacity != 0.5 || math.Abs(fb.Rotation-7.5) > 1e-9 || fb.Leaning != enums.DirectionRight {
		t.Fatalf("unexpected feedback: %+v", fb)
	}

	fb = feedbackFor(-400, 300)
	if fb.Opacity != 1 || fb.Leaning != enums.DirectionLeft {
		t.Fatalf("unexpected clamped feedback: %+v", fb)
	}
}
