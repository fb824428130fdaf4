package cardstack

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
)

var (
	ErrAlreadyDecided = errors.New("target already decided")
	ErrNoCard         = errors.New("no card to swipe")
	ErrNotTopCard     = errors.New("only the top card can be dragged")
	ErrPointerBusy    = errors.New("another pointer is dragging")
	ErrUnknownPointer = errors.New("pointer is not dragging")
)

type Phase string

const (
	PhaseLoading   Phase = "loading"
	PhaseReady     Phase = "ready"
	PhaseExhausted Phase = "exhausted"
)

// DecisionRequest is what a commit hands to the Dispatcher.
type DecisionRequest struct {
	UserID     string           `json:"user_id"`
	TargetID   string           `json:"target_id"`
	TargetType enums.TargetType `json:"target_type"`
	Direction  enums.Direction  `json:"direction"`
}

type Dispatcher interface {
	Dispatch(ctx context.Context, req DecisionRequest) error
}

// Failure records a committed card whose decision did not persist. The card
// is back in the queue by the time the Failure is visible.
type Failure struct {
	Item      model.SwipeableItem
	Direction enums.Direction
	Err       error
}

type Config struct {
	CardWidth float64
	Threshold float64
	PeekDepth int
}

// Outcome is the result of releasing the top card.
type Outcome struct {
	State     CardState
	Direction enums.Direction
	Item      model.SwipeableItem
}

type drag struct {
	pointerID int
	itemID    string
	startX    float64
	dx        float64
}

// Controller drives one user's card stack. It owns the queue, accepts a
// single pointer at a time on the top card, and dispatches committed
// decisions in the background.
type Controller struct {
	mu         sync.Mutex
	userID     string
	dispatcher Dispatcher
	cfg        Config
	logger     *zap.Logger

	loaded   bool
	queue    []model.SwipeableItem
	drag     *drag
	failures []Failure
	inflight sync.WaitGroup
}

func NewController(userID string, dispatcher Dispatcher, cfg Config, logger *zap.Logger) *Controller {
	if cfg.CardWidth <= 0 {
		cfg.CardWidth = DefaultCardWidth
	}
	if cfg.Threshold <= 0 || cfg.Threshold >= 1 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.PeekDepth <= 0 {
		cfg.PeekDepth = DefaultPeekDepth
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		userID:     userID,
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     logger,
	}
}

// Load replaces the queue. Until the first Load the stack is loading.
func (c *Controller) Load(items []model.SwipeableItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queue = append([]model.SwipeableItem{}, items...)
	c.loaded = true
	c.drag = nil
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case !c.loaded:
		return PhaseLoading
	case len(c.queue) == 0:
		return PhaseExhausted
	default:
		return PhaseReady
	}
}

func (c *Controller) Top() (model.SwipeableItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.queue) == 0 {
		return model.SwipeableItem{}, false
	}
	return c.queue[0], true
}

// Visible is the top card followed by up to PeekDepth cards behind it.
func (c *Controller) Visible() []model.SwipeableItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 1 + c.cfg.PeekDepth
	if n > len(c.queue) {
		n = len(c.queue)
	}
	return append([]model.SwipeableItem{}, c.queue[:n]...)
}

func (c *Controller) PointerDown(pointerID int, itemID string, x float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.queue) == 0 {
		return ErrNoCard
	}
	if c.drag != nil {
		return ErrPointerBusy
	}
	if c.queue[0].ID() != itemID {
		return ErrNotTopCard
	}
	c.drag = &drag{pointerID: pointerID, itemID: itemID, startX: x}
	return nil
}

func (c *Controller) PointerMove(pointerID int, x float64) (Feedback, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drag == nil || c.drag.pointerID != pointerID {
		return Feedback{}, ErrUnknownPointer
	}
	c.drag.dx = x - c.drag.startX
	return feedbackFor(c.drag.dx, c.cfg.CardWidth), nil
}

// PointerUp releases the drag at x. Past the threshold the card leaves the
// queue at once and its decision is dispatched in the background; otherwise
// it snaps back.
func (c *Controller) PointerUp(ctx context.Context, pointerID int, x float64) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drag == nil || c.drag.pointerID != pointerID {
		return Outcome{}, ErrUnknownPointer
	}
	d := c.drag
	c.drag = nil
	d.dx = x - d.startX

	state, direction := Resolve(d.dx, c.cfg.CardWidth, c.cfg.Threshold)
	if state != Committed || len(c.queue) == 0 || c.queue[0].ID() != d.itemID {
		return Outcome{State: Resting}, nil
	}

	item := c.queue[0]
	c.queue = c.queue[1:]
	c.dispatch(ctx, item, direction)
	return Outcome{State: Committed, Direction: direction, Item: item}, nil
}

func (c *Controller) PointerCancel(pointerID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drag != nil && c.drag.pointerID == pointerID {
		c.drag = nil
	}
}

// Wait blocks until every dispatched decision has settled.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) Failures() []Failure {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]Failure{}, c.failures...)
}

// dispatch must be called with c.mu held.
func (c *Controller) dispatch(ctx context.Context, item model.SwipeableItem, direction enums.Direction) {
	req := DecisionRequest{
		UserID:     c.userID,
		TargetID:   item.ID(),
		TargetType: item.Type,
		Direction:  direction,
	}
	if c.dispatcher == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()

		err := c.dispatcher.Dispatch(ctx, req)
		if err == nil {
			return
		}
		if errors.Is(err, ErrAlreadyDecided) {
			c.logger.Info("decision already stored",
				zap.String("user_id", req.UserID),
				zap.String("target_id", req.TargetID),
			)
			return
		}

		c.logger.Warn("dispatch decision failed, card restored",
			zap.String("user_id", req.UserID),
			zap.String("target_id", req.TargetID),
			zap.String("direction", string(direction)),
			zap.Error(err),
		)
		c.restore(item, direction, err)
	}()
}

func (c *Controller) restore(item model.SwipeableItem, direction enums.Direction, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failures = append(c.failures, Failure{Item: item, Direction: direction, Err: err})

	// Load may have replaced the queue while the decision was in flight.
	for _, queued := range c.queue {
		if queued.ID() == item.ID() {
			return
		}
	}

	at := 0
	if c.drag != nil && len(c.queue) > 0 {
		at = 1
	}
	c.queue = append(c.queue, model.SwipeableItem{})
	copy(c.queue[at+1:], c.queue[at:])
	c.queue[at] = item
}
