// Package drag coordinates an interactive block move.
//
// A [Session] is a three-state machine: Idle, Dragging and Committing. The
// input layer translates pointer or key positions into grid cells and feeds
// them to [Session.Update]; the renderer reads [Session.Preview] to draw a
// ghost outline. Nothing touches the committed block list until
// [Session.Commit], which runs the collision resolver and hands back the
// complete next list.
//
//	s := drag.New(grid.DefaultHorizon)
//	if err := s.Begin(blocks, "hero"); err != nil {
//	    return err
//	}
//	s.Update(grid.Cell{Row: 3, Column: 7})
//	res, err := s.Commit(blocks)
//
// A session is not safe for concurrent use; callers run at most one at a
// time.
package drag

import (
	"slices"

	"github.com/matzehuels/sectiongrid/pkg/errors"
	"github.com/matzehuels/sectiongrid/pkg/grid"
)

// State is the phase of a drag gesture.
type State int

// Session states.
const (
	Idle State = iota
	Dragging
	Committing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Committing:
		return "committing"
	}
	return "unknown"
}

// Session tracks one move gesture.
type Session struct {
	horizon int
	state   State

	id     string
	origin grid.Anchor
	span   grid.Span

	candidate    grid.Anchor
	hasCandidate bool
}

// New returns an idle session that resolves commits with the given row
// horizon. A horizon of zero or less uses [grid.DefaultHorizon].
func New(horizon int) *Session {
	if horizon <= 0 {
		horizon = grid.DefaultHorizon
	}
	return &Session{horizon: horizon}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// BlockID returns the id of the block being dragged, or "" when idle.
func (s *Session) BlockID() string { return s.id }

// Origin returns the dragged block's anchor when the gesture began.
func (s *Session) Origin() grid.Anchor { return s.origin }

// Begin starts dragging block id. It captures the block's anchor so a
// gesture without a valid position reverts to it.
func (s *Session) Begin(blocks []grid.Block, id string) error {
	if s.state != Idle {
		return errors.New(errors.ErrCodeDragInProgress, "already dragging block %q", s.id)
	}
	i := slices.IndexFunc(blocks, func(b grid.Block) bool { return b.ID == id })
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "block %q not found", id)
	}
	s.state = Dragging
	s.id = id
	s.origin = blocks[i].Anchor()
	s.span = blocks[i].Span()
	s.hasCandidate = false
	return nil
}

// Update records the cell under the pointer as the candidate anchor, clamped
// so the block's span fits the grid columns and starts at row 1 or below.
// It returns the clamped candidate.
func (s *Session) Update(cell grid.Cell) (grid.Anchor, error) {
	if s.state != Dragging {
		return grid.Anchor{}, errors.New(errors.ErrCodeInvalidState, "update while %s", s.state)
	}
	s.candidate = grid.ClampAnchor(grid.Anchor(cell), s.span)
	s.hasCandidate = true
	return s.candidate, nil
}

// Preview returns the live candidate anchor for ghost rendering. The second
// result is false when no candidate has been computed yet.
func (s *Session) Preview() (grid.Anchor, bool) {
	if s.state != Dragging || !s.hasCandidate {
		return grid.Anchor{}, false
	}
	return s.candidate, true
}

// PreviewRect returns the ghost rectangle at the candidate anchor.
func (s *Session) PreviewRect() (grid.Rect, bool) {
	a, ok := s.Preview()
	if !ok {
		return grid.Rect{}, false
	}
	return grid.Rect{Anchor: a, Span: s.span}, true
}

// PreviewBlocks returns a copy of blocks with the dragged block drawn at the
// candidate anchor and nothing resolved. Overlaps in the result are expected;
// it is meant for rendering only.
func (s *Session) PreviewBlocks(blocks []grid.Block) []grid.Block {
	out := slices.Clone(blocks)
	a, ok := s.Preview()
	if !ok {
		return out
	}
	for i := range out {
		if out[i].ID == s.id {
			out[i] = out[i].At(a)
		}
	}
	return out
}

// Commit ends the gesture. With a candidate anchor it resolves the move
// against blocks and returns the next list. Without one the gesture reverts
// and blocks are returned unchanged. The session is idle afterwards, also on
// error.
func (s *Session) Commit(blocks []grid.Block) (grid.Resolution, error) {
	if s.state != Dragging {
		return grid.Resolution{}, errors.New(errors.ErrCodeInvalidState, "commit while %s", s.state)
	}
	s.state = Committing
	defer s.reset()

	if !s.hasCandidate {
		return grid.Resolution{Blocks: slices.Clone(blocks)}, nil
	}
	return grid.Resolve(blocks, s.id, s.candidate, s.horizon)
}

// Cancel abandons the gesture and discards the candidate. The committed list
// is untouched. Cancelling an idle session is a no-op.
func (s *Session) Cancel() {
	if s.state == Dragging {
		s.reset()
	}
}

func (s *Session) reset() {
	s.state = Idle
	s.id = ""
	s.origin = grid.Anchor{}
	s.span = grid.Span{}
	s.candidate = grid.Anchor{}
	s.hasCandidate = false
}
