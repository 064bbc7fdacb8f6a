// Copyright (c) 2026 the Behavior Chart authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package boardsync

import (
	"context"
	"errors"

	"github.com/behavior-chart/server/models"
)

var (
	ErrDragInProgress = errors.New("another pin is already being dragged")
	ErrNotDragging    = errors.New("no drag in progress")
)

// Rect is the board's bounding box in pointer coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Position is a normalized board coordinate, clamped for writing.
type Position struct {
	X float64
	Y float64
}

// PinWriter persists a pin's final drag position.
type PinWriter interface {
	MovePin(ctx context.Context, pinID string, x, y float64) error
}

// DragController translates pointer gestures on one board into
// persisted position updates. One gesture at a time: Begin captures a
// pin, Move tracks it without touching the store, End issues exactly
// one write.
type DragController struct {
	store  *Store
	writer PinWriter
	board  Rect
	pinID  string // empty when idle
}

func NewDragController(store *Store, writer PinWriter, board Rect) *DragController {
	return &DragController{store: store, writer: writer, board: board}
}

// SetBoardRect updates the board geometry (viewport resize).
func (d *DragController) SetBoardRect(board Rect) {
	d.board = board
}

// Dragging reports the pin currently captured, if any.
func (d *DragController) Dragging() (string, bool) {
	return d.pinID, d.pinID != ""
}

// Begin starts a drag gesture on a pin (pointer-down).
func (d *DragController) Begin(pinID string) error {
	if d.pinID != "" {
		return ErrDragInProgress
	}
	d.pinID = pinID
	d.store.MarkPinDragging(pinID)
	return nil
}

// Move computes the clamped position for the current pointer location
// (pointer-move). The result is applied straight to the rendered
// element; the store is not updated, which keeps a drag from turning
// into a re-render storm.
func (d *DragController) Move(pointerX, pointerY float64) (Position, bool) {
	if d.pinID == "" {
		return Position{}, false
	}
	return d.normalize(pointerX, pointerY), true
}

// End finishes the gesture (pointer-up): computes the final clamped
// position and issues one write for it. The pin stays PendingWrite
// until the feed echoes the confirmed update, so the view cannot
// flicker back to a stale server value during the round-trip. On write
// failure the pin is flagged StateError and not retried.
func (d *DragController) End(ctx context.Context, pointerX, pointerY float64) (Position, error) {
	if d.pinID == "" {
		return Position{}, ErrNotDragging
	}

	pinID := d.pinID
	d.pinID = ""

	pos := d.normalize(pointerX, pointerY)

	// Keep the locally rendered position until the echo arrives
	d.store.UpdatePin(pinID, PinPatch{X: &pos.X, Y: &pos.Y})
	d.store.MarkPinPendingWrite(pinID)

	if err := d.writer.MovePin(ctx, pinID, pos.X, pos.Y); err != nil {
		d.store.MarkPinError(pinID)
		return pos, err
	}

	return pos, nil
}

func (d *DragController) normalize(pointerX, pointerY float64) Position {
	x, y := 0.5, 0.5
	if d.board.Width > 0 {
		x = (pointerX - d.board.Left) / d.board.Width
	}
	if d.board.Height > 0 {
		y = (pointerY - d.board.Top) / d.board.Height
	}
	return Position{
		X: models.ClampPosition(x),
		Y: models.ClampPosition(y),
	}
}

// CategoryFor derives the category band a pin currently sits in. It is
// recomputed from position on every call, so grouping can never
// disagree with the visual location.
func CategoryFor(pin models.Pin, categoryCount int) int {
	return models.CategoryIndex(pin.BoardYPercentage, categoryCount)
}
