package gesture

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/catswipe/internal/model"
)

// Gesture thresholds constants
const (
	// Threshold is the horizontal displacement a release must exceed to commit
	Threshold float32 = 100.0

	// RotationFactor converts horizontal displacement into degrees of tilt
	RotationFactor float32 = 0.1
)

// Decision is the result of releasing a drag
type Decision int

const (
	// DecisionNone means no drag was in progress
	DecisionNone Decision = iota

	// DecisionCancel means the card snaps back to its origin
	DecisionCancel

	// DecisionCommit means the swipe finalizes a direction
	DecisionCommit
)

// String returns the decision name
func (d Decision) String() string {
	switch d {
	case DecisionCancel:
		return "cancel"
	case DecisionCommit:
		return "commit"
	default:
		return "none"
	}
}

// Outcome is reported when a drag ends
type Outcome struct {
	Decision  Decision
	Direction model.Direction // set only for DecisionCommit
}

// Interpreter tracks a single drag gesture. Calls out of sequence (Update or
// End without Begin, input on a non-interactive card) are ignored.
type Interpreter struct {
	interactive  bool
	dragging     bool
	origin       fyne.Position
	displacement fyne.Delta
}

// New creates an interpreter. Only the frontmost card should be interactive.
func New(interactive bool) *Interpreter {
	return &Interpreter{interactive: interactive}
}

// SetInteractive attaches or detaches the interpreter from user input.
// Detaching drops any drag in progress.
func (in *Interpreter) SetInteractive(interactive bool) {
	in.interactive = interactive
	if !interactive {
		in.Cancel()
	}
}

// Interactive reports whether the interpreter responds to input
func (in *Interpreter) Interactive() bool {
	return in.interactive
}

// Begin starts a drag at point. It returns false when the input is ignored.
func (in *Interpreter) Begin(point fyne.Position) bool {
	if !in.interactive || in.dragging {
		return false
	}
	in.dragging = true
	in.origin = point
	in.displacement = fyne.Delta{}
	return true
}

// Update moves the drag to point
func (in *Interpreter) Update(point fyne.Position) {
	if !in.interactive || !in.dragging {
		return
	}
	in.displacement = fyne.NewDelta(point.X-in.origin.X, point.Y-in.origin.Y)
}

// End releases the drag and decides between commit and snap-back
func (in *Interpreter) End() Outcome {
	if !in.interactive || !in.dragging {
		return Outcome{Decision: DecisionNone}
	}
	in.dragging = false

	if abs(in.displacement.DX) > Threshold {
		return Outcome{
			Decision:  DecisionCommit,
			Direction: model.DirectionFromSign(in.displacement.DX),
		}
	}

	in.displacement = fyne.Delta{}
	return Outcome{Decision: DecisionCancel}
}

// Cancel aborts the drag without a decision and resets displacement
func (in *Interpreter) Cancel() {
	in.dragging = false
	in.displacement = fyne.Delta{}
}

// Dragging reports whether a drag is in progress
func (in *Interpreter) Dragging() bool {
	return in.dragging
}

// Displacement returns the current offset from the drag origin
func (in *Interpreter) Displacement() fyne.Delta {
	return in.displacement
}

// Rotation returns the card tilt in degrees
func (in *Interpreter) Rotation() float32 {
	return in.displacement.DX * RotationFactor
}

// Intensity returns overlay strength in [0, 1]; zero when not dragging
func (in *Interpreter) Intensity() float32 {
	if !in.dragging {
		return 0
	}
	v := abs(in.displacement.DX) / Threshold
	if v > 1 {
		return 1
	}
	return v
}

// LikeOpacity returns the like overlay strength; non-zero only when dragging right
func (in *Interpreter) LikeOpacity() float32 {
	if in.displacement.DX > 0 {
		return in.Intensity()
	}
	return 0
}

// DislikeOpacity returns the dislike overlay strength; non-zero only when dragging left
func (in *Interpreter) DislikeOpacity() float32 {
	if in.displacement.DX < 0 {
		return in.Intensity()
	}
	return 0
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
