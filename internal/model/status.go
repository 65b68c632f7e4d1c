package model

// DeckState represents the lifecycle state of a deck
type DeckState string

const (
	// DeckStateLoading means a batch of candidates is being fetched
	DeckStateLoading DeckState = "loading"

	// DeckStateActive means candidates are being swiped
	DeckStateActive DeckState = "active"

	// DeckStateSummary means every candidate has been decided
	DeckStateSummary DeckState = "summary"
)

// String returns the string representation of DeckState
func (ds DeckState) String() string {
	return string(ds)
}

// IsTerminal returns true if no further decisions can be made on the deck
func (ds DeckState) IsTerminal() bool {
	return ds == DeckStateSummary
}

// AcceptsDecisions returns true if swipes are accepted in this state
func (ds DeckState) AcceptsDecisions() bool {
	return ds == DeckStateActive
}

// Direction is the outcome of a committed swipe
type Direction string

const (
	// DirectionLeft dislikes the current candidate
	DirectionLeft Direction = "left"

	// DirectionRight likes the current candidate
	DirectionRight Direction = "right"
)

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// IsLike returns true if the direction records a like
func (d Direction) IsLike() bool {
	return d == DirectionRight
}

// DirectionFromSign maps a horizontal displacement to a direction.
// Zero maps to left; callers only ask once the threshold is exceeded.
func DirectionFromSign(dx float32) Direction {
	if dx > 0 {
		return DirectionRight
	}
	return DirectionLeft
}
