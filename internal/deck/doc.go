package deck

// Package deck implements the deck controller: the Loading -> Active ->
// Summary state machine that owns the ordered candidates, the current index
// and the liked subset. It guards against overlapping decisions, holds a
// feedback message for a fixed window before advancing, and discards stale
// timers and loads when the deck is restarted.
