package deck

import (
	"math/rand"
	"time"
)

// Defaults
const (
	DefaultDeckSize      = 15
	DefaultFeedbackDelay = 800 * time.Millisecond
)

// Messages holds the feedback shown after each decision, per direction
type Messages struct {
	Like    []string
	Dislike []string
}

// DefaultMessages are used when no localized set is supplied
var DefaultMessages = Messages{
	Like:    []string{"Wonderful!", "Nice!", "Great!"},
	Dislike: []string{"I see", "Nah", "I understand why"},
}

// Chooser returns a pseudo-random index in [0, n)
type Chooser func(n int) int

// Timer is a cancellation handle for a scheduled callback
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Options configure a Controller
type Options struct {
	DeckSize      int
	FeedbackDelay time.Duration
	Messages      Messages
	Chooser       Chooser
	Scheduler     Scheduler
}

func (o Options) withDefaults() Options {
	if o.DeckSize <= 0 {
		o.DeckSize = DefaultDeckSize
	}
	if o.FeedbackDelay <= 0 {
		o.FeedbackDelay = DefaultFeedbackDelay
	}
	if len(o.Messages.Like) == 0 {
		o.Messages.Like = DefaultMessages.Like
	}
	if len(o.Messages.Dislike) == 0 {
		o.Messages.Dislike = DefaultMessages.Dislike
	}
	if o.Chooser == nil {
		o.Chooser = rand.Intn
	}
	if o.Scheduler == nil {
		o.Scheduler = timeScheduler{}
	}
	return o
}

// timeScheduler schedules with time.AfterFunc
type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
