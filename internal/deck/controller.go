package deck

import (
	"context"
	"log"
	"sync"

	"github.com/ytget/catswipe/internal/model"
)

// Loader fetches a batch of candidates. It must return once every item has
// resolved and never fails as a whole.
type Loader interface {
	Load(ctx context.Context, count int) []*model.Candidate
}

// Snapshot is a consistent copy of the deck for rendering
type Snapshot struct {
	State      model.DeckState
	Index      int
	Total      int
	Current    *model.Candidate // nil unless Active
	Next       *model.Candidate // preview card, nil on the last candidate
	Liked      []*model.Candidate
	Feedback   string
	Processing bool
}

// Progress returns (Index+1)/Total; ok is false outside the Active state
func (s Snapshot) Progress() (value float64, ok bool) {
	if s.State != model.DeckStateActive || s.Total == 0 {
		return 0, false
	}
	return float64(s.Index+1) / float64(s.Total), true
}

// Seen returns how many candidates have received a decision
func (s Snapshot) Seen() int {
	if s.Processing {
		return s.Index + 1
	}
	return s.Index
}

// Controller owns the deck and drives its state machine
type Controller struct {
	loader Loader
	opts   Options

	mu         sync.Mutex
	deckSize   int
	state      model.DeckState
	candidates []*model.Candidate
	index      int
	liked      []*model.Candidate
	feedback   string
	processing bool

	// generation identifies the current deck; timers and loads started for an
	// older generation are discarded
	generation uint64
	pending    Timer
	cancelLoad context.CancelFunc
	onChange   func(Snapshot)
}

// New creates a deck controller in the Loading state. Call Start to fetch
// the first batch.
func New(loader Loader, opts Options) *Controller {
	opts = opts.withDefaults()
	return &Controller{
		loader:   loader,
		opts:     opts,
		deckSize: opts.DeckSize,
		state:    model.DeckStateLoading,
	}
}

// SetChangeCallback sets the callback invoked after every transition.
// It may be called from a background goroutine.
func (c *Controller) SetChangeCallback(callback func(Snapshot)) {
	c.mu.Lock()
	c.onChange = callback
	c.mu.Unlock()
}

// SetDeckSize sets the batch size used from the next restart on
func (c *Controller) SetDeckSize(size int) {
	if size < 1 {
		size = 1
	}
	c.mu.Lock()
	c.deckSize = size
	c.mu.Unlock()
}

// SetMessages replaces the feedback message sets. Empty sets are ignored.
func (c *Controller) SetMessages(messages Messages) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(messages.Like) > 0 {
		c.opts.Messages.Like = append([]string(nil), messages.Like...)
	}
	if len(messages.Dislike) > 0 {
		c.opts.Messages.Dislike = append([]string(nil), messages.Dislike...)
	}
}

// Start requests the first batch of candidates
func (c *Controller) Start() {
	c.reload()
}

// Restart discards the current deck, releases its candidates and requests a
// fresh batch. A decision still in its feedback window is dropped.
func (c *Controller) Restart() {
	c.reload()
}

// Close stops pending work and releases every candidate
func (c *Controller) Close() {
	c.mu.Lock()
	c.generation++
	c.stopPendingLocked()
	old := c.candidates
	c.candidates = nil
	c.liked = nil
	c.mu.Unlock()

	release(old)
}

// Swipe records a decision for the current candidate. It returns false when
// the deck is not Active or a decision is already in flight; such attempts
// are dropped, not queued.
func (c *Controller) Swipe(direction model.Direction) bool {
	c.mu.Lock()
	if !c.state.AcceptsDecisions() || c.processing || c.index >= len(c.candidates) {
		c.mu.Unlock()
		return false
	}

	c.processing = true
	current := c.candidates[c.index]

	messages := c.opts.Messages.Dislike
	if direction.IsLike() {
		c.liked = append(c.liked, current)
		messages = c.opts.Messages.Like
	}
	c.feedback = pick(messages, c.opts.Chooser)

	gen := c.generation
	c.pending = c.opts.Scheduler.AfterFunc(c.opts.FeedbackDelay, func() {
		c.advance(gen)
	})

	snapshot := c.snapshotLocked()
	callback := c.onChange
	c.mu.Unlock()

	log.Printf("Swipe %s on %d/%d (%s)", direction, snapshot.Index+1, snapshot.Total, current.ID)
	notify(callback, snapshot)
	return true
}

// Snapshot returns a copy of the current deck state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Progress returns the fractional completion; ok is false outside Active
func (c *Controller) Progress() (float64, bool) {
	return c.Snapshot().Progress()
}

// State returns the current state
func (c *Controller) State() model.DeckState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// reload resets the deck to Loading and fetches a new batch in the background
func (c *Controller) reload() {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.stopPendingLocked()

	old := c.candidates
	c.candidates = nil
	c.index = 0
	c.liked = nil
	c.feedback = ""
	c.processing = false
	c.state = model.DeckStateLoading

	ctx, cancel := context.WithCancel(context.Background())
	c.cancelLoad = cancel
	count := c.deckSize

	snapshot := c.snapshotLocked()
	callback := c.onChange
	c.mu.Unlock()

	release(old)
	log.Printf("Loading deck of %d candidates", count)
	notify(callback, snapshot)

	go c.load(ctx, cancel, gen, count)
}

// load runs the batch request and activates the deck if it is still current
func (c *Controller) load(ctx context.Context, cancel context.CancelFunc, gen uint64, count int) {
	defer cancel()

	candidates := c.loader.Load(ctx, count)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		log.Printf("Discarding stale batch of %d candidates", len(candidates))
		release(candidates)
		return
	}

	c.cancelLoad = nil
	c.candidates = candidates
	c.index = 0
	if len(candidates) == 0 {
		c.state = model.DeckStateSummary
	} else {
		c.state = model.DeckStateActive
	}

	snapshot := c.snapshotLocked()
	callback := c.onChange
	c.mu.Unlock()

	log.Printf("Deck ready: %d candidates, state=%s", len(candidates), snapshot.State)
	notify(callback, snapshot)
}

// advance ends the feedback window and moves to the next candidate or to Summary
func (c *Controller) advance(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || !c.processing {
		c.mu.Unlock()
		return
	}

	c.pending = nil
	c.feedback = ""
	c.processing = false

	if c.index+1 >= len(c.candidates) {
		c.index = len(c.candidates)
		c.state = model.DeckStateSummary
	} else {
		c.index++
	}

	snapshot := c.snapshotLocked()
	callback := c.onChange
	c.mu.Unlock()

	if snapshot.State == model.DeckStateSummary {
		log.Printf("Deck finished: %d liked of %d", len(snapshot.Liked), snapshot.Total)
	}
	notify(callback, snapshot)
}

// stopPendingLocked cancels the feedback timer and any in-flight load
func (c *Controller) stopPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	if c.cancelLoad != nil {
		c.cancelLoad()
		c.cancelLoad = nil
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		State:      c.state,
		Index:      c.index,
		Total:      len(c.candidates),
		Liked:      append([]*model.Candidate(nil), c.liked...),
		Feedback:   c.feedback,
		Processing: c.processing,
	}
	if c.state == model.DeckStateActive && c.index < len(c.candidates) {
		s.Current = c.candidates[c.index]
		if c.index+1 < len(c.candidates) {
			s.Next = c.candidates[c.index+1]
		}
	}
	return s
}

func pick(messages []string, choose Chooser) string {
	if len(messages) == 0 {
		return ""
	}
	i := choose(len(messages))
	if i < 0 || i >= len(messages) {
		i = 0
	}
	return messages[i]
}

func release(candidates []*model.Candidate) {
	for _, c := range candidates {
		if c != nil {
			c.Release()
		}
	}
}

func notify(callback func(Snapshot), snapshot Snapshot) {
	if callback != nil {
		callback(snapshot)
	}
}
