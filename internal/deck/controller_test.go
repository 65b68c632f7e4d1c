package deck

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ytget/catswipe/internal/model"
)

// stubLoader hands out local candidates named by the batch number and index
type stubLoader struct {
	mu      sync.Mutex
	calls   []int
	batches int
	gate    chan struct{} // when set, Load blocks until it is closed
}

func (l *stubLoader) Load(ctx context.Context, count int) []*model.Candidate {
	l.mu.Lock()
	l.calls = append(l.calls, count)
	l.batches++
	batch := l.batches
	gate := l.gate
	l.mu.Unlock()

	if gate != nil {
		<-gate
	}

	out := make([]*model.Candidate, count)
	for i := range out {
		id := fmt.Sprintf("b%d-%c", batch, 'A'+i)
		out[i] = model.NewLocalCandidate(id, "https://cataas.com/cat?"+id, "image/png", []byte{1})
	}
	return out
}

func (l *stubLoader) Calls() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int(nil), l.calls...)
}

// manualScheduler records timers and fires them on demand
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// fire runs the most recent timer regardless of whether it was stopped,
// the way a timer that already started running would
func (s *manualScheduler) fire(t *testing.T) {
	t.Helper()
	s.mu.Lock()
	if len(s.timers) == 0 {
		s.mu.Unlock()
		t.Fatal("No timer scheduled")
	}
	timer := s.timers[len(s.timers)-1]
	s.mu.Unlock()
	timer.f()
}

func (s *manualScheduler) last() *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

func newTestController(t *testing.T, size int) (*Controller, *stubLoader, *manualScheduler) {
	t.Helper()
	loader := &stubLoader{}
	sched := &manualScheduler{}
	c := New(loader, Options{
		DeckSize:  size,
		Scheduler: sched,
		Chooser:   func(n int) int { return n - 1 },
	})
	return c, loader, sched
}

func waitForState(t *testing.T, c *Controller, state model.DeckState) Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := c.Snapshot()
		if snap.State == state {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for state %s, still %s", state, c.State())
	return Snapshot{}
}

func waitForCalls(t *testing.T, l *stubLoader, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for len(l.Calls()) < n {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out waiting for %d loader calls", n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func ids(candidates []*model.Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.ID)
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	c := New(&stubLoader{}, Options{})

	if c.State() != model.DeckStateLoading {
		t.Errorf("Expected initial state loading, got %s", c.State())
	}
	if c.deckSize != DefaultDeckSize {
		t.Errorf("Expected deck size %d, got %d", DefaultDeckSize, c.deckSize)
	}
	if c.opts.FeedbackDelay != DefaultFeedbackDelay {
		t.Errorf("Expected feedback delay %v, got %v", DefaultFeedbackDelay, c.opts.FeedbackDelay)
	}
	if _, ok := c.Progress(); ok {
		t.Error("Progress should be unavailable while loading")
	}
}

func TestStart_LoadingToActive(t *testing.T) {
	c, loader, _ := newTestController(t, 3)

	states := make(chan model.DeckState, 4)
	c.SetChangeCallback(func(s Snapshot) {
		states <- s.State
	})

	c.Start()

	var got []model.DeckState
	for len(got) < 2 {
		select {
		case state := <-states:
			got = append(got, state)
		case <-time.After(2 * time.Second):
			t.Fatalf("Timed out waiting for transitions, got %v", got)
		}
	}
	if diff := cmp.Diff([]model.DeckState{model.DeckStateLoading, model.DeckStateActive}, got); diff != "" {
		t.Errorf("Unexpected transitions (-want +got):\n%s", diff)
	}

	snap := c.Snapshot()
	if diff := cmp.Diff([]int{3}, loader.Calls()); diff != "" {
		t.Errorf("Unexpected loader calls (-want +got):\n%s", diff)
	}
	if snap.Total != 3 || snap.Index != 0 {
		t.Errorf("Expected index 0 of 3, got %d of %d", snap.Index, snap.Total)
	}
	if snap.Current == nil || snap.Current.ID != "b1-A" {
		t.Errorf("Expected current b1-A, got %+v", snap.Current)
	}
	if snap.Next == nil || snap.Next.ID != "b1-B" {
		t.Errorf("Expected preview b1-B, got %+v", snap.Next)
	}
}

func TestFullPass_RightRightLeft(t *testing.T) {
	c, _, sched := newTestController(t, 3)
	c.Start()
	waitForState(t, c, model.DeckStateActive)

	for _, dir := range []model.Direction{model.DirectionRight, model.DirectionRight, model.DirectionLeft} {
		if !c.Swipe(dir) {
			t.Fatalf("Swipe %s was rejected", dir)
		}
		sched.fire(t)
	}

	snap := c.Snapshot()
	if snap.State != model.DeckStateSummary {
		t.Fatalf("Expected summary, got %s", snap.State)
	}
	if diff := cmp.Diff([]string{"b1-A", "b1-B"}, ids(snap.Liked)); diff != "" {
		t.Errorf("Unexpected liked set (-want +got):\n%s", diff)
	}
	if snap.Seen() != 3 {
		t.Errorf("Expected 3 seen, got %d", snap.Seen())
	}
	if snap.Index != 3 {
		t.Errorf("Expected index == total in summary, got %d", snap.Index)
	}
	if snap.Current != nil || snap.Next != nil {
		t.Error("Summary should expose no current or preview card")
	}
}

func TestSwipe_AdvancesByOnePerDecision(t *testing.T) {
	c, _, sched := newTestController(t, 4)
	c.Start()
	waitForState(t, c, model.DeckStateActive)

	for want := 1; want < 4; want++ {
		c.Swipe(model.DirectionLeft)
		sched.fire(t)
		snap := c.Snapshot()
		if snap.Index != want {
			t.Fatalf("Expected index %d, got %d", want, snap.Index)
		}
		if snap.State != model.DeckStateActive {
			t.Fatalf("Expected active before the last card, got %s", snap.State)
		}
	}

	c.Swipe(model.DirectionLeft)
	sched.fire(t)
	snap := c.Snapshot()
	if snap.State != model.DeckStateSummary {
		t.Errorf("Expected summary after the last card, got %s", snap.State)
	}
	if len(snap.Liked) != 0 {
		t.Errorf("Expected no likes, got %d", len(snap.Liked))
	}
}

func TestSwipe_FeedbackWindow(t *testing.T) {
	c, _, sched := newTestController(t, 2)
	c.Start()
	waitForState(t, c, model.DeckStateActive)

	c.Swipe(model.DirectionRight)
	snap := c.Snapshot()

	// Chooser picks the last message of the set
	if snap.Feedback != "Great!" {
		t.Errorf("Expected feedback 'Great!', got %q", snap.Feedback)
	}
	if !snap.Processing {
		t.Error("Expected a decision in flight")
	}
	if snap.Index != 0 {
		t.Errorf("Index should not advance before the delay, got %d", snap.Index)
	}
	if timer := sched.last(); timer == nil || timer.d != DefaultFeedbackDelay {
		t.Errorf("Expected a %v feedback timer", DefaultFeedbackDelay)
	}

	sched.fire(t)
	snap = c.Snapshot()
	if snap.Feedback != "" {
		t.Errorf("Expected feedback cleared, got %q", snap.Feedback)
	}
	if snap.Processing {
		t.Error("Expected no decision in flight after the delay")
	}

	c.Swipe(model.DirectionLeft)
	if got := c.Snapshot().Feedback; got != "I understand why" {
		t.Errorf("Expected dislike feedback 'I understand why', got %q", got)
	}
}

func TestSwipe_DuplicateDuringFeedbackDropped(t *testing.T) {
	c, _, sched := newTestController(t, 3)
	c.Start()
	waitForState(t, c, model.DeckStateActive)

	if !c.Swipe(model.DirectionRight) {
		t.Fatal("First swipe should be accepted")
	}
	if c.Swipe(model.DirectionRight) {
		t.Error("Second swipe during the feedback window should be rejected")
	}
	if c.Swipe(model.DirectionLeft) {
		t.Error("Third swipe during the feedback window should be rejected")
	}

	sched.mu.Lock()
	scheduled := len(sched.timers)
	sched.mu.Unlock()
	if scheduled != 1 {
		t.Errorf("Expected exactly one scheduled advance, got %d", scheduled)
	}

	sched.fire(t)
	snap := c.Snapshot()
	if snap.Index != 1 {
		t.Errorf("Expected index 1, got %d", snap.Index)
	}
	if diff := cmp.Diff([]string{"b1-A"}, ids(snap.Liked)); diff != "" {
		t.Errorf("Unexpected liked set (-want +got):\n%s", diff)
	}
}

func TestSwipe_RejectedOutsideActive(t *testing.T) {
	loader := &stubLoader{gate: make(chan struct{})}
	sched := &manualScheduler{}
	c := New(loader, Options{DeckSize: 1, Scheduler: sched})

	if c.Swipe(model.DirectionRight) {
		t.Error("Swipe before Start should be rejected")
	}

	c.Start()
	if c.Swipe(model.DirectionRight) {
		t.Error("Swipe while loading should be rejected")
	}
	close(loader.gate)
	waitForState(t, c, model.DeckStateActive)

	c.Swipe(model.DirectionRight)
	sched.fire(t)
	waitForState(t, c, model.DeckStateSummary)

	if c.Swipe(model.DirectionLeft) {
		t.Error("Swipe in summary should be rejected")
	}
}

func TestProgress(t *testing.T) {
	c, _, sched := newTestController(t, 4)
	c.Start()
	waitForState(t, c, model.DeckStateActive)

	value, ok := c.Progress()
	if !ok || value != 0.25 {
		t.Errorf("Expected progress 0.25, got %v (ok=%v)", value, ok)
	}

	c.Swipe(model.DirectionRight)
	sched.fire(t)
	value, _ = c.Progress()
	if value != 0.5 {
		t.Errorf("Expected progress 0.5, got %v", value)
	}
}

func TestRestart_FromSummary(t *testing.T) {
	c, loader, sched := newTestController(t, 2)
	c.Start()
	waitForState(t, c, model.DeckStateActive)

	first := c.Snapshot().Current
	c.Swipe(model.DirectionRight)
	sched.fire(t)
	c.Swipe(model.DirectionRight)
	sched.fire(t)
	waitForState(t, c, model.DeckStateSummary)

	loader.mu.Lock()
	loader.gate = make(chan struct{})
	gate := loader.gate
	loader.mu.Unlock()

	c.Restart()
	snap := c.Snapshot()
	if snap.State != model.DeckStateLoading {
		t.Errorf("Expected loading right after restart, got %s", snap.State)
	}
	if snap.Index != 0 || len(snap.Liked) != 0 {
		t.Errorf("Expected index 0 and no likes, got index %d and %d likes", snap.Index, len(snap.Liked))
	}
	if first.IsLocal() {
		t.Error("Candidates of the discarded deck should be released")
	}

	close(gate)
	snap = waitForState(t, c, model.DeckStateActive)
	if snap.Current.ID != "b2-A" {
		t.Errorf("Expected a fresh batch, got %s", snap.Current.ID)
	}
	if diff := cmp.Diff([]int{2, 2}, loader.Calls()); diff != "" {
		t.Errorf("Unexpected loader calls (-want +got):\n%s", diff)
	}
}

func TestRestart_MidFeedbackIgnoresStaleTimer(t *testing.T) {
	c, _, sched := newTestController(t, 3)
	c.Start()
	waitForState(t, c, model.DeckStateActive)

	c.Swipe(model.DirectionRight)
	stale := sched.last()

	c.Restart()
	if !stale.stopped {
		t.Error("Restart should stop the pending feedback timer")
	}
	waitForState(t, c, model.DeckStateActive)

	// The old timer fires anyway; it must not touch the new deck
	stale.f()

	snap := c.Snapshot()
	if snap.Index != 0 || snap.Processing || len(snap.Liked) != 0 {
		t.Errorf("Stale timer mutated the new deck: index=%d processing=%v liked=%d",
			snap.Index, snap.Processing, len(snap.Liked))
	}
	if snap.Current.ID != "b2-A" {
		t.Errorf("Expected new deck, got %s", snap.Current.ID)
	}
}

func TestRestart_DuringLoadDiscardsStaleBatch(t *testing.T) {
	loader := &stubLoader{gate: make(chan struct{})}
	c := New(loader, Options{DeckSize: 2, Scheduler: &manualScheduler{}})

	c.Start()
	firstGate := loader.gate
	waitForCalls(t, loader, 1)

	loader.mu.Lock()
	loader.gate = nil
	loader.mu.Unlock()

	c.Restart()
	snap := waitForState(t, c, model.DeckStateActive)
	if snap.Current.ID != "b2-A" {
		t.Fatalf("Expected second batch, got %s", snap.Current.ID)
	}

	close(firstGate)
	time.Sleep(20 * time.Millisecond)

	snap = c.Snapshot()
	if snap.Current.ID != "b2-A" {
		t.Errorf("Stale batch replaced the current deck: %s", snap.Current.ID)
	}
}

func TestEmptyBatchGoesToSummary(t *testing.T) {
	c := New(emptyLoader{}, Options{DeckSize: 3, Scheduler: &manualScheduler{}})
	c.Start()

	snap := waitForState(t, c, model.DeckStateSummary)
	if snap.Total != 0 || len(snap.Liked) != 0 {
		t.Errorf("Expected empty summary, got total=%d liked=%d", snap.Total, len(snap.Liked))
	}
}

func TestSetDeckSize_AppliesOnRestart(t *testing.T) {
	c, loader, _ := newTestController(t, 2)
	c.Start()
	waitForState(t, c, model.DeckStateActive)

	c.SetDeckSize(5)
	if c.Snapshot().Total != 2 {
		t.Error("Deck size change should not affect the current deck")
	}

	c.Restart()
	snap := waitForState(t, c, model.DeckStateActive)
	if snap.Total != 5 {
		t.Errorf("Expected 5 candidates after restart, got %d", snap.Total)
	}

	c.SetDeckSize(0)
	c.Restart()
	waitForState(t, c, model.DeckStateActive)
	calls := loader.Calls()
	if calls[len(calls)-1] != 1 {
		t.Errorf("Deck size should clamp to 1, got %d", calls[len(calls)-1])
	}
}

func TestSetMessages(t *testing.T) {
	c, _, _ := newTestController(t, 2)
	c.SetMessages(Messages{Like: []string{"Ótimo!"}})
	c.Start()
	waitForState(t, c, model.DeckStateActive)

	c.Swipe(model.DirectionRight)
	if got := c.Snapshot().Feedback; got != "Ótimo!" {
		t.Errorf("Expected localized feedback, got %q", got)
	}
	if c.opts.Messages.Dislike[0] != DefaultMessages.Dislike[0] {
		t.Error("Empty dislike set should keep the previous messages")
	}
}

func TestClose_ReleasesAndStops(t *testing.T) {
	c, _, sched := newTestController(t, 2)
	c.Start()
	snap := waitForState(t, c, model.DeckStateActive)

	c.Swipe(model.DirectionRight)
	timer := sched.last()
	c.Close()

	if !timer.stopped {
		t.Error("Close should stop the pending timer")
	}
	if snap.Current.IsLocal() || snap.Next.IsLocal() {
		t.Error("Close should release every candidate")
	}

	timer.f()
	if c.Snapshot().Index != 0 {
		t.Error("Timer firing after Close should be ignored")
	}
}

func TestPick(t *testing.T) {
	messages := []string{"a", "b"}

	if got := pick(messages, func(int) int { return 1 }); got != "b" {
		t.Errorf("Expected 'b', got %q", got)
	}
	if got := pick(messages, func(int) int { return 7 }); got != "a" {
		t.Errorf("Out-of-range choice should fall back to the first message, got %q", got)
	}
	if got := pick(nil, func(int) int { return 0 }); got != "" {
		t.Errorf("Expected empty message, got %q", got)
	}
}

type emptyLoader struct{}

func (emptyLoader) Load(context.Context, int) []*model.Candidate { return nil }
