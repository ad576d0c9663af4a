package session

import (
	"context"
	"sync"
	"time"

	"github.com/EHLuC/ecotrip/internal/advice"
	"github.com/EHLuC/ecotrip/internal/greenops"
	"github.com/EHLuC/ecotrip/internal/history"
	"github.com/EHLuC/ecotrip/internal/logging"
)

// DefaultDelay is the cosmetic pause before an interactive result appears.
const DefaultDelay = 800 * time.Millisecond

// updateBuffer is the capacity of the Updates channel.
const updateBuffer = 16

// Recorder receives calculation and history metrics.
type Recorder interface {
	ObserveCalculation(mode greenops.TransportMode, emissionKg float64)
	ObserveHistorySize(n int)
	ObserveHistoryClear()
}

type nopRecorder struct{}

func (nopRecorder) ObserveCalculation(greenops.TransportMode, float64) {}
func (nopRecorder) ObserveHistorySize(int)                            {}
func (nopRecorder) ObserveHistoryClear()                              {}

// CompletionHook is called after every finished calculation with the new
// state and the persistence error, if any.
type CompletionHook func(State, error)

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithScheduler overrides the scheduler. By default a TimerScheduler is
// used when the delay is positive and an ImmediateScheduler otherwise.
func WithScheduler(s Scheduler) ControllerOption {
	return func(c *Controller) { c.scheduler = s }
}

// WithDelay sets the pause between Submit and completion.
func WithDelay(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithCompletionHook registers fn to run after each completion.
func WithCompletionHook(fn CompletionHook) ControllerOption {
	return func(c *Controller) { c.onComplete = fn }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) ControllerOption {
	return func(c *Controller) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithInitialState replaces the starting state.
func WithInitialState(s State) ControllerOption {
	return func(c *Controller) { c.state = s.clone() }
}

// Controller owns the current State and runs calculations. It is safe for
// concurrent use; scheduled completions may fire on another goroutine.
type Controller struct {
	mu sync.Mutex

	state      State
	selector   *advice.Selector
	history    *history.Store
	scheduler  Scheduler
	delay      time.Duration
	recorder   Recorder
	onComplete CompletionHook

	updates chan State
	cancel  func() bool
	// gen identifies the pending calculation; completions for an older
	// generation are discarded.
	gen uint64
}

// NewController creates a Controller. hist may be nil, in which case
// results are not recorded.
func NewController(selector *advice.Selector, hist *history.Store, opts ...ControllerOption) *Controller {
	c := &Controller{
		state:    NewState(),
		selector: selector,
		history:  hist,
		recorder: nopRecorder{},
		updates:  make(chan State, updateBuffer),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.selector == nil {
		c.selector = advice.NewSelector()
	}
	if c.scheduler == nil {
		if c.delay > 0 {
			c.scheduler = TimerScheduler{}
		} else {
			c.scheduler = ImmediateScheduler{}
		}
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Updates delivers every published state. Sends never block; when the
// buffer is full the update is dropped and State remains authoritative.
func (c *Controller) Updates() <-chan State {
	return c.updates
}

// SetDistance applies the SetDistance action.
func (c *Controller) SetDistance(text string) State {
	return c.apply(func(s State) State { return SetDistance(s, text) })
}

// SelectMode applies the SelectMode action.
func (c *Controller) SelectMode(mode greenops.TransportMode) State {
	return c.apply(func(s State) State { return SelectMode(s, mode) })
}

// ToggleComparison applies the ToggleComparison action.
func (c *Controller) ToggleComparison() State {
	return c.apply(ToggleComparison)
}

// ToggleTheme applies the ToggleTheme action.
func (c *Controller) ToggleTheme() State {
	return c.apply(ToggleTheme)
}

// Comparison returns every mode's emission for the current distance, or for
// the default comparison distance when the input is not valid.
func (c *Controller) Comparison() []greenops.Comparison {
	d, err := c.State().DistanceKm()
	if err != nil {
		d = greenops.DefaultComparisonDistanceKm
	}
	return greenops.Compare(d)
}

// LoadHistory reads the persisted history into the state.
func (c *Controller) LoadHistory(ctx context.Context) error {
	if c.history == nil {
		return nil
	}
	entries, err := c.history.Load(ctx)
	if err != nil {
		return err
	}
	c.recorder.ObserveHistorySize(len(entries))
	c.apply(func(s State) State { return HistoryLoaded(s, entries) })
	return nil
}

// ClearHistory deletes the persisted history and empties the state's copy.
func (c *Controller) ClearHistory(ctx context.Context) error {
	if c.history != nil {
		if err := c.history.Clear(ctx); err != nil {
			return err
		}
	}
	c.recorder.ObserveHistoryClear()
	c.recorder.ObserveHistorySize(0)
	c.apply(HistoryCleared)
	return nil
}

// Submit starts a calculation for the current input. It returns false
// without error when a calculation is already pending, and
// greenops.ErrInvalidDistance when the input is not a positive number.
func (c *Controller) Submit(ctx context.Context) (bool, error) {
	c.mu.Lock()
	distance, err := c.state.DistanceKm()
	if err != nil {
		c.mu.Unlock()
		return false, err
	}
	if c.state.Busy {
		c.mu.Unlock()
		logging.FromContext(ctx).Debug().
			Ctx(ctx).
			Str("component", "session").
			Str("operation", "submit").
			Msg("calculation already pending, submission ignored")
		return false, nil
	}

	c.state = BeginCalculation(c.state)
	c.gen++
	gen := c.gen
	mode := c.state.Mode
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.publish(snapshot)

	runCtx := context.WithoutCancel(ctx)
	cancel := c.scheduler.Schedule(c.delay, func() {
		c.complete(runCtx, gen, distance, mode)
	})

	c.mu.Lock()
	if c.gen == gen && c.state.Busy {
		c.cancel = cancel
	}
	c.mu.Unlock()

	return true, nil
}

// Cancel abandons the pending calculation, if any, and reports whether one
// was pending.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	if !c.state.Busy {
		c.mu.Unlock()
		return false
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
	c.state = FailCalculation(c.state, nil)
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.publish(snapshot)
	return true
}

// Delay returns the configured completion delay.
func (c *Controller) Delay() time.Duration {
	return c.delay
}

func (c *Controller) complete(ctx context.Context, gen uint64, distance float64, mode greenops.TransportMode) {
	c.mu.Lock()
	current := gen == c.gen && c.state.Busy
	c.mu.Unlock()
	if !current {
		return
	}

	log := logging.FromContext(ctx)
	fp := greenops.Compute(distance, mode)
	rule := c.selector.Rule(mode, distance, fp.EmissionKg)
	result := Result{
		Mode:          mode,
		DistanceKm:    distance,
		EmissionKg:    fp.EmissionKg,
		TreesToOffset: fp.TreesToOffset,
		Severity:      greenops.SeverityFor(fp.EmissionKg),
		Advice:        c.selector.Select(mode, distance, fp.EmissionKg),
		Rule:          rule,
		Equivalency:   greenops.CalculateForDisplay(ctx, fp.EmissionKg),
	}
	c.recorder.ObserveCalculation(mode, fp.EmissionKg)

	var (
		entries  []history.Entry
		saveErr  error
		recorded bool
	)
	if c.history != nil {
		_, entries, saveErr = c.history.Record(ctx, distance, mode, fp.EmissionKg)
		recorded = saveErr == nil
		if recorded {
			c.recorder.ObserveHistorySize(len(entries))
		} else {
			log.Error().
				Ctx(ctx).
				Str("component", "session").
				Str("operation", "complete").
				Err(saveErr).
				Msg("failed to record history entry")
		}
	}

	c.mu.Lock()
	if gen != c.gen {
		// Cancelled while recording; keep the persisted history visible.
		if recorded {
			c.state = HistoryLoaded(c.state, entries)
		}
		c.mu.Unlock()
		return
	}
	if !recorded {
		entries = c.state.History
	}
	next := CompleteCalculation(c.state, result, entries)
	if saveErr != nil {
		next.Err = saveErr
	}
	c.state = next
	c.cancel = nil
	snapshot := next.clone()
	hook := c.onComplete
	c.mu.Unlock()

	log.Debug().
		Ctx(ctx).
		Str("component", "session").
		Str("operation", "complete").
		Str("mode", string(mode)).
		Float64("distance_km", distance).
		Float64("emission_kg", fp.EmissionKg).
		Str("rule", rule.String()).
		Msg("calculation complete")

	c.publish(snapshot)
	if hook != nil {
		hook(snapshot, saveErr)
	}
}

func (c *Controller) apply(action func(State) State) State {
	c.mu.Lock()
	c.state = action(c.state)
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.publish(snapshot)
	return snapshot
}

func (c *Controller) publish(s State) {
	select {
	case c.updates <- s:
	default:
	}
}
