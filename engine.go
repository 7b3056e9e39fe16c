package fluidcard

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
)

// Option configures an [Engine] during creation.
type Option func(*options)

type options struct {
	clock    Clock
	link     DisplayLink
	sink     FrameSink
	logger   *slog.Logger
	width    float64
	expanded bool
	onDone   func(Frame)
}

// WithClock sets the clock transitions are timed with. The default is the
// system clock.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithDisplayLink makes the engine subscribe to link for the duration of
// every transition and tick on each refresh. Without a display link the host
// has to call [Engine.Tick] or [Engine.Run] itself.
func WithDisplayLink(link DisplayLink) Option {
	return func(o *options) { o.link = link }
}

// WithSink sets the sink that receives published frames.
func WithSink(s FrameSink) Option {
	return func(o *options) { o.sink = s }
}

// WithLogger sets the engine's logger. The default is the package logger
// at the time [New] is called.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithWidth sets the initial card width. The default is the configured
// content width.
func WithWidth(w float64) Option {
	return func(o *options) { o.width = w }
}

// WithExpanded starts the engine at rest in the expanded state.
func WithExpanded(expanded bool) Option {
	return func(o *options) { o.expanded = expanded }
}

// WithCompletion registers a function that is called with the last frame of
// every transition, after the state has flipped.
func WithCompletion(fn func(Frame)) Option {
	return func(o *options) { o.onDone = fn }
}

// Session is a running transition.
type Session struct {
	ID        uuid.UUID
	Direction Direction
	Start     time.Time
	Duration  time.Duration
	// Cancelled sessions jump to their terminal frame on the next tick.
	Cancelled bool
}

// direction holds what the engine precomputes for one transition direction.
type direction struct {
	duration time.Duration
	curve    TimingCurve
	channels compiledChoreography
}

type pendingHeights struct {
	top, bottom float64
}

// Engine drives the card through its transitions and publishes a [Frame]
// per tick.
//
// An Engine is not safe for concurrent use. Every method, including the
// display link callback, has to be called from the same goroutine.
type Engine struct {
	cfg   Config
	geom  CardGeometry
	m     morpher
	state State

	session *Session
	expand  direction
	shrink  direction

	clock       Clock
	link        DisplayLink
	sink        FrameSink
	log         *slog.Logger
	onDone      func(Frame)
	unsubscribe func()

	frame Frame

	pendingWidth   *float64
	pendingHeights *pendingHeights
}

// New returns an engine at rest. The configuration is validated; errors wrap
// [ErrInvalidConfiguration].
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{
		clock:  systemClock{},
		logger: Logger(),
		width:  cfg.ContentWidth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkWidth(o.width); err != nil {
		return nil, err
	}
	if o.logger == nil {
		o.logger = newNopLogger()
	}

	expand, err := newDirection(ExpandChoreography, cfg.ExpandEasing, cfg.ExpandDuration)
	if err != nil {
		return nil, err
	}
	shrink, err := newDirection(CollapseChoreography, cfg.CollapseEasing, cfg.CollapseDuration)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		state:  State{Phase: PhaseIdle, Expanded: o.expanded},
		expand: expand,
		shrink: shrink,
		clock:  o.clock,
		link:   o.link,
		sink:   o.sink,
		log:    o.logger,
		onDone: o.onDone,
	}
	e.setGeometry(o.width)
	e.frame = restFrame(e.geom, o.expanded)
	return e, nil
}

func newDirection(ch Choreography, ease Easing, d time.Duration) (direction, error) {
	curve, err := ease.Curve(d)
	if err != nil {
		return direction{}, err
	}
	cc, err := ch.compile(d)
	if err != nil {
		return direction{}, err
	}
	return direction{duration: d, curve: curve, channels: cc}, nil
}

// MaxWidth is the widest card, in points, that an engine lays out.
const MaxWidth = 4096

func checkWidth(w float64) error {
	if !(w > 0) || w > MaxWidth {
		return invalid("width %g outside (0, %d]", w, MaxWidth)
	}
	return nil
}

func (e *Engine) setGeometry(width float64) {
	e.geom = newCardGeometry(e.cfg, width)
	e.m = morpher{cfg: e.cfg, geom: e.geom}
}

// Config returns the engine's current configuration, including panel heights
// derived from [Engine.SetContentHeights].
func (e *Engine) Config() Config { return e.cfg }

// Geometry returns the card's static geometry.
func (e *Engine) Geometry() CardGeometry { return e.geom }

// State returns the engine's state.
func (e *Engine) State() State { return e.state }

// IsExpanded reports the state the card is in or heading to. During a
// transition this is the target, not the settled state: it turns true as soon
// as an expansion begins and false as soon as a collapse begins. The settled
// state is State().Expanded.
func (e *Engine) IsExpanded() bool {
	switch e.state.Phase {
	case PhaseExpanding:
		return true
	case PhaseCollapsing:
		return false
	default:
		return e.state.Expanded
	}
}

// Session returns the running transition, if any.
func (e *Engine) Session() (Session, bool) {
	if e.session == nil {
		return Session{}, false
	}
	return *e.session, true
}

// Frame returns the last published frame, or the rest frame if nothing has
// been published yet.
func (e *Engine) Frame() Frame { return e.frame }

// BeginExpand starts expanding a collapsed card at rest. It reports whether a
// transition was started; requests in any other state are ignored.
func (e *Engine) BeginExpand() bool {
	if e.state.Phase != PhaseIdle || e.state.Expanded {
		e.log.Debug("ignoring expand request", "state", e.state)
		return false
	}
	e.begin(Expand)
	return true
}

// BeginCollapse starts collapsing an expanded card at rest. It reports
// whether a transition was started; requests in any other state are ignored.
func (e *Engine) BeginCollapse() bool {
	if e.state.Phase != PhaseIdle || !e.state.Expanded {
		e.log.Debug("ignoring collapse request", "state", e.state)
		return false
	}
	e.begin(Collapse)
	return true
}

// Toggle starts whichever transition leaves the current rest state.
func (e *Engine) Toggle() bool {
	if e.state.Expanded {
		return e.BeginCollapse()
	}
	return e.BeginExpand()
}

func (e *Engine) direction(d Direction) direction {
	if d == Expand {
		return e.expand
	}
	return e.shrink
}

func (e *Engine) begin(d Direction) {
	s := &Session{
		ID:        uuid.Must(uuid.NewV7()),
		Direction: d,
		Start:     e.clock.Now(),
		Duration:  e.direction(d).duration,
	}
	e.session = s
	if d == Expand {
		e.state.Phase = PhaseExpanding
	} else {
		e.state.Phase = PhaseCollapsing
	}
	e.log.Info("transition started", "session", s.ID, "direction", d, "duration", s.Duration)

	if e.link != nil {
		e.unsubscribe = e.link.Subscribe(func(now time.Time) { e.Tick(now) })
	}
}

// Cancel marks the running transition for early termination. The next tick
// publishes its terminal frame. Cancel reports whether a transition was
// running.
func (e *Engine) Cancel() bool {
	if e.session == nil {
		return false
	}
	if !e.session.Cancelled {
		e.session.Cancelled = true
		e.log.Warn("transition cancelled", "session", e.session.ID, "direction", e.session.Direction)
	}
	return true
}

// Tick advances the running transition to now, publishes the resulting frame
// and returns it. Without a running transition it returns the last frame and
// publishes nothing.
func (e *Engine) Tick(now time.Time) Frame {
	s := e.session
	if s == nil {
		return e.frame
	}
	dir := e.direction(s.Direction)

	elapsed := max(0, now.Sub(s.Start))
	tp := clamp01(float64(elapsed) / float64(s.Duration))
	if s.Cancelled {
		tp = 1
	}
	progress := dir.curve.Evaluate(tp)
	if progress >= 1 {
		return e.complete(elapsed, tp)
	}

	vals := dir.channels.evaluate(progress)
	var sh shape
	if s.Direction == Expand {
		sh = e.m.expand(progress, vals)
	} else {
		sh = e.m.collapse(vals)
	}
	f := Frame{
		Session:        s.ID,
		Direction:      s.Direction,
		State:          e.state,
		Elapsed:        elapsed,
		TimeProgress:   tp,
		Progress:       progress,
		Channels:       vals,
		Layout:         sh.Layout,
		Holes:          sh.Holes,
		Outline:        sh.Outline,
		ContentOpacity: sh.Opacity,
		IndicatorAngle: indicatorAngle(s.Direction, elapsed, s.Duration, tp, e.cfg.Button.ExpandSweep),
	}
	e.publish(f)
	return f
}

// complete ends the running session with the rest frame of its target state.
func (e *Engine) complete(elapsed time.Duration, tp float64) Frame {
	s := e.session
	e.session = nil
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.state = State{Phase: PhaseIdle, Expanded: s.Direction == Expand}
	e.applyPending()

	f := restFrame(e.geom, e.state.Expanded)
	f.Session = s.ID
	f.Direction = s.Direction
	f.Elapsed = elapsed
	f.TimeProgress = tp
	f.Progress = 1
	f.Channels = e.direction(s.Direction).channels.evaluate(1)
	f.Done = true
	e.publish(f)

	e.log.Info("transition finished", "session", s.ID, "direction", s.Direction, "elapsed", elapsed, "cancelled", s.Cancelled)
	if e.onDone != nil {
		e.onDone(f)
	}
	return f
}

func (e *Engine) publish(f Frame) {
	e.frame = f
	if e.sink != nil {
		e.sink.ApplyFrame(f)
	}
}

// Run ticks the running transition every interval until it completes, for
// hosts without a display link. It returns nil right away if nothing is
// running. When ctx is done the transition is cancelled, its terminal frame
// is published and ctx's error is returned.
func (e *Engine) Run(ctx context.Context, interval time.Duration) error {
	if e.session == nil {
		return nil
	}
	if interval <= 0 {
		return invalid("tick interval %s is not positive", interval)
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for e.session != nil {
		select {
		case <-ctx.Done():
			e.Cancel()
			e.Tick(e.clock.Now())
			return ctx.Err()
		case <-t.C:
			e.Tick(e.clock.Now())
		}
	}
	return nil
}

// SetWidth changes the card's width. While a transition is running the change
// is deferred until it completes; otherwise the new rest frame is published
// immediately.
func (e *Engine) SetWidth(w float64) error {
	if err := checkWidth(w); err != nil {
		return err
	}
	e.pendingWidth = &w
	e.relayout()
	return nil
}

// SetContentHeights sizes the panels to fit content of the given heights.
// The top panel is at least four insets high and the bottom panel never gets
// shorter than its collapsed height. Like [Engine.SetWidth] the
// change is deferred while a transition is running.
func (e *Engine) SetContentHeights(top, bottom float64) error {
	if !(top >= 0) || !(bottom >= 0) || math.IsInf(top, 0) || math.IsInf(bottom, 0) {
		return invalid("content heights %g, %g must be non-negative", top, bottom)
	}
	e.pendingHeights = &pendingHeights{top: top, bottom: bottom}
	e.relayout()
	return nil
}

func (e *Engine) relayout() {
	if e.session != nil {
		e.log.Debug("deferring layout change", "session", e.session.ID)
		return
	}
	e.applyPending()
	e.publish(restFrame(e.geom, e.state.Expanded))
}

func (e *Engine) applyPending() {
	if e.pendingWidth == nil && e.pendingHeights == nil {
		return
	}
	width := e.geom.Width
	if e.pendingWidth != nil {
		width = *e.pendingWidth
	}
	if h := e.pendingHeights; h != nil {
		e.cfg.TopHeight = max(h.top, 4*e.cfg.TopInset) + 2*e.cfg.TopInset
		e.cfg.BottomHeight = max(h.bottom+2*e.cfg.BottomInset, e.cfg.CollapsedBottomHeight)
	}
	e.pendingWidth, e.pendingHeights = nil, nil
	e.setGeometry(width)
}
