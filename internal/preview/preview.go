// Package preview is an interactive terminal host for the card engine.
//
// The program's frame ticks stand in for a display link: while a transition
// runs the model schedules a tick per refresh and forwards it to the engine,
// which publishes each frame back into the model.
package preview

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"honnef.co/go/fluidcard"
	"honnef.co/go/fluidcard/mask"
)

const (
	defaultInterval = time.Second / 60
	widthStep       = 10
	minWidth        = 120
	// Rows kept free below the card for the status line and help.
	chromeRows = 3
)

var (
	cardStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5f04ff"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	stateStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
)

type tickMsg time.Time

// link is a display link fired from the program's ticks.
type link struct {
	subs map[int]func(time.Time)
	next int
}

func (l *link) Subscribe(fn func(time.Time)) func() {
	if l.subs == nil {
		l.subs = map[int]func(time.Time){}
	}
	id := l.next
	l.next++
	l.subs[id] = fn
	return func() { delete(l.subs, id) }
}

func (l *link) active() bool { return len(l.subs) > 0 }

func (l *link) fire(now time.Time) {
	fns := make([]func(time.Time), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(now)
	}
}

type options struct {
	clock    fluidcard.Clock
	interval time.Duration
	logger   *slog.Logger
	width    float64
}

// Option configures a [Model].
type Option func(*options)

// WithClock sets the engine's clock. Ticks carry the time of the clock.
func WithClock(c fluidcard.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithInterval sets the refresh interval.
func WithInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

// WithLogger sets the logger passed to the engine.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithWidth sets the initial card width.
func WithWidth(w float64) Option {
	return func(o *options) { o.width = w }
}

// Model is the preview's Bubble Tea model.
type Model struct {
	engine   *fluidcard.Engine
	link     *link
	clock    fluidcard.Clock
	interval time.Duration
	keys     KeyMap
	help     help.Model

	frame     fluidcard.Frame
	published int
	err       error

	width  int
	height int
}

// New returns a model driving a card described by cfg.
func New(cfg fluidcard.Config, opts ...Option) (*Model, error) {
	o := options{
		clock:    fluidcard.ClockFunc(time.Now),
		interval: defaultInterval,
		logger:   fluidcard.Logger(),
		width:    cfg.ContentWidth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.interval <= 0 {
		return nil, fmt.Errorf("invalid refresh interval %s", o.interval)
	}

	m := &Model{
		link:     &link{},
		clock:    o.clock,
		interval: o.interval,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
	e, err := fluidcard.New(cfg,
		fluidcard.WithClock(o.clock),
		fluidcard.WithDisplayLink(m.link),
		fluidcard.WithSink(fluidcard.FrameSinkFunc(m.apply)),
		fluidcard.WithLogger(o.logger),
		fluidcard.WithWidth(o.width),
	)
	if err != nil {
		return nil, err
	}
	m.engine = e
	m.frame = e.Frame()
	return m, nil
}

func (m *Model) apply(f fluidcard.Frame) {
	m.frame = f
	m.published++
}

// Engine returns the engine the model drives.
func (m *Model) Engine() *fluidcard.Engine { return m.engine }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg(m.clock.Now())
	})
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.link.fire(time.Time(msg))
		if m.link.active() {
			return m, m.tick()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if m.engine.Toggle() {
				return m, m.tick()
			}
		case key.Matches(msg, m.keys.Cancel):
			m.engine.Cancel()
		case key.Matches(msg, m.keys.Wider):
			m.err = m.engine.SetWidth(m.engine.Geometry().Width + widthStep)
		case key.Matches(msg, m.keys.Narrower):
			m.err = m.engine.SetWidth(max(minWidth, m.engine.Geometry().Width-widthStep))
		}
	}
	return m, nil
}

// viewport is the area of card coordinates the preview shows. It leaves room
// for the gap overshooting during an expand.
func (m *Model) viewport() fluidcard.Rect {
	g := m.engine.Geometry()
	return fluidcard.Rect{X0: 0, Y0: 0, X1: g.Width, Y1: g.ExpandedHeight() * 1.1}
}

// Card renders the current frame with half-block characters into a grid of
// at most cols×rows cells.
func (m *Model) Card(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	vp := m.viewport()
	// Each cell is one pixel wide and two pixels tall.
	scale := math.Min(float64(cols)/vp.Width(), float64(2*rows)/vp.Height())
	a := mask.Alpha(m.frame.Outline, mask.Options{Viewport: vp, Scale: scale, Supersample: 4})

	const threshold = 0x80
	b := a.Bounds()
	b.Max.X = min(b.Max.X, cols)
	b.Max.Y = min(b.Max.Y, 2*rows)
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var line strings.Builder
		for x := b.Min.X; x < b.Max.X; x++ {
			top := a.AlphaAt(x, y).A >= threshold
			bottom := y+1 < b.Max.Y && a.AlphaAt(x, y+1).A >= threshold
			switch {
			case top && bottom:
				line.WriteRune('█')
			case top:
				line.WriteRune('▀')
			case bottom:
				line.WriteRune('▄')
			default:
				line.WriteByte(' ')
			}
		}
		sb.WriteString(cardStyle.Render(line.String()))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m *Model) status() string {
	f := m.frame
	s := fmt.Sprintf("%s  progress %.2f  holes %d  chevron %4.0f°  width %g  frames %d",
		stateStyle.Render(m.engine.State().String()),
		f.Progress, len(f.Holes), f.IndicatorAngle*180/math.Pi,
		m.engine.Geometry().Width, m.published)
	if m.err != nil {
		s += "  " + m.err.Error()
	}
	return statusStyle.Render(s)
}

func (m *Model) View() string {
	cols, rows := m.width, m.height-chromeRows
	if cols <= 0 || rows <= 0 {
		cols, rows = 80, 24
	}
	return m.Card(cols, rows) + "\n" + m.status() + "\n" + m.help.View(m.keys)
}

// Run shows the preview until the user quits or ctx is done.
func Run(ctx context.Context, cfg fluidcard.Config, opts ...Option) error {
	m, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("running preview: %w", err)
	}
	return nil
}
