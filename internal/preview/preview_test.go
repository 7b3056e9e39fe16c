package preview

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/fluidcard"
)

var testEpoch = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestModel(t *testing.T) (*Model, *testClock) {
	t.Helper()
	clk := &testClock{now: testEpoch}
	m, err := New(fluidcard.DefaultConfig(), WithClock(clk))
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	return m, clk
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestToggleRunsTransition(t *testing.T) {
	m, clk := newTestModel(t)
	assert.Nil(t, m.Init())

	_, cmd := m.Update(keyMsg(" "))
	require.NotNil(t, cmd, "toggle didn't schedule a tick")
	assert.Equal(t, fluidcard.PhaseExpanding, m.Engine().State().Phase)

	clk.now = testEpoch.Add(300 * time.Millisecond)
	_, cmd = m.Update(tickMsg(clk.now))
	assert.NotNil(t, cmd, "ticking stopped mid-transition")
	assert.Equal(t, 1, m.published)
	assert.NotEmpty(t, m.frame.Holes)

	clk.now = testEpoch.Add(time.Second)
	_, cmd = m.Update(tickMsg(clk.now))
	assert.Nil(t, cmd, "ticking continued after the transition")
	assert.Equal(t, fluidcard.State{Phase: fluidcard.PhaseIdle, Expanded: true}, m.Engine().State())
	assert.True(t, m.frame.Done)
}

func TestToggleIgnoredWhileRunning(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(keyMsg(" "))
	_, cmd := m.Update(keyMsg(" "))
	assert.Nil(t, cmd)
}

func TestCancelKey(t *testing.T) {
	m, clk := newTestModel(t)
	m.Update(keyMsg(" "))
	m.Update(keyMsg("c"))

	clk.now = testEpoch.Add(10 * time.Millisecond)
	_, cmd := m.Update(tickMsg(clk.now))
	assert.Nil(t, cmd)
	assert.True(t, m.Engine().IsExpanded())
	assert.True(t, m.frame.Done)
}

func TestWidthKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(keyMsg("+"))
	assert.Equal(t, 305.0, m.Engine().Geometry().Width)
	assert.Equal(t, 305.0, m.frame.Layout.Top.X1)

	for range 50 {
		m.Update(keyMsg("-"))
	}
	assert.Equal(t, float64(minWidth), m.Engine().Geometry().Width)
	assert.NoError(t, m.err)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t)
	v := m.View()
	assert.Contains(t, v, "idle(collapsed)")
	assert.Contains(t, v, "█")
	assert.Contains(t, v, "toggle")
}

func TestCard(t *testing.T) {
	m, _ := newTestModel(t)
	card := m.Card(40, 30)
	lines := strings.Split(strings.TrimRight(card, "\n"), "\n")
	assert.LessOrEqual(t, len(lines), 30)
	assert.Empty(t, m.Card(0, 10))
}

func TestInvalidInterval(t *testing.T) {
	_, err := New(fluidcard.DefaultConfig(), WithInterval(0))
	assert.Error(t, err)
}
