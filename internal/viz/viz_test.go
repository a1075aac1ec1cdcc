package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/galaxy/internal/config"
)

func TestCanvasPlotAndClear(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Plot(0, 0, 1, 0, 0)
	c.Plot(3, 3, 0, 0, 1)
	c.Plot(-1, 0, 1, 1, 1)
	c.Plot(4, 0, 1, 1, 1)

	assert.Equal(t, rune(0x2801), c.Grid[0][0])
	assert.Equal(t, rune(0x2880), c.Grid[0][1])
	assert.True(t, c.Lit(0, 0))
	assert.Equal(t, "⠁⢀\n", c.String())

	c.Clear()
	assert.False(t, c.Lit(0, 0))
	assert.Equal(t, "⠀⠀\n", c.String())
}

func TestCanvasSurfaceSize(t *testing.T) {
	c := NewCanvas(1, 1)
	c.SetSize(160, 80)
	w, h := c.PixelSize()
	assert.Equal(t, 80, c.Width)
	assert.Equal(t, 20, c.Height)
	assert.Equal(t, 160, w)
	assert.Equal(t, 80, h)
}

func TestCellColorAverages(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Plot(0, 0, 1, 0, 0)
	c.Plot(1, 0, 0, 0, 1)
	hex := c.cells[0][0].hex()
	require.Len(t, hex, 7)
	assert.Equal(t, hex[1:3], hex[5:7], "red and blue contribute equally")
	assert.Equal(t, "00", hex[3:5])
	assert.Equal(t, "", cell{}.hex())
}

func TestSlider(t *testing.T) {
	r := config.Range{Min: 0, Max: 10, Step: 1}
	assert.Equal(t, "░░░░", Slider(0, r, 4))
	assert.Equal(t, "██░░", Slider(5, r, 4))
	assert.Equal(t, "████", Slider(50, r, 4))
	assert.Equal(t, "", Slider(1, r, 0))
}

func TestThemes(t *testing.T) {
	assert.Equal(t, "nebula", GetTheme("missing").Name)
	seen := map[string]bool{}
	th := Themes[0]
	for range Themes {
		seen[th.Name] = true
		th = NextTheme(th)
	}
	assert.Len(t, seen, len(ThemeNames()))
	assert.Equal(t, Themes[0].Name, th.Name)
}

func testModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 3
	cfg.Galaxy.Count = 400
	m, err := NewModel(cfg, nil)
	require.NoError(t, err)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNudgeThenCommit(t *testing.T) {
	m := testModel(t)
	require.Equal(t, "count", m.field().Name)

	m = press(m, "l", "l")
	assert.Equal(t, 400, m.session.Parameters().Count, "nudges stay drafts")
	assert.Equal(t, 1, m.session.Stage.Generation())

	m = press(m, "enter")
	assert.Equal(t, 600, m.session.Parameters().Count)
	assert.Equal(t, 2, m.session.Stage.Generation())
	assert.Equal(t, 600, m.summary.Points)
}

func TestEscDropsDraft(t *testing.T) {
	m := testModel(t)
	m = press(m, "j", "j", "j", "L", "esc", "enter")
	assert.Equal(t, "branches", m.field().Name)
	assert.Equal(t, config.DefaultBranches, m.session.Parameters().Branches)
	assert.Equal(t, 1, m.session.Stage.Generation())
}

func TestTypedColor(t *testing.T) {
	m := testModel(t)
	m = press(m, "k", "k")
	require.Equal(t, "insideColor", m.field().Name)

	m = press(m, "e")
	require.True(t, m.editing)
	for i := 0; i < 7; i++ {
		m = press(m, "backspace")
	}
	m = press(m, "#", "0", "0", "f", "f", "0", "0", "enter")
	assert.False(t, m.editing)
	assert.Equal(t, "#00ff00", m.session.Parameters().InsideColor.Hex())
	assert.False(t, m.statusErr)
}

func TestTypedValueRejected(t *testing.T) {
	m := testModel(t)
	m = press(m, "tab", "e")
	m.editBuf = ""
	m = press(m, ".", "enter")
	assert.True(t, m.statusErr)
	assert.Equal(t, config.DefaultSize, m.session.Parameters().Size)
}

func TestPausedFramesHoldRotation(t *testing.T) {
	m := testModel(t)
	m = press(m, " ")
	require.True(t, m.session.Paused())

	before := m.session.Stage.Points().RotationY
	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	assert.Equal(t, before, m.session.Stage.Points().RotationY)

	m = press(m, " ")
	assert.False(t, m.session.Paused())
}

func TestViewRendersPanel(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)

	view := m.View()
	for _, f := range []string{"count", "randomnessPower", "outsideColor", "radial density"} {
		assert.Contains(t, view, f)
	}
	lit := 0
	for _, r := range strings.Join(strings.Fields(m.canvas.String()), "") {
		if r != blank {
			lit++
		}
	}
	assert.Greater(t, lit, 0, "the galaxy should land on the canvas")
}

func TestPresetAndQuit(t *testing.T) {
	m := testModel(t)
	m = press(m, "p")
	assert.Equal(t, 2, m.session.Stage.Generation())
	assert.Contains(t, m.status, "preset")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
