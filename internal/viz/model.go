package viz

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/galaxy/internal/camera"
	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/logging"
	"github.com/san-kum/galaxy/internal/metrics"
	"github.com/san-kum/galaxy/internal/panel"
	"github.com/san-kum/galaxy/internal/sim"
	"github.com/san-kum/galaxy/internal/stats"
)

const (
	sideWidth   = 40
	sliderWidth = 12
	histBins    = 30

	// maxPlotted bounds the points projected per frame; denser clouds are
	// strided.
	maxPlotted = 40000

	rotateStep = 0.08
	zoomStep   = 0.9
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type Model struct {
	session *sim.Session
	canvas  *Canvas
	log     logging.Logger

	theme   Theme
	styles  styles
	presets []string
	preset  int

	cursor  int
	editing bool
	editBuf string

	help      bool
	status    string
	statusErr bool

	generation int
	summary    stats.Summary
	hist       []float64

	width, height int
	fps           *metrics.FrameRate
}

// NewModel builds a session from cfg with the braille canvas as its drawing
// surface.
func NewModel(cfg *config.Config, log logging.Logger) (Model, error) {
	canvas := NewCanvas(40, 20)
	s, err := sim.New(cfg, canvas, log)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		session: s,
		canvas:  canvas,
		log:     logging.OrNop(log),
		theme:   ThemeNebula,
		styles:  newStyles(ThemeNebula),
		presets: config.ListPresets(),
		width:   120,
		height:  40,
		fps:     metrics.NewFrameRate(0.1),
	}
	m.resize()
	m.refreshStats()
	return m, nil
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case TickMsg:
		m.fps.Observe(float64(time.Time(msg).UnixNano()) / 1e9)
		m.frame()
		return m, tick()
	}
	return m, nil
}

// frame advances the animation unless paused and redraws the canvas.
func (m *Model) frame() {
	m.session.Step()
	m.draw()
}

func (m *Model) resize() {
	cols := m.width - sideWidth - 1
	rows := m.height - 1
	if cols < 10 {
		cols = 10
	}
	if rows < 5 {
		rows = 5
	}
	m.session.Viewport.Resize(cols*2, rows*4, 1)
}

func (m *Model) draw() {
	m.canvas.Clear()
	pts := m.session.Stage.Points()
	if pts == nil {
		return
	}
	buf := pts.Geometry.Buffers
	w, h := m.canvas.PixelSize()
	proj := m.session.Camera.Projector(w, h)
	rot := mgl64.Rotate3DY(pts.RotationY)

	stride := 1
	if n := buf.Len(); n > maxPlotted {
		stride = (n + maxPlotted - 1) / maxPlotted
	}
	for i := 0; i < buf.Len(); i += stride {
		x, y, z := buf.Position(i)
		p := rot.Mul3x1(mgl64.Vec3{float64(x), float64(y), float64(z)})
		sx, sy, _, ok := proj.Project(p)
		if !ok {
			continue
		}
		r, g, b := buf.Color(i)
		m.canvas.Plot(int(math.Floor(sx)), int(math.Floor(sy)), float64(r), float64(g), float64(b))
	}
}

func (m *Model) refreshStats() {
	m.generation = m.session.Stage.Generation()
	buf := m.session.Buffers()
	if buf == nil {
		return
	}
	m.summary = stats.Summarize(buf)
	m.hist = stats.RadialHistogram(buf, histBins, m.session.Parameters().Radius)
}

func (m *Model) setStatus(err error, format string, args ...any) {
	if err != nil {
		m.status, m.statusErr = err.Error(), true
		m.log.Warnf("%v", err)
		return
	}
	m.status, m.statusErr = fmt.Sprintf(format, args...), false
}

func (m Model) field() panel.Field { return panel.Fields[m.cursor] }

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.editing {
		m.editKey(msg)
		return m, nil
	}

	p := m.session.Panel
	name := m.field().Name

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left", "a":
		m.session.Orbit.Rotate(-rotateStep, 0)
	case "right", "d":
		m.session.Orbit.Rotate(rotateStep, 0)
	case "up", "w":
		m.session.Orbit.Rotate(0, -rotateStep)
	case "down", "s":
		m.session.Orbit.Rotate(0, rotateStep)
	case "+", "=":
		m.session.Orbit.Zoom(zoomStep)
	case "-", "_":
		m.session.Orbit.Zoom(1 / zoomStep)
	case "tab", "j":
		m.cursor = (m.cursor + 1) % len(panel.Fields)
	case "shift+tab", "k":
		m.cursor = (m.cursor + len(panel.Fields) - 1) % len(panel.Fields)
	case "h", "l", "H", "L":
		steps := map[string]int{"h": -1, "l": 1, "H": -10, "L": 10}[msg.String()]
		if m.field().Kind == panel.ColorPicker {
			m.setStatus(nil, "press e to type a color")
			break
		}
		if err := p.Nudge(name, steps); err != nil {
			m.setStatus(err, "")
		}
	case "enter":
		if !p.Editing(name) {
			break
		}
		err := p.CommitDraft(name)
		v, _ := p.Value(name)
		m.setStatus(err, "%s = %s", name, formatValue(m.field(), v))
	case "esc":
		p.Cancel(name)
		m.help = false
	case "e":
		m.editing = true
		if m.field().Kind == panel.ColorPicker {
			c, _ := p.ColorValue(name)
			m.editBuf = c.Hex()
		} else {
			v, _ := p.Display(name)
			m.editBuf = strconv.FormatFloat(v, 'f', -1, 64)
		}
	case "p":
		if len(m.presets) == 0 {
			break
		}
		m.preset = (m.preset + 1) % len(m.presets)
		preset := m.presets[m.preset]
		m.setStatus(m.session.ApplyPreset(preset), "preset %s", preset)
	case "r":
		seed := time.Now().UnixNano()
		m.setStatus(m.session.Reseed(seed), "seed %d", seed)
	case "t":
		m.theme = NextTheme(m.theme)
		m.styles = newStyles(m.theme)
	case " ":
		m.session.TogglePause()
	case "?":
		m.help = !m.help
	}

	if m.session.Stage.Generation() != m.generation {
		m.refreshStats()
	}
	return m, nil
}

func (m *Model) editKey(msg tea.KeyMsg) {
	f := m.field()
	switch msg.String() {
	case "enter":
		var err error
		if f.Kind == panel.ColorPicker {
			err = m.session.Panel.CommitColor(f.Name, m.editBuf)
		} else {
			var v float64
			v, err = strconv.ParseFloat(m.editBuf, 64)
			if err == nil {
				err = m.session.Panel.Commit(f.Name, v)
			}
		}
		m.editing, m.editBuf = false, ""
		m.setStatus(err, "%s committed", f.Name)
		if m.session.Stage.Generation() != m.generation {
			m.refreshStats()
		}
	case "esc":
		m.editing, m.editBuf = false, ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if len(msg.String()) != 1 {
			return
		}
		c := msg.String()[0]
		if f.Kind == panel.ColorPicker {
			if c == '#' || strings.IndexByte("0123456789abcdefABCDEF", c) >= 0 {
				m.editBuf += string(c)
			}
		} else if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
			m.editBuf += string(c)
		}
	}
}

func formatValue(f panel.Field, v float64) string {
	if f.Kind == panel.Integer {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func (m Model) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.Render(), " ", m.side())
}

func (m Model) side() string {
	st := m.styles
	params := m.session.Parameters()
	var b strings.Builder

	b.WriteString(GradientText("G A L A X Y", params.InsideColor, params.OutsideColor) + "\n")
	b.WriteString(Separator(sideWidth-4, st.label) + "\n")

	p := m.session.Panel
	for i, f := range panel.Fields {
		cursor := "  "
		label := st.label
		if i == m.cursor {
			cursor = st.selected.Render("▸ ")
			label = st.selected
		}
		var value string
		switch {
		case i == m.cursor && m.editing:
			value = st.draft.Render(m.editBuf + "_")
		case f.Kind == panel.ColorPicker:
			c, _ := p.ColorValue(f.Name)
			value = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("■ ") + st.value.Render(c.Hex())
		default:
			v, _ := p.Display(f.Name)
			style := st.value
			if p.Editing(f.Name) {
				style = st.draft
			}
			value = st.label.Render(Slider(v, f.Range, sliderWidth)) + " " + style.Render(formatValue(f, v))
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, label.Render(fmt.Sprintf("%-15s", f.Name)), value))
	}

	b.WriteString(Separator(sideWidth-4, st.label) + "\n")
	state := "running"
	if m.session.Paused() {
		state = "paused"
	}
	b.WriteString(fmt.Sprintf("%s %s  %s %d\n",
		st.label.Render("state"), st.value.Render(state),
		st.label.Render("gen"), m.generation))
	b.WriteString(fmt.Sprintf("%s %s  %s %.0f\n",
		st.label.Render("seed"), st.value.Render(strconv.FormatInt(m.session.Generator.Seed(), 10)),
		st.label.Render(m.fps.Name()), m.fps.Value()))
	b.WriteString(fmt.Sprintf("%s %.2f  %s %.3f\n",
		st.label.Render("mean r"), m.summary.MeanRadius,
		st.label.Render("thick"), m.summary.Thickness))

	if len(m.hist) > 0 {
		chart := asciigraph.Plot(m.hist, asciigraph.Height(4), asciigraph.Width(sideWidth-10), asciigraph.Caption("radial density"))
		b.WriteString(st.title.Render(chart) + "\n")
	}

	if m.status != "" {
		style := st.muted
		if m.statusErr {
			style = st.err
		}
		b.WriteString(style.Render(m.status) + "\n")
	}

	if m.help {
		b.WriteString(st.muted.Render(helpText) + "\n")
	} else {
		b.WriteString(st.muted.Render("? help  q quit") + "\n")
	}
	return st.panel.Width(sideWidth).Render(b.String())
}

const helpText = `arrows/wasd rotate  +/- zoom
tab/j/k select  h/l H/L adjust
enter commit  esc cancel  e type
p preset  r reseed  t theme
space pause  q quit`

// Run starts the terminal viewer and blocks until the user quits.
func Run(cfg *config.Config, log logging.Logger) error {
	m, err := NewModel(cfg, log)
	if err != nil {
		return err
	}
	defer m.session.Close()
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

var _ camera.Surface = (*Canvas)(nil)
