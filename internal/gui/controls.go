package gui

import (
	"fmt"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/galaxy/internal/panel"
)

const (
	panelWidth = 300
	rowHeight  = 34
	panelPad   = 12
)

type sliderRow struct {
	field panel.Field
	track rl.Rectangle
}

// sliderPanel is the parameter panel drawn in the top-right corner. Dragging
// a slider only moves its draft; releasing the mouse commits it. Color rows
// take a typed hex value.
type sliderPanel struct {
	panel  *panel.Panel
	rows   []sliderRow
	bounds rl.Rectangle
	hidden bool

	active  int // dragged row, -1 when idle
	editing int // color row taking keyboard input, -1 when idle
	editBuf string
	status  string
}

func newSliderPanel(p *panel.Panel) *sliderPanel {
	sp := &sliderPanel{panel: p, active: -1, editing: -1}
	for _, f := range p.Fields() {
		sp.rows = append(sp.rows, sliderRow{field: f})
	}
	return sp
}

func (sp *sliderPanel) layout(screenWidth int) {
	x := float32(screenWidth - panelWidth - panelPad)
	y := float32(panelPad)
	sp.bounds = rl.NewRectangle(x, y, panelWidth, float32(len(sp.rows)*rowHeight+2*panelPad+18))
	for i := range sp.rows {
		ry := y + panelPad + float32(i*rowHeight) + 18
		sp.rows[i].track = rl.NewRectangle(x+panelPad, ry, panelWidth-2*panelPad, 8)
	}
}

func (sp *sliderPanel) typing() bool { return sp.editing >= 0 }

// update handles mouse input over the panel and reports whether the panel
// consumed it.
func (sp *sliderPanel) update(mouse rl.Vector2) bool {
	if sp.hidden {
		return false
	}

	if sp.active >= 0 {
		name := sp.rows[sp.active].field.Name
		if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
			sp.result(sp.panel.CommitDraft(name))
			sp.active = -1
			return true
		}
		sp.drag(sp.active, mouse)
		return true
	}

	if !rl.CheckCollisionPointRec(mouse, sp.bounds) {
		return false
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		for i, row := range sp.rows {
			hit := row.track
			hit.Y -= 6
			hit.Height += 12
			if !rl.CheckCollisionPointRec(mouse, hit) {
				continue
			}
			if row.field.Kind == panel.ColorPicker {
				c, _ := sp.panel.ColorValue(row.field.Name)
				sp.editing, sp.editBuf = i, c.Hex()
			} else {
				sp.active = i
				sp.drag(i, mouse)
			}
			break
		}
	}
	return true
}

func (sp *sliderPanel) drag(i int, mouse rl.Vector2) {
	row := sp.rows[i]
	t := float64((mouse.X - row.track.X) / row.track.Width)
	sp.result(sp.panel.Drag(row.field.Name, row.field.At(t)))
}

// typeKeys feeds keyboard input to the color row being edited.
func (sp *sliderPanel) typeKeys() {
	name := sp.rows[sp.editing].field.Name
	switch {
	case rl.IsKeyPressed(rl.KeyEnter):
		sp.result(sp.panel.CommitColor(name, sp.editBuf))
		sp.editing, sp.editBuf = -1, ""
		return
	case rl.IsKeyPressed(rl.KeyEscape):
		sp.editing, sp.editBuf = -1, ""
		return
	case rl.IsKeyPressed(rl.KeyBackspace) && len(sp.editBuf) > 0:
		sp.editBuf = sp.editBuf[:len(sp.editBuf)-1]
	}
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		c := rune(ch)
		if len(sp.editBuf) < 7 && (c == '#' || strings.ContainsRune("0123456789abcdefABCDEF", c)) {
			sp.editBuf += string(c)
		}
	}
}

func (sp *sliderPanel) result(err error) {
	if err != nil {
		sp.status = err.Error()
		return
	}
	sp.status = ""
}

func (sp *sliderPanel) draw() {
	if sp.hidden {
		return
	}
	rl.DrawRectangleRec(sp.bounds, ColPanel)
	rl.DrawRectangleLinesEx(sp.bounds, 1, ColTrack)

	for i, row := range sp.rows {
		f := row.field
		labelY := int32(row.track.Y) - 16
		labelCol := ColText
		if i == sp.active || i == sp.editing {
			labelCol = ColSelect
		}
		drawText(f.Name, int32(row.track.X), labelY, 12, labelCol)

		if f.Kind == panel.ColorPicker {
			c, _ := sp.panel.ColorValue(f.Name)
			r, g, b := c.RGBA8()
			swatch := row.track
			swatch.Height = 12
			rl.DrawRectangleRec(swatch, rl.NewColor(r, g, b, 255))
			text := c.Hex()
			if i == sp.editing {
				text = sp.editBuf + "_"
			}
			drawValue(text, row, labelY, labelCol)
			continue
		}

		v, _ := sp.panel.Display(f.Name)
		rl.DrawRectangleRec(row.track, ColTrack)
		fill := row.track
		fill.Width *= float32(f.Fraction(v))
		rl.DrawRectangleRec(fill, ColAccent)
		drawValue(formatValue(f, v), row, labelY, labelCol)
	}

	if sp.status != "" {
		drawText(sp.status, int32(sp.bounds.X), int32(sp.bounds.Y+sp.bounds.Height)+6, 12, rl.Red)
	}
}

func drawValue(text string, row sliderRow, y int32, col rl.Color) {
	w := rl.MeasureText(text, 12)
	drawText(text, int32(row.track.X+row.track.Width)-w, y, 12, col)
}

func formatValue(f panel.Field, v float64) string {
	if f.Kind == panel.Integer {
		return strconv.Itoa(int(v))
	}
	return fmt.Sprintf("%.3f", v)
}
