// Package panel binds editable widgets to the galaxy parameter store.
//
// Widgets report intermediate values with Drag and Nudge; those are kept as
// drafts and never touch the parameters. Only a commit writes the field
// (snapped to the widget step and clamped to its range) and then runs the
// regeneration hook synchronously on the caller's goroutine.
package panel

import (
	"errors"
	"fmt"

	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/logging"
)

var (
	ErrUnknownField = errors.New("panel: unknown field")
	ErrFieldKind    = errors.New("panel: wrong field kind")
)

type Kind int

const (
	Float Kind = iota
	Integer
	ColorPicker
)

type Field struct {
	Name  string
	Kind  Kind
	Range config.Range
}

// Fraction is where v sits within the field range, in [0, 1].
func (f Field) Fraction(v float64) float64 {
	if f.Range.Max <= f.Range.Min {
		return 0
	}
	return (f.Range.Clamp(v) - f.Range.Min) / (f.Range.Max - f.Range.Min)
}

// At is the value a fraction t along the range, clamped.
func (f Field) At(t float64) float64 {
	return f.Range.Clamp(f.Range.Min + t*(f.Range.Max-f.Range.Min))
}

// Fields in display order.
var Fields = []Field{
	{Name: "count", Kind: Integer, Range: config.CountRange},
	{Name: "size", Kind: Float, Range: config.SizeRange},
	{Name: "radius", Kind: Float, Range: config.RadiusRange},
	{Name: "branches", Kind: Integer, Range: config.BranchesRange},
	{Name: "spin", Kind: Float, Range: config.SpinRange},
	{Name: "randomness", Kind: Float, Range: config.RandomnessRange},
	{Name: "randomnessPower", Kind: Float, Range: config.RandomnessPowerRange},
	{Name: "insideColor", Kind: ColorPicker},
	{Name: "outsideColor", Kind: ColorPicker},
}

// Panel owns the writable reference to the parameter store.
type Panel struct {
	params   *config.Parameters
	onCommit func() error
	drafts   map[string]float64
	log      logging.Logger
}

// New binds to params. onCommit runs after every committed edit; nil means
// no regeneration.
func New(params *config.Parameters, onCommit func() error, log logging.Logger) *Panel {
	if onCommit == nil {
		onCommit = func() error { return nil }
	}
	return &Panel{
		params:   params,
		onCommit: onCommit,
		drafts:   make(map[string]float64),
		log:      logging.OrNop(log),
	}
}

func (p *Panel) Fields() []Field { return Fields }

func (p *Panel) Field(name string) (Field, error) {
	for _, f := range Fields {
		if f.Name == name {
			return f, nil
		}
	}
	return Field{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
}

// Parameters returns a snapshot of the store.
func (p *Panel) Parameters() config.Parameters { return *p.params }

// Value is the committed value of a numeric field.
func (p *Panel) Value(name string) (float64, error) {
	if _, err := p.numeric(name); err != nil {
		return 0, err
	}
	switch name {
	case "count":
		return float64(p.params.Count), nil
	case "size":
		return p.params.Size, nil
	case "radius":
		return p.params.Radius, nil
	case "branches":
		return float64(p.params.Branches), nil
	case "spin":
		return p.params.Spin, nil
	case "randomness":
		return p.params.Randomness, nil
	default:
		return p.params.RandomnessPower, nil
	}
}

// Display is the draft if the field is being edited, the committed value
// otherwise.
func (p *Panel) Display(name string) (float64, error) {
	if v, ok := p.drafts[name]; ok {
		return v, nil
	}
	return p.Value(name)
}

func (p *Panel) Editing(name string) bool {
	_, ok := p.drafts[name]
	return ok
}

// Drag records an uncommitted value, clamped to the field range. Integer
// drafts are also snapped to the step so the shown value is the one Commit
// writes.
func (p *Panel) Drag(name string, v float64) error {
	f, err := p.numeric(name)
	if err != nil {
		return err
	}
	if f.Kind == Integer {
		p.drafts[name] = f.Range.Snap(v)
		return nil
	}
	p.drafts[name] = f.Range.Clamp(v)
	return nil
}

// Nudge moves the draft by whole steps, starting from the committed value.
func (p *Panel) Nudge(name string, steps int) error {
	f, err := p.numeric(name)
	if err != nil {
		return err
	}
	cur, _ := p.Display(name)
	p.drafts[name] = f.Range.Snap(cur + float64(steps)*f.Range.Step)
	return nil
}

// Cancel drops a draft without committing it.
func (p *Panel) Cancel(name string) {
	delete(p.drafts, name)
}

// CommitDraft commits the pending draft, if any.
func (p *Panel) CommitDraft(name string) error {
	v, ok := p.drafts[name]
	if !ok {
		return nil
	}
	return p.Commit(name, v)
}

// Commit snaps v to the field step, writes it and regenerates.
func (p *Panel) Commit(name string, v float64) error {
	f, err := p.numeric(name)
	if err != nil {
		return err
	}
	v = f.Range.Snap(v)
	delete(p.drafts, name)

	switch name {
	case "count":
		p.params.Count = int(v)
	case "size":
		p.params.Size = v
	case "radius":
		p.params.Radius = v
	case "branches":
		p.params.Branches = int(v)
	case "spin":
		p.params.Spin = v
	case "randomness":
		p.params.Randomness = v
	case "randomnessPower":
		p.params.RandomnessPower = v
	}
	p.log.Debugf("commit %s=%g", name, v)
	return p.onCommit()
}

func (p *Panel) ColorValue(name string) (config.Color, error) {
	if err := p.colorField(name); err != nil {
		return config.Color{}, err
	}
	if name == "insideColor" {
		return p.params.InsideColor, nil
	}
	return p.params.OutsideColor, nil
}

// CommitColor parses hex and commits it to a color field.
func (p *Panel) CommitColor(name, hex string) error {
	if err := p.colorField(name); err != nil {
		return err
	}
	c, err := config.ParseColor(hex)
	if err != nil {
		return err
	}
	return p.SetColor(name, c)
}

func (p *Panel) SetColor(name string, c config.Color) error {
	if err := p.colorField(name); err != nil {
		return err
	}
	if name == "insideColor" {
		p.params.InsideColor = c
	} else {
		p.params.OutsideColor = c
	}
	p.log.Debugf("commit %s=%s", name, c.Hex())
	return p.onCommit()
}

// Apply replaces every field at once (presets) and regenerates once.
func (p *Panel) Apply(params config.Parameters) error {
	*p.params = params.Clamp()
	clear(p.drafts)
	return p.onCommit()
}

func (p *Panel) numeric(name string) (Field, error) {
	f, err := p.Field(name)
	if err != nil {
		return Field{}, err
	}
	if f.Kind == ColorPicker {
		return Field{}, fmt.Errorf("%w: %s is a color", ErrFieldKind, name)
	}
	return f, nil
}

func (p *Panel) colorField(name string) error {
	f, err := p.Field(name)
	if err != nil {
		return err
	}
	if f.Kind != ColorPicker {
		return fmt.Errorf("%w: %s is not a color", ErrFieldKind, name)
	}
	return nil
}
