package panel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/galaxy"
	"github.com/san-kum/galaxy/internal/scene"
)

func newCounting() (*Panel, *config.Parameters, *int) {
	params := config.DefaultParameters()
	calls := 0
	p := New(&params, func() error { calls++; return nil }, nil)
	return p, &params, &calls
}

func TestFieldTable(t *testing.T) {
	want := []string{"count", "size", "radius", "branches", "spin", "randomness", "randomnessPower", "insideColor", "outsideColor"}
	require.Len(t, Fields, len(want))
	for i, name := range want {
		assert.Equal(t, name, Fields[i].Name)
	}

	f, err := New(&config.Parameters{}, nil, nil).Field("count")
	require.NoError(t, err)
	assert.Equal(t, config.Range{Min: 100, Max: 1000000, Step: 100}, f.Range)
}

func TestDragDoesNotRegenerate(t *testing.T) {
	p, params, calls := newCounting()

	require.NoError(t, p.Drag("radius", 7.5))
	require.NoError(t, p.Drag("radius", 8.25))

	assert.Equal(t, 0, *calls)
	assert.Equal(t, config.DefaultRadius, params.Radius)
	assert.True(t, p.Editing("radius"))

	shown, err := p.Display("radius")
	require.NoError(t, err)
	assert.Equal(t, 8.25, shown)
}

func TestCommitDraftRegeneratesOnce(t *testing.T) {
	p, params, calls := newCounting()

	require.NoError(t, p.Drag("branches", 11.4))
	require.NoError(t, p.CommitDraft("branches"))

	assert.Equal(t, 1, *calls)
	assert.Equal(t, 11, params.Branches)
	assert.False(t, p.Editing("branches"))

	require.NoError(t, p.CommitDraft("branches"))
	assert.Equal(t, 1, *calls, "no draft, no commit")
}

func TestCommitSnapsAndClamps(t *testing.T) {
	tests := []struct {
		field string
		in    float64
		check func(*config.Parameters) bool
	}{
		{"count", 1234, func(p *config.Parameters) bool { return p.Count == 1200 }},
		{"count", 5e6, func(p *config.Parameters) bool { return p.Count == 1000000 }},
		{"branches", 1, func(p *config.Parameters) bool { return p.Branches == 2 }},
		{"spin", -12, func(p *config.Parameters) bool { return p.Spin == -5 }},
		{"randomness", -0.5, func(p *config.Parameters) bool { return p.Randomness == 0 }},
		{"randomnessPower", 0, func(p *config.Parameters) bool { return p.RandomnessPower == 1 }},
		{"size", 0.0004, func(p *config.Parameters) bool { return p.Size == 0.001 }},
	}
	for _, tt := range tests {
		p, params, calls := newCounting()
		require.NoError(t, p.Commit(tt.field, tt.in))
		assert.Truef(t, tt.check(params), "%s=%v produced %+v", tt.field, tt.in, *params)
		assert.Equal(t, 1, *calls)
	}
}

func TestNudge(t *testing.T) {
	p, params, calls := newCounting()

	require.NoError(t, p.Nudge("branches", 2))
	require.NoError(t, p.Nudge("branches", 1))
	shown, _ := p.Display("branches")
	assert.Equal(t, 9.0, shown)
	assert.Equal(t, 6, params.Branches)

	require.NoError(t, p.Nudge("branches", -100))
	shown, _ = p.Display("branches")
	assert.Equal(t, 2.0, shown)

	p.Cancel("branches")
	assert.False(t, p.Editing("branches"))
	assert.Equal(t, 0, *calls)
}

func TestColorFields(t *testing.T) {
	p, params, calls := newCounting()

	require.NoError(t, p.CommitColor("insideColor", "#ffffff"))
	assert.Equal(t, config.Color{R: 1, G: 1, B: 1}, params.InsideColor)
	assert.Equal(t, 1, *calls)

	err := p.CommitColor("outsideColor", "blue")
	assert.True(t, errors.Is(err, config.ErrInvalidColor))
	assert.Equal(t, 1, *calls)

	c, err := p.ColorValue("outsideColor")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultOutsideColor, c.Hex())
}

func TestFieldErrors(t *testing.T) {
	p, _, calls := newCounting()

	assert.ErrorIs(t, p.Commit("gravity", 1), ErrUnknownField)
	assert.ErrorIs(t, p.Drag("insideColor", 1), ErrFieldKind)
	assert.ErrorIs(t, p.CommitColor("spin", "#fff"), ErrFieldKind)
	_, err := p.Value("outsideColor")
	assert.ErrorIs(t, err, ErrFieldKind)
	assert.Equal(t, 0, *calls)
}

func TestHookErrorPropagates(t *testing.T) {
	params := config.DefaultParameters()
	boom := errors.New("boom")
	p := New(&params, func() error { return boom }, nil)

	assert.ErrorIs(t, p.Commit("spin", 1), boom)
	assert.Equal(t, 1.0, params.Spin, "the field is written before the hook runs")
}

func TestApplyPreset(t *testing.T) {
	p, params, calls := newCounting()
	require.NoError(t, p.Drag("spin", 2))

	preset := config.GetPreset("classic")
	require.NotNil(t, preset)
	require.NoError(t, p.Apply(*preset))

	assert.Equal(t, 3, params.Branches)
	assert.False(t, p.Editing("spin"))
	assert.Equal(t, 1, *calls)
}

func TestCommitRegeneratesStage(t *testing.T) {
	params := config.DefaultParameters()
	params.Count = 200
	stage := scene.NewStage(&params, galaxy.NewGenerator(1, galaxy.Options{}, nil), nil)
	require.NoError(t, stage.Regenerate())
	first := stage.Points()

	p := New(&params, stage.Regenerate, nil)
	require.NoError(t, p.Commit("count", 500))

	assert.Equal(t, 1, stage.Scene().Len())
	assert.True(t, first.Disposed())
	assert.Len(t, stage.Points().Geometry.Buffers.Positions, 1500)
}

func TestFieldFraction(t *testing.T) {
	f, err := New(&config.Parameters{}, nil, nil).Field("branches")
	require.NoError(t, err)

	assert.Equal(t, 0.0, f.Fraction(2))
	assert.Equal(t, 1.0, f.Fraction(20))
	assert.Equal(t, 1.0, f.Fraction(99))
	assert.InDelta(t, 11, f.At(0.5), 1e-12)
	assert.Equal(t, 2.0, f.At(-1))
	assert.Equal(t, 0.0, Field{Kind: ColorPicker}.Fraction(3))
}

func TestIntegerDragShowsCommittedValue(t *testing.T) {
	p, params, _ := newCounting()

	require.NoError(t, p.Drag("count", 150.7))
	shown, err := p.Display("count")
	require.NoError(t, err)
	assert.Equal(t, 200.0, shown)

	require.NoError(t, p.CommitDraft("count"))
	assert.Equal(t, 200, params.Count)

	require.NoError(t, p.Drag("branches", 7.6))
	shown, _ = p.Display("branches")
	assert.Equal(t, 8.0, shown)

	require.NoError(t, p.Drag("radius", 4.123))
	shown, _ = p.Display("radius")
	assert.Equal(t, 4.123, shown, "float drafts stay unsnapped while dragging")
}
