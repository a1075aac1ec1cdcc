package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"errors"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/sim"
)

func testFrame(t *testing.T) Frame {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 9
	cfg.Galaxy.Count = 500
	cfg.Camera.Position = [3]float64{0, 5, 6}
	s, err := sim.New(cfg, nil, nil)
	require.NoError(t, err)
	fr, err := Capture(s, 160, 120, 10)
	require.NoError(t, err)
	return fr
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"svg", SVG},
		{"PNG", PNG},
		{".json", JSON},
		{" csv ", CSV},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}

	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
	if f, err := FormatFromPath("out/frame.png"); err != nil || f != PNG {
		t.Errorf("FormatFromPath: %q, %v", f, err)
	}
	if err := Write(&bytes.Buffer{}, Format("bmp"), Frame{}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Write should reject unknown formats, got %v", err)
	}
}

func TestCapturePosesCloud(t *testing.T) {
	fr := testFrame(t)
	assert.InDelta(t, -0.5, fr.RotationY, 1e-12)
	assert.Equal(t, 500, fr.Buffers.Len())
	assert.NotEmpty(t, fr.sprites(), "a galaxy seen from above should be on screen")

	_, err := Capture(nil, 0, 10, 0)
	assert.Error(t, err)
}

func TestSVGWellFormed(t *testing.T) {
	fr := testFrame(t)
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, fr))

	dec := xml.NewDecoder(bytes.NewReader(buf.Bytes()))
	circles := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "circle" {
			circles++
		}
	}
	assert.Equal(t, len(fr.sprites()), circles)
	assert.Contains(t, buf.String(), "mix-blend-mode:screen")
	assert.Contains(t, buf.String(), "seed=9")
}

func TestPNGDecodes(t *testing.T) {
	fr := testFrame(t)
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, fr))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())

	lit := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 160; x++ {
			if r, g, b, _ := img.At(x, y).RGBA(); r+g+b > 0 {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 0)
}

func TestAccumulatorIsAdditive(t *testing.T) {
	acc := newAccumulator(4, 4)
	s := sprite{x: 1.5, y: 1.5, radius: 0.5, r: 0.4}
	acc.splat(s)
	once := acc.rgb[3*(1*4+1)]
	acc.splat(s)
	assert.InDelta(t, 2*once, acc.rgb[3*(1*4+1)], 1e-12)

	acc.splat(sprite{x: 10, y: 10, radius: 3, r: 1})
	assert.Equal(t, uint8(255), channel(1.7))
	assert.Equal(t, uint8(0), channel(-1))
}

func TestJSONAndCSV(t *testing.T) {
	fr := testFrame(t)

	var jbuf bytes.Buffer
	require.NoError(t, WriteJSON(&jbuf, fr))
	var d Data
	require.NoError(t, json.Unmarshal(jbuf.Bytes(), &d))
	assert.Equal(t, int64(9), d.Seed)
	assert.Equal(t, 500, d.Count)
	assert.Len(t, d.Positions, 1500)
	assert.Equal(t, fr.Params.InsideColor.Hex(), d.Params.InsideColor.Hex())

	var cbuf bytes.Buffer
	require.NoError(t, WriteCSV(&cbuf, fr))
	rows, err := csv.NewReader(strings.NewReader(cbuf.String())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 501)
	assert.Equal(t, []string{"x", "y", "z", "r", "g", "b"}, rows[0])
}

func TestWriteFile(t *testing.T) {
	fr := testFrame(t)
	path := filepath.Join(t.TempDir(), "frame.svg")
	require.NoError(t, WriteFile(path, SVG, fr))
	assert.FileExists(t, path)
}
