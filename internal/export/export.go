// Package export writes still frames of a galaxy session: rendered images
// (SVG, PNG) and raw point dumps (JSON, CSV).
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/galaxy"
	"github.com/san-kum/galaxy/internal/sim"
)

var ErrUnknownFormat = errors.New("export: unknown format")

type Format string

const (
	SVG  Format = "svg"
	PNG  Format = "png"
	JSON Format = "json"
	CSV  Format = "csv"
)

var Formats = []Format{SVG, PNG, JSON, CSV}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Frame is one posed view of the attached point cloud.
type Frame struct {
	Buffers   *galaxy.Buffers
	Size      float64
	RotationY float64
	Elapsed   float64
	Width     int
	Height    int
	Params    config.Parameters
	Seed      int64

	view viewFunc
}

// Capture poses s at elapsed seconds and sizes its camera for a width x
// height image.
func Capture(s *sim.Session, width, height int, elapsed float64) (Frame, error) {
	if width <= 0 || height <= 0 {
		return Frame{}, fmt.Errorf("export: bad image size %dx%d", width, height)
	}
	pts := s.Stage.Points()
	if pts == nil {
		return Frame{}, fmt.Errorf("export: no galaxy attached")
	}
	s.Viewport.Resize(width, height, 1)
	s.Pose(elapsed)

	return Frame{
		Buffers:   pts.Geometry.Buffers,
		Size:      pts.Material.Size,
		RotationY: pts.RotationY,
		Elapsed:   elapsed,
		Width:     width,
		Height:    height,
		Params:    *s.Parameters(),
		Seed:      s.Generator.Seed(),
		view:      cameraView(s.Camera, width, height),
	}, nil
}

// Write encodes frame in format f.
func Write(w io.Writer, f Format, frame Frame) error {
	switch f {
	case SVG:
		return WriteSVG(w, frame)
	case PNG:
		return WritePNG(w, frame)
	case JSON:
		return WriteJSON(w, frame)
	case CSV:
		return WriteCSV(w, frame)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// WriteFile creates path and writes frame to it.
func WriteFile(path string, f Format, frame Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(file, f, frame); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Caption is the one-line description stamped on rendered images.
func (fr Frame) Caption() string {
	p := fr.Params
	return fmt.Sprintf("galaxy  n=%d  r=%.2f  branches=%d  spin=%.2f  seed=%d",
		p.Count, p.Radius, p.Branches, p.Spin, fr.Seed)
}
