package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/galaxy/internal/config"
)

// Data is the JSON dump of a frame: the parameters it was generated from and
// the raw buffers, three floats per point.
type Data struct {
	Seed      int64             `json:"seed"`
	Params    config.Parameters `json:"params"`
	RotationY float64           `json:"rotation_y"`
	Count     int               `json:"count"`
	Positions []float32         `json:"positions"`
	Colors    []float32         `json:"colors"`
}

func (fr Frame) data() Data {
	d := Data{
		Seed:      fr.Seed,
		Params:    fr.Params,
		RotationY: fr.RotationY,
	}
	if fr.Buffers != nil {
		d.Count = fr.Buffers.Len()
		d.Positions = fr.Buffers.Positions
		d.Colors = fr.Buffers.Colors
	}
	return d
}

func WriteJSON(w io.Writer, fr Frame) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(fr.data())
}

// WriteCSV writes one row per point in object space: x,y,z,r,g,b.
func WriteCSV(w io.Writer, fr Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "z", "r", "g", "b"}); err != nil {
		return err
	}
	if fr.Buffers != nil {
		row := make([]string, 6)
		for i := 0; i < fr.Buffers.Len(); i++ {
			x, y, z := fr.Buffers.Position(i)
			r, g, b := fr.Buffers.Color(i)
			for j, v := range []float32{x, y, z, r, g, b} {
				row[j] = strconv.FormatFloat(float64(v), 'g', -1, 32)
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
