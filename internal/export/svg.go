package export

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/san-kum/galaxy/internal/config"
)

// WriteSVG draws one circle per visible point. Circles blend with
// mix-blend-mode: screen, the closest SVG gets to additive blending.
func WriteSVG(w io.Writer, fr Frame) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<style>circle{mix-blend-mode:screen}</style>
<rect width="100%%" height="100%%" fill="#000000"/>
<g>
`, fr.Width, fr.Height, fr.Width, fr.Height)

	for _, s := range fr.sprites() {
		c := config.Color{R: s.r, G: s.g, B: s.b}
		fmt.Fprintf(bw, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s"/>
`, s.x, s.y, s.radius, c.Hex())
	}

	fmt.Fprintf(bw, `</g>
<text x="8" y="%d" font-family="monospace" font-size="12" fill="#8c8c8c">%s</text>
</svg>
`, fr.Height-8, html.EscapeString(fr.Caption()))
	return bw.Flush()
}
