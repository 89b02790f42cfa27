package lint

import "github.com/felixgeelhaar/codelearn/internal/domain"

// Default editor geometry, in pixels
const (
	DefaultLineHeight   = 24
	DefaultMarkerOffset = 16
)

// Geometry describes how editor lines map to vertical pixel offsets
type Geometry struct {
	LineHeight int `json:"line_height"`
	Offset     int `json:"offset"`
}

// DefaultGeometry returns the editor's default line geometry
func DefaultGeometry() Geometry {
	return Geometry{LineHeight: DefaultLineHeight, Offset: DefaultMarkerOffset}
}

// Marker is a gutter indicator for one diagnostic
type Marker struct {
	Key      string          `json:"key"`
	Top      int             `json:"top"`
	Line     int             `json:"line"`
	Message  string          `json:"message"`
	Severity domain.Severity `json:"severity"`
}

// Top returns the pixel offset of a 1-based line
func (g Geometry) Top(line int) int {
	return (line-1)*g.LineHeight + g.Offset
}

// Markers maps diagnostics to gutter markers
func Markers(diags []domain.Diagnostic, g Geometry) []Marker {
	out := make([]Marker, 0, len(diags))
	for _, d := range diags {
		out = append(out, Marker{
			Key:      d.Key(),
			Top:      g.Top(d.Line),
			Line:     d.Line,
			Message:  d.Message,
			Severity: d.Severity,
		})
	}
	return out
}
