package params

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LayerKind tells a physical layer apart from the surrounding air.
type LayerKind int

const (
	// Physical is a user-defined shell of the lens.
	Physical LayerKind = iota
	// Air is the medium around the lens. It is always the last layer.
	Air
)

func (k LayerKind) String() string {
	if k == Air {
		return "air"
	}

	return "physical"
}

// neutral is the value of every air field, and of every field of a freshly inserted layer.
const neutral = 1.0

// Layer is one concentric shell of the lens.
type Layer struct {
	Kind         LayerKind
	Radius       float64
	Dielectric   float64
	Permeability float64
}

// AirLayer returns the fixed outer layer.
func AirLayer() Layer {
	return Layer{
		Kind:         Air,
		Radius:       neutral,
		Dielectric:   neutral,
		Permeability: neutral,
	}
}

// NewLayer returns a physical layer.
func NewLayer(radius, dielectric, permeability float64) Layer {
	return Layer{
		Kind:         Physical,
		Radius:       radius,
		Dielectric:   dielectric,
		Permeability: permeability,
	}
}

func neutralLayer() Layer {
	return NewLayer(neutral, neutral, neutral)
}

// IsAir reports whether the layer is the fixed air layer.
func (l Layer) IsAir() bool {
	return l.Kind == Air
}

// String formats the layer as radius:dielectric:permeability, the form read by ParseLayer.
func (l Layer) String() string {
	return strings.Join([]string{
		strconv.FormatFloat(l.Radius, 'g', -1, 64),
		strconv.FormatFloat(l.Dielectric, 'g', -1, 64),
		strconv.FormatFloat(l.Permeability, 'g', -1, 64),
	}, ":")
}

// ParseLayer reads a physical layer written as radius:dielectric:permeability. Unlike the field setters
// it rejects malformed numbers.
func ParseLayer(s string) (Layer, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Layer{}, errors.Errorf("expected radius:dielectric:permeability, got %d values", len(parts))
	}

	values := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Layer{}, errors.Wrapf(err, "unable to parse %q", part)
		}

		values[i] = v
	}

	return NewLayer(values[0], values[1], values[2]), nil
}

// LayerField names one per-layer value, using the wire name of its array.
type LayerField string

const (
	FieldRadius       LayerField = "norm_radii"
	FieldDielectric   LayerField = "dielectric_constants"
	FieldPermeability LayerField = "magnetic_permeabilities"
)

// with returns a copy of l with field set to value. Unknown fields and air layers are returned as is.
func (l Layer) with(field LayerField, value float64) Layer {
	if l.IsAir() {
		return l
	}

	switch field {
	case FieldRadius:
		l.Radius = value
	case FieldDielectric:
		l.Dielectric = value
	case FieldPermeability:
		l.Permeability = value
	}

	return l
}

func (f LayerField) valid() bool {
	switch f {
	case FieldRadius, FieldDielectric, FieldPermeability:
		return true
	default:
		return false
	}
}
