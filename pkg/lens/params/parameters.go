package params

import (
	"github.com/pkg/errors"
)

// MinLayerCount is the smallest stack: one physical layer and the air layer.
const MinLayerCount = 2

var (
	ErrInvalidLayerCount = errors.New("layer count must be at least 2")
	ErrInvalidPlotType   = errors.New("unknown plot type")
	ErrAirLayer          = errors.New("air layer must be the last layer")
)

// PlotType selects which plots the service renders.
type PlotType string

const (
	PlotBoth  PlotType = "both"
	PlotLine  PlotType = "line"
	PlotPolar PlotType = "polar"
)

// ParsePlotType returns the plot type named by s.
func ParsePlotType(s string) (PlotType, error) {
	switch pt := PlotType(s); pt {
	case PlotBoth, PlotLine, PlotPolar:
		return pt, nil
	default:
		return "", errors.Wrapf(ErrInvalidPlotType, "%q", s)
	}
}

// ScalarField names a non-layer field, using its wire name.
type ScalarField string

const (
	FieldRadiusRatio ScalarField = "radiusRatio"
	FieldPlotType    ScalarField = "plot_type"
)

// Parameters is the payload sent to the rendering service.
type Parameters struct {
	RadiusRatio int
	PlotType    PlotType

	// physical layers, innermost first. The air layer is implicit.
	layers []Layer
}

// Default returns the initial five layer lens.
func Default() Parameters {
	return Parameters{
		RadiusRatio: 10,
		PlotType:    PlotBoth,
		layers: []Layer{
			NewLayer(0.2, 1.96, 1),
			NewLayer(0.4, 1.84, 1),
			NewLayer(0.6, 1.64, 1),
			NewLayer(0.8, 1.36, 1),
		},
	}
}

// New builds parameters from physical layers, innermost first. A trailing air layer is accepted and
// dropped; an air layer anywhere else is an error.
func New(radiusRatio int, plotType PlotType, layers ...Layer) (Parameters, error) {
	if _, err := ParsePlotType(string(plotType)); err != nil {
		return Parameters{}, err
	}

	if n := len(layers); n > 0 && layers[n-1].IsAir() {
		layers = layers[:n-1]
	}

	physical := make([]Layer, len(layers))
	for i, l := range layers {
		if l.IsAir() {
			return Parameters{}, errors.Wrapf(ErrAirLayer, "layer %d", i)
		}
		physical[i] = l
	}

	if len(physical)+1 < MinLayerCount {
		return Parameters{}, ErrInvalidLayerCount
	}

	return Parameters{
		RadiusRatio: radiusRatio,
		PlotType:    plotType,
		layers:      physical,
	}, nil
}

// LayerCount returns the number of layers, air included.
func (p Parameters) LayerCount() int {
	return len(p.layers) + 1
}

// AirIndex returns the index of the air layer.
func (p Parameters) AirIndex() int {
	return len(p.layers)
}

// Layers returns a copy of every layer, air last.
func (p Parameters) Layers() []Layer {
	res := make([]Layer, 0, p.LayerCount())
	res = append(res, p.layers...)

	return append(res, AirLayer())
}

// Layer returns the layer at index i. The air index returns AirLayer.
func (p Parameters) Layer(i int) (Layer, bool) {
	switch {
	case i < 0 || i > p.AirIndex():
		return Layer{}, false
	case i == p.AirIndex():
		return AirLayer(), true
	default:
		return p.layers[i], true
	}
}

// Values returns one per-layer array as sent on the wire, air value last.
func (p Parameters) Values(field LayerField) []float64 {
	res := make([]float64, 0, p.LayerCount())
	for _, l := range p.Layers() {
		switch field {
		case FieldRadius:
			res = append(res, l.Radius)
		case FieldDielectric:
			res = append(res, l.Dielectric)
		case FieldPermeability:
			res = append(res, l.Permeability)
		}
	}

	return res
}

// SetScalar sets radiusRatio or plot_type from user input. An unparseable ratio becomes 0; an unknown
// plot type or field leaves the parameters unchanged.
func (p Parameters) SetScalar(field ScalarField, value string) Parameters {
	res := p.clone()

	switch field {
	case FieldRadiusRatio:
		res.RadiusRatio = parseInt(value)
	case FieldPlotType:
		pt, err := ParsePlotType(value)
		if err != nil {
			return res
		}
		res.PlotType = pt
	}

	return res
}

// SetLayerField sets one value of a physical layer from user input. The air index, out of range indexes
// and unknown fields leave the parameters unchanged. An unparseable value becomes 0.
func (p Parameters) SetLayerField(field LayerField, index int, value string) Parameters {
	res := p.clone()
	if !field.valid() || index < 0 || index >= len(res.layers) {
		return res
	}

	res.layers[index] = res.layers[index].with(field, parseFloat(value))

	return res
}

// AddLayer inserts a neutral layer right before the air layer.
func (p Parameters) AddLayer() Parameters {
	res := p.clone()
	res.layers = append(res.layers, neutralLayer())

	return res
}

// RemoveLayer drops the outermost physical layer. It does nothing at MinLayerCount.
func (p Parameters) RemoveLayer() Parameters {
	res := p.clone()
	if res.LayerCount() <= MinLayerCount {
		return res
	}

	res.layers = res.layers[:len(res.layers)-1]

	return res
}

func (p Parameters) clone() Parameters {
	res := p
	res.layers = make([]Layer, len(p.layers))
	copy(res.layers, p.layers)

	return res
}
