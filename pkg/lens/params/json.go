package params

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// wireParameters is the request body expected by the rendering service.
type wireParameters struct {
	RadiusRatio            int       `json:"radiusRatio"`
	LayersCount            int       `json:"layers_count"`
	NormRadii              []float64 `json:"norm_radii"`
	DielectricConstants    []float64 `json:"dielectric_constants"`
	MagneticPermeabilities []float64 `json:"magnetic_permeabilities"`
	PlotType               PlotType  `json:"plot_type"`
}

// MarshalJSON encodes the parameters as three index-aligned arrays, air value last.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireParameters{
		RadiusRatio:            p.RadiusRatio,
		LayersCount:            p.LayerCount(),
		NormRadii:              p.Values(FieldRadius),
		DielectricConstants:    p.Values(FieldDielectric),
		MagneticPermeabilities: p.Values(FieldPermeability),
		PlotType:               p.PlotType,
	})
}

// UnmarshalJSON decodes the wire format. Every array must hold layers_count values. The last value of
// each array is the air layer and is ignored.
func (p *Parameters) UnmarshalJSON(data []byte) error {
	var wire wireParameters

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return errors.Wrap(err, "unable to decode parameters")
	}

	if wire.LayersCount < MinLayerCount {
		return errors.Wrapf(ErrInvalidLayerCount, "got %d", wire.LayersCount)
	}

	arrays := map[LayerField][]float64{
		FieldRadius:       wire.NormRadii,
		FieldDielectric:   wire.DielectricConstants,
		FieldPermeability: wire.MagneticPermeabilities,
	}
	for name, values := range arrays {
		if len(values) != wire.LayersCount {
			return errors.Errorf("%s has %d values, expected %d", name, len(values), wire.LayersCount)
		}
	}

	if wire.PlotType == "" {
		wire.PlotType = PlotBoth
	}

	layers := make([]Layer, wire.LayersCount-1)
	for i := range layers {
		layers[i] = NewLayer(wire.NormRadii[i], wire.DielectricConstants[i], wire.MagneticPermeabilities[i])
	}

	res, err := New(wire.RadiusRatio, wire.PlotType, layers...)
	if err != nil {
		return err
	}

	*p = res

	return nil
}
