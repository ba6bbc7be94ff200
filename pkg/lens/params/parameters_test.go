package params_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-lens/pkg/lens/params"
)

var allFields = []params.LayerField{params.FieldRadius, params.FieldDielectric, params.FieldPermeability}

func assertInvariants(t *testing.T, p params.Parameters) {
	t.Helper()

	require.GreaterOrEqual(t, p.LayerCount(), params.MinLayerCount)

	for _, field := range allFields {
		values := p.Values(field)
		require.Len(t, values, p.LayerCount(), field)
		assert.Equal(t, 1.0, values[len(values)-1], field)
	}

	layers := p.Layers()
	require.Len(t, layers, p.LayerCount())
	assert.True(t, layers[len(layers)-1].IsAir())
	for _, l := range layers[:len(layers)-1] {
		assert.False(t, l.IsAir())
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	p := params.Default()
	assertInvariants(t, p)
	assert.Equal(t, 10, p.RadiusRatio)
	assert.Equal(t, params.PlotBoth, p.PlotType)
	assert.Equal(t, 5, p.LayerCount())
	assert.Equal(t, []float64{0.2, 0.4, 0.6, 0.8, 1}, p.Values(params.FieldRadius))
	assert.Equal(t, []float64{1.96, 1.84, 1.64, 1.36, 1}, p.Values(params.FieldDielectric))
	assert.Equal(t, []float64{1, 1, 1, 1, 1}, p.Values(params.FieldPermeability))
}

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		plotType  params.PlotType
		layers    []params.Layer
		wantCount int
		wantErr   error
	}{
		"one physical layer": {
			plotType:  params.PlotLine,
			layers:    []params.Layer{params.NewLayer(0.5, 2, 1)},
			wantCount: 2,
		},
		"trailing air is dropped": {
			plotType:  params.PlotPolar,
			layers:    []params.Layer{params.NewLayer(0.5, 2, 1), params.AirLayer()},
			wantCount: 2,
		},
		"no layers": {
			plotType: params.PlotBoth,
			wantErr:  params.ErrInvalidLayerCount,
		},
		"only air": {
			plotType: params.PlotBoth,
			layers:   []params.Layer{params.AirLayer()},
			wantErr:  params.ErrInvalidLayerCount,
		},
		"air in the middle": {
			plotType: params.PlotBoth,
			layers:   []params.Layer{params.AirLayer(), params.NewLayer(0.5, 2, 1)},
			wantErr:  params.ErrAirLayer,
		},
		"unknown plot type": {
			plotType: "scatter",
			layers:   []params.Layer{params.NewLayer(0.5, 2, 1)},
			wantErr:  params.ErrInvalidPlotType,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := params.New(3, tc.plotType, tc.layers...)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assertInvariants(t, got)
			assert.Equal(t, tc.wantCount, got.LayerCount())
			assert.Equal(t, 3, got.RadiusRatio)
		})
	}
}

func TestSetScalar(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		field        params.ScalarField
		value        string
		wantRatio    int
		wantPlotType params.PlotType
	}{
		"ratio":                  {field: params.FieldRadiusRatio, value: "25", wantRatio: 25, wantPlotType: params.PlotBoth},
		"ratio with suffix":      {field: params.FieldRadiusRatio, value: "12px", wantRatio: 12, wantPlotType: params.PlotBoth},
		"ratio decimal":          {field: params.FieldRadiusRatio, value: "3.9", wantRatio: 3, wantPlotType: params.PlotBoth},
		"ratio empty":            {field: params.FieldRadiusRatio, value: "", wantRatio: 0, wantPlotType: params.PlotBoth},
		"ratio garbage":          {field: params.FieldRadiusRatio, value: "abc", wantRatio: 0, wantPlotType: params.PlotBoth},
		"plot type":              {field: params.FieldPlotType, value: "polar", wantRatio: 10, wantPlotType: params.PlotPolar},
		"unknown plot type":      {field: params.FieldPlotType, value: "scatter", wantRatio: 10, wantPlotType: params.PlotBoth},
		"unknown field":          {field: "layers_count", value: "8", wantRatio: 10, wantPlotType: params.PlotBoth},
		"negative ratio is kept": {field: params.FieldRadiusRatio, value: "-4", wantRatio: -4, wantPlotType: params.PlotBoth},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			orig := params.Default()
			got := orig.SetScalar(tc.field, tc.value)

			assert.Equal(t, tc.wantRatio, got.RadiusRatio)
			assert.Equal(t, tc.wantPlotType, got.PlotType)
			assert.Equal(t, 5, got.LayerCount())
			assert.Equal(t, params.Default(), orig)
		})
	}
}

func TestSetLayerField(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		field params.LayerField
		index int
		value string
		want  []float64
	}{
		"first radius": {
			field: params.FieldRadius, index: 0, value: "0.1",
			want: []float64{0.1, 0.4, 0.6, 0.8, 1},
		},
		"last physical dielectric": {
			field: params.FieldDielectric, index: 3, value: "2.5",
			want: []float64{1.96, 1.84, 1.64, 2.5, 1},
		},
		"invalid value is zero": {
			field: params.FieldPermeability, index: 1, value: "oops",
			want: []float64{1, 0, 1, 1, 1},
		},
		"infinite value is zero": {
			field: params.FieldPermeability, index: 2, value: "1e999",
			want: []float64{1, 1, 0, 1, 1},
		},
		"air index is read only": {
			field: params.FieldRadius, index: 4, value: "0.5",
			want: []float64{0.2, 0.4, 0.6, 0.8, 1},
		},
		"negative index": {
			field: params.FieldRadius, index: -1, value: "0.5",
			want: []float64{0.2, 0.4, 0.6, 0.8, 1},
		},
		"out of range": {
			field: params.FieldDielectric, index: 12, value: "9",
			want: []float64{1.96, 1.84, 1.64, 1.36, 1},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			orig := params.Default()
			got := orig.SetLayerField(tc.field, tc.index, tc.value)

			assertInvariants(t, got)
			assert.Equal(t, tc.want, got.Values(tc.field))
			assert.Equal(t, params.Default(), orig)
		})
	}
}

func TestSetLayerFieldAirNeverChanges(t *testing.T) {
	t.Parallel()

	p := params.Default().AddLayer().AddLayer()
	for _, field := range allFields {
		for _, value := range []string{"0", "0.5", "7", "", "x", "-1"} {
			got := p.SetLayerField(field, p.AirIndex(), value)
			assert.Equal(t, p, got)

			air, ok := got.Layer(got.AirIndex())
			require.True(t, ok)
			assert.Equal(t, params.AirLayer(), air)
		}
	}
}

func TestSetLayerFieldUnknownField(t *testing.T) {
	t.Parallel()

	p := params.Default()
	assert.Equal(t, p, p.SetLayerField("thickness", 0, "3"))
}

func TestAddLayer(t *testing.T) {
	t.Parallel()

	orig := params.Default()
	got := orig.AddLayer()

	assertInvariants(t, got)
	assert.Equal(t, 6, got.LayerCount())
	assert.Equal(t, []float64{0.2, 0.4, 0.6, 0.8, 1, 1}, got.Values(params.FieldRadius))
	assert.Equal(t, []float64{1.96, 1.84, 1.64, 1.36, 1, 1}, got.Values(params.FieldDielectric))
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1}, got.Values(params.FieldPermeability))
	assert.Equal(t, 5, orig.LayerCount())

	inserted, ok := got.Layer(4)
	require.True(t, ok)
	assert.Equal(t, params.NewLayer(1, 1, 1), inserted)
}

func TestRemoveLayer(t *testing.T) {
	t.Parallel()

	got := params.Default().RemoveLayer()

	assertInvariants(t, got)
	assert.Equal(t, 4, got.LayerCount())
	assert.Equal(t, []float64{0.2, 0.4, 0.6, 1}, got.Values(params.FieldRadius))
	assert.Equal(t, []float64{1.96, 1.84, 1.64, 1}, got.Values(params.FieldDielectric))
}

func TestRemoveLayerFloor(t *testing.T) {
	t.Parallel()

	p := params.Default()
	for p.LayerCount() > params.MinLayerCount {
		p = p.RemoveLayer()
		assertInvariants(t, p)
	}

	require.Equal(t, 2, p.LayerCount())
	assert.Equal(t, p, p.RemoveLayer())
	assert.Equal(t, []float64{0.2, 1}, p.Values(params.FieldRadius))
}

func TestAddRemoveRoundTrip(t *testing.T) {
	t.Parallel()

	start := params.Default().
		SetLayerField(params.FieldRadius, 1, "0.33").
		SetLayerField(params.FieldDielectric, 3, "4.2")

	for i := 0; i < 4; i++ {
		got := start.AddLayer().RemoveLayer()
		assert.Equal(t, start, got)
		start = start.RemoveLayer()
	}
}

func TestLayerSequence(t *testing.T) {
	t.Parallel()

	p := params.Default()
	p = p.AddLayer()
	p = p.SetLayerField(params.FieldDielectric, 4, "1.2")
	p = p.AddLayer()
	p = p.SetLayerField(params.FieldDielectric, 5, "1.1")
	p = p.AddLayer()
	p = p.RemoveLayer()

	assertInvariants(t, p)
	assert.Equal(t, 7, p.LayerCount())
	assert.Equal(t, []float64{1.96, 1.84, 1.64, 1.36, 1.2, 1.1, 1}, p.Values(params.FieldDielectric))
	assert.Equal(t, []float64{0.2, 0.4, 0.6, 0.8, 1, 1, 1}, p.Values(params.FieldRadius))
}

func TestLayer(t *testing.T) {
	t.Parallel()

	p := params.Default()

	l, ok := p.Layer(0)
	require.True(t, ok)
	assert.Equal(t, params.NewLayer(0.2, 1.96, 1), l)

	l, ok = p.Layer(4)
	require.True(t, ok)
	assert.True(t, l.IsAir())

	_, ok = p.Layer(5)
	assert.False(t, ok)
	_, ok = p.Layer(-1)
	assert.False(t, ok)
}

func TestLayersIsACopy(t *testing.T) {
	t.Parallel()

	p := params.Default()
	layers := p.Layers()
	layers[0].Radius = 42
	layers[len(layers)-1].Radius = 42

	assert.Equal(t, params.Default(), p)
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	got, err := json.Marshal(params.Default())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"radiusRatio": 10,
		"layers_count": 5,
		"norm_radii": [0.2, 0.4, 0.6, 0.8, 1],
		"dielectric_constants": [1.96, 1.84, 1.64, 1.36, 1],
		"magnetic_permeabilities": [1, 1, 1, 1, 1],
		"plot_type": "both"
	}`, string(got))
}

func TestUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		body    string
		want    []float64
		wantErr bool
	}{
		"valid": {
			body: `{"radiusRatio":4,"layers_count":3,"norm_radii":[0.3,0.7,1],` +
				`"dielectric_constants":[2,1.5,1],"magnetic_permeabilities":[1,1,1],"plot_type":"line"}`,
			want: []float64{2, 1.5, 1},
		},
		"air values are forced": {
			body: `{"radiusRatio":4,"layers_count":2,"norm_radii":[0.3,0.9],` +
				`"dielectric_constants":[2,5],"magnetic_permeabilities":[1,3],"plot_type":"line"}`,
			want: []float64{2, 1},
		},
		"length mismatch": {
			body: `{"radiusRatio":4,"layers_count":3,"norm_radii":[0.3,1],` +
				`"dielectric_constants":[2,1.5,1],"magnetic_permeabilities":[1,1,1]}`,
			wantErr: true,
		},
		"count below floor": {
			body: `{"radiusRatio":4,"layers_count":1,"norm_radii":[1],` +
				`"dielectric_constants":[1],"magnetic_permeabilities":[1]}`,
			wantErr: true,
		},
		"bad plot type": {
			body: `{"radiusRatio":4,"layers_count":2,"norm_radii":[0.5,1],` +
				`"dielectric_constants":[2,1],"magnetic_permeabilities":[1,1],"plot_type":"bars"}`,
			wantErr: true,
		},
		"not json": {
			body:    `radius`,
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var got params.Parameters

			err := json.Unmarshal([]byte(tc.body), &got)
			if tc.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assertInvariants(t, got)
			assert.Equal(t, tc.want, got.Values(params.FieldDielectric))
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	orig := params.Default().AddLayer().SetLayerField(params.FieldRadius, 4, "0.9").SetScalar(params.FieldPlotType, "polar")

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var got params.Parameters
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, orig, got)
}
