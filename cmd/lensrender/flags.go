package main

import (
	"flag"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-lens/pkg/lens/params"
)

// Command-line flags. Flags left unset fall back to the environment configuration, then to the
// defaults of the parameter model.
var (
	// paramsFlag points to a JSON payload in the wire format used as the starting parameters.
	paramsFlag = flag.String("params", "", "JSON file with the starting parameters (wire format)")

	radiusRatioFlag = flag.String("radius-ratio", "", "ratio between the outer and the inner radius")
	plotTypeFlag    = flag.String("plot-type", "", "plots to render: both, line or polar")

	// addLayersFlag and removeLayersFlag resize the model after the layers are set.
	addLayersFlag    = flag.Int("add-layers", 0, "number of neutral layers to insert before the air layer")
	removeLayersFlag = flag.Int("remove-layers", 0, "number of layers to remove, stops at two layers")

	outFlag   = flag.String("out", ".", "directory receiving the images and the archive")
	printFlag = flag.Bool("print", false, "print the request payload and exit")
	traceFlag = flag.String("trace", "", "write the decode pipeline graph to this DOT file")

	endpointFlag    = flag.String("endpoint", "", "rendering service URL (overrides LENS_ENDPOINT)")
	timeoutFlag     = flag.Duration("timeout", 0, "request timeout (overrides LENS_TIMEOUT)")
	concurrencyFlag = flag.Int("concurrency", 0, "archive entries decoded at the same time (overrides DECODE_CONCURRENCY)")

	layersFlag layerList
)

func init() {
	flag.Var(&layersFlag, "layer", "physical layer as radius:dielectric:permeability, repeat for each layer from the core out")
}

// layerList collects the repeated -layer flag.
type layerList []params.Layer

func (l *layerList) String() string {
	if l == nil {
		return ""
	}

	parts := make([]string, len(*l))
	for i, layer := range *l {
		parts[i] = layer.String()
	}

	return strings.Join(parts, ",")
}

func (l *layerList) Set(value string) error {
	layer, err := params.ParseLayer(value)
	if err != nil {
		return errors.Wrapf(err, "invalid layer %q", value)
	}

	*l = append(*l, layer)

	return nil
}
