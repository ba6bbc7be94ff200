// Command lensrender submits a lens model to the rendering service and writes the generated images.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"

	"github.com/askiada/go-lens/internal/config"
	"github.com/askiada/go-lens/internal/logging"
	"github.com/askiada/go-lens/pkg/lens/artifact"
	"github.com/askiada/go-lens/pkg/lens/params"
	"github.com/askiada/go-lens/pkg/lens/session"
	"github.com/askiada/go-lens/pkg/lens/transport"
	"github.com/askiada/go-lens/pkg/pipeline/drawer"
	"github.com/askiada/go-lens/pkg/pipeline/measure"
	"github.com/askiada/go-lens/pkg/pipeline/model"
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Stdout)
	if err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	applyFlags(cfg)

	err = cfg.Validate()
	if err != nil {
		return err
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	p, err := buildParams()
	if err != nil {
		return err
	}

	if *printFlag {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(p)
	}

	registry := artifact.NewRegistry()

	decoderOpts := []artifact.Option{
		artifact.WithConcurrency(cfg.DecodeConcurrency),
		artifact.WithLogger(logging.Logger),
	}
	if *traceFlag != "" {
		decoderOpts = append(decoderOpts, artifact.WithPipelineOptions(traceOptions(*traceFlag)))
	}

	client := transport.NewClient(
		transport.WithEndpoint(cfg.Endpoint),
		transport.WithTimeout(cfg.Timeout),
		transport.WithLogger(logging.Logger),
	)

	sess := session.New(client, artifact.NewDecoder(registry, decoderOpts...),
		session.WithParams(p),
		session.WithLogger(logging.Logger),
	)
	defer sess.Close()

	logging.Logger.Info("Submitting lens model",
		"endpoint", cfg.Endpoint,
		"layers", p.LayerCount(),
		"radiusRatio", p.RadiusRatio,
		"plotType", p.PlotType,
	)

	out := sess.Submit(ctx)
	if out.State != session.Succeeded {
		return errors.New(out.Message)
	}

	return writeArtifacts(registry, out.Artifacts, *outFlag, stdout)
}

// applyFlags overrides the configuration with the flags set on the command line.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "endpoint":
			cfg.Endpoint = *endpointFlag
		case "timeout":
			cfg.Timeout = *timeoutFlag
		case "concurrency":
			cfg.DecodeConcurrency = *concurrencyFlag
		}
	})
}

func buildParams() (params.Parameters, error) {
	p := params.Default()

	if *paramsFlag != "" {
		raw, err := os.ReadFile(*paramsFlag)
		if err != nil {
			return p, errors.Wrapf(err, "unable to read %s", *paramsFlag)
		}

		err = json.Unmarshal(raw, &p)
		if err != nil {
			return p, errors.Wrapf(err, "unable to decode %s", *paramsFlag)
		}
	}

	if *plotTypeFlag != "" {
		if _, err := params.ParsePlotType(*plotTypeFlag); err != nil {
			return p, err
		}
	}

	if len(layersFlag) > 0 {
		var err error

		p, err = params.New(p.RadiusRatio, p.PlotType, layersFlag...)
		if err != nil {
			return p, errors.Wrap(err, "invalid layers")
		}
	}

	if *radiusRatioFlag != "" {
		p = p.SetScalar(params.FieldRadiusRatio, *radiusRatioFlag)
	}

	if *plotTypeFlag != "" {
		p = p.SetScalar(params.FieldPlotType, *plotTypeFlag)
	}

	for range *addLayersFlag {
		p = p.AddLayer()
	}

	for range *removeLayersFlag {
		p = p.RemoveLayer()
	}

	return p, nil
}

// traceOptions measures every decode pipeline and draws it to fileName. Each decode overwrites the file.
func traceOptions(fileName string) artifact.PipelineOptionsFunc {
	return func() []model.PipelineOption {
		m := measure.NewDefaultMeasure()

		return []model.PipelineOption{
			measure.PipelineMeasure(m),
			drawer.PipelineDrawer(drawer.NewDOTDrawer(fileName), m),
		}
	}
}

func writeArtifacts(registry *artifact.Registry, set *artifact.ArtifactSet, dir string, stdout io.Writer) error {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", dir)
	}

	for _, img := range set.Images {
		dst, err := writeResource(registry, img.Handle, dir)
		if err != nil {
			return err
		}

		fmt.Fprintf(stdout, "%s\t%s\n", dst, artifact.ImageTitle(img.Name))
	}

	dst, err := writeResource(registry, set.Archive, dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s\tarchive\n", dst)

	slog.Info("Artifacts written", "images", len(set.Images), "dir", dir)

	return nil
}

func writeResource(registry *artifact.Registry, h artifact.Handle, dir string) (string, error) {
	res, err := registry.Open(h)
	if err != nil {
		return "", errors.Wrapf(err, "unable to open %s", h)
	}

	// archive entries may carry directories, only the base name is kept
	dst := filepath.Join(dir, filepath.Base(res.Name))

	err = os.WriteFile(dst, res.Data, 0o644) //nolint:gosec
	if err != nil {
		return "", errors.Wrapf(err, "unable to write %s", dst)
	}

	return dst, nil
}
