package artifact

import (
	"context"
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/askiada/go-lens/pkg/pipeline"
	"github.com/askiada/go-lens/pkg/pipeline/model"
)

// DefaultConcurrency is the number of entries read at the same time.
const DefaultConcurrency = 4

// PipelineOptionsFunc returns fresh pipeline options for one decode. Options such as the drawer keep
// per-run state and cannot be shared between runs.
type PipelineOptionsFunc func() []model.PipelineOption

// Decoder turns successful responses into artifact sets registered in its registry.
type Decoder struct {
	registry    *Registry
	openArchive OpenFunc
	concurrency int
	pipeOpts    PipelineOptionsFunc
	logger      *slog.Logger
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithConcurrency sets how many entries are read at the same time.
func WithConcurrency(concurrency int) Option {
	return func(d *Decoder) {
		d.concurrency = concurrency
	}
}

// WithArchiveOpener replaces the zip reader.
func WithArchiveOpener(open OpenFunc) Option {
	return func(d *Decoder) {
		d.openArchive = open
	}
}

// WithPipelineOptions attaches options, such as measure or drawer, to every decode pipeline.
func WithPipelineOptions(fn PipelineOptionsFunc) Option {
	return func(d *Decoder) {
		d.pipeOpts = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// NewDecoder creates a decoder registering its resources in registry.
func NewDecoder(registry *Registry, opts ...Option) *Decoder {
	d := &Decoder{
		registry:    registry,
		openArchive: OpenZip,
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.concurrency < 1 {
		d.concurrency = 1
	}

	return d
}

// Registry returns the registry owning the decoded resources.
func (d *Decoder) Registry() *Registry {
	return d.registry
}

type indexedEntry struct {
	index    int
	mimeType string
	entry    Entry
}

type decodedImage struct {
	index    int
	name     string
	mimeType string
	data     []byte
}

// OnSuccess decodes a successful response. Image entries (.png, .jpg, .jpeg, any case) become images,
// other entries are skipped. The whole raw response is registered as the archive.
// Nothing is registered when any entry fails.
func (d *Decoder) OnSuccess(ctx context.Context, raw []byte) (*ArtifactSet, error) {
	archive, err := d.openArchive(raw)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open archive")
	}

	entries := imageEntries(archive.Entries())

	images, err := d.decode(ctx, entries)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode archive entries")
	}

	set := &ArtifactSet{
		Images: make([]Image, 0, len(images)),
	}
	for _, img := range images {
		set.Images = append(set.Images, Image{
			Name:     img.name,
			MimeType: img.mimeType,
			Handle:   d.registry.Register(img.name, img.mimeType, img.data),
		})
	}
	set.Archive = d.registry.Register(ArchiveName, archiveMimeType, raw)

	d.logger.Debug("Decoded response archive", "images", len(set.Images), "bytes", len(raw))

	return set, nil
}

// Revoke releases every handle of the set.
func (d *Decoder) Revoke(set *ArtifactSet) {
	d.registry.RevokeSet(set)
}

func imageEntries(entries []Entry) []indexedEntry {
	res := make([]indexedEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir {
			continue
		}

		mimeType, ok := imageMimeType(e.Name)
		if !ok {
			continue
		}

		res = append(res, indexedEntry{index: len(res), mimeType: mimeType, entry: e})
	}

	return res
}

func (d *Decoder) decode(ctx context.Context, entries []indexedEntry) ([]decodedImage, error) {
	var opts []model.PipelineOption
	if d.pipeOpts != nil {
		opts = d.pipeOpts()
	}

	pipe, err := pipeline.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create pipeline")
	}

	entryStep, err := pipeline.AddRootStep(pipe, "entries", func(ctx context.Context, rootChan chan<- indexedEntry) error {
		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case rootChan <- e:
			}
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add entries step")
	}

	readStep, err := pipeline.AddStepOneToOne(pipe, "read", entryStep, readEntry, pipeline.StepConcurrency(d.concurrency))
	if err != nil {
		return nil, errors.Wrap(err, "unable to add read step")
	}

	images := make([]decodedImage, len(entries))

	err = pipeline.AddSink(pipe, "collect", readStep, func(_ context.Context, img decodedImage) error {
		images[img.index] = img

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add collect sink")
	}

	err = pipe.Run()
	if err != nil {
		return nil, err
	}

	return images, nil
}

func readEntry(_ context.Context, e indexedEntry) (decodedImage, error) {
	rc, err := e.entry.Open()
	if err != nil {
		return decodedImage{}, errors.Wrapf(err, "unable to open %s", e.entry.Name)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return decodedImage{}, errors.Wrapf(err, "unable to read %s", e.entry.Name)
	}

	return decodedImage{
		index:    e.index,
		name:     e.entry.Name,
		mimeType: e.mimeType,
		data:     data,
	}, nil
}
