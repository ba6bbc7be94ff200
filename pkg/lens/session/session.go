package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/askiada/go-lens/pkg/lens/artifact"
	"github.com/askiada/go-lens/pkg/lens/params"
)

// Transport sends parameters to the rendering service. The body is returned on failure too.
type Transport interface {
	Generate(ctx context.Context, p params.Parameters) ([]byte, error)
}

// Decoder turns a successful body into artifacts and releases them.
type Decoder interface {
	OnSuccess(ctx context.Context, raw []byte) (*artifact.ArtifactSet, error)
	Revoke(set *artifact.ArtifactSet)
}

// Outcome describes how one submission ended.
type Outcome struct {
	Seq       uint64
	State     State
	Artifacts *artifact.ArtifactSet
	Message   string
	// Stale is set when a newer submission, or Close, superseded this one. Its artifacts were released
	// and the session state was left untouched.
	Stale bool
}

// Session is the explicit state of a submission cycle. It is safe for concurrent use.
type Session struct {
	transport Transport
	decoder   Decoder
	logger    *slog.Logger

	mu        sync.Mutex
	params    params.Parameters
	state     State
	seq       uint64
	artifacts *artifact.ArtifactSet
	errMsg    string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithParams sets the initial parameters.
func WithParams(p params.Parameters) Option {
	return func(s *Session) {
		s.params = p
	}
}

// New creates an idle session holding the default parameters.
func New(transport Transport, decoder Decoder, opts ...Option) *Session {
	s := &Session{
		transport: transport,
		decoder:   decoder,
		logger:    slog.Default(),
		params:    params.Default(),
		state:     Idle,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Params returns the current parameters.
func (s *Session) Params() params.Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.params
}

// Update replaces the parameters with fn applied to them. fn is expected to use the Parameters
// operations, which keep the layer invariants.
func (s *Session) Update(fn func(params.Parameters) params.Parameters) params.Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params = fn(s.params)

	return s.params
}

// Submit sends the current parameters and waits for the result.
//
// The previous artifacts and error text are cleared before the request is sent. A submission superseded
// by a newer one, or by Close, while in flight returns a stale outcome and changes nothing.
func (s *Session) Submit(ctx context.Context) Outcome {
	seq, p := s.begin()

	logger := s.logger.With("seq", seq)
	logger.Debug("Submitting parameters", "layers", p.LayerCount())

	var (
		set *artifact.ArtifactSet
		msg string
	)

	raw, err := s.transport.Generate(ctx, p)
	if err != nil {
		msg = artifact.ErrorMessage(raw, err)
	} else {
		set, err = s.decoder.OnSuccess(ctx, raw)
		if err != nil {
			msg = artifact.ErrorMessage(nil, err)
		}
	}

	if err != nil {
		logger.Warn("Submission failed", "error", err, "message", msg)
	}

	return s.complete(seq, set, msg)
}

func (s *Session) begin() (uint64, params.Parameters) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.decoder.Revoke(s.artifacts)
	s.artifacts = nil
	s.errMsg = ""
	s.state = Pending
	s.seq++

	return s.seq, s.params
}

func (s *Session) complete(seq uint64, set *artifact.ArtifactSet, msg string) Outcome {
	state := Succeeded
	if set == nil {
		state = Failed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		s.decoder.Revoke(set)
		s.logger.Debug("Discarding stale result", "seq", seq, "current", s.seq)

		return Outcome{Seq: seq, State: state, Message: msg, Stale: true}
	}

	s.state = state
	s.artifacts = set
	s.errMsg = msg

	return Outcome{Seq: seq, State: state, Artifacts: set, Message: msg}
}

// State returns the stage of the current submission cycle.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Artifacts returns the artifacts of the last successful submission, nil otherwise.
func (s *Session) Artifacts() *artifact.ArtifactSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.artifacts
}

// Err returns the message of the last failed submission, empty otherwise.
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.errMsg
}

// Seq returns the sequence number of the latest submission.
func (s *Session) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.seq
}

// Close releases the current artifacts and returns the session to Idle. Submissions still in flight
// become stale.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.decoder.Revoke(s.artifacts)
	s.artifacts = nil
	s.errMsg = ""
	s.state = Idle
	s.seq++
}
