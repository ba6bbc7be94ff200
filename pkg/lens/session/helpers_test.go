package session_test

import (
	"archive/zip"
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-lens/pkg/lens/params"
)

func buildZip(t *testing.T, names ...string) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)

	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)

		_, err = w.Write([]byte("content of " + name))
		require.NoError(t, err)
	}

	require.NoError(t, zw.Close())

	return buf.Bytes()
}

type response struct {
	body []byte
	err  error
}

// fakeTransport answers calls in order with the queued responses. A call blocks until its gate, if any,
// is closed.
type fakeTransport struct {
	mu        sync.Mutex
	responses []response
	gates     []chan struct{}
	calls     []params.Parameters
	called    chan int
}

func newFakeTransport(responses ...response) *fakeTransport {
	return &fakeTransport{
		responses: responses,
		gates:     make([]chan struct{}, len(responses)),
		called:    make(chan int, len(responses)),
	}
}

func (f *fakeTransport) gate(call int) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gates[call] = make(chan struct{})

	return f.gates[call]
}

func (f *fakeTransport) Generate(ctx context.Context, p params.Parameters) ([]byte, error) {
	f.mu.Lock()
	call := len(f.calls)
	f.calls = append(f.calls, p)
	res := f.responses[call]
	gate := f.gates[call]
	f.mu.Unlock()

	f.called <- call

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return res.body, res.err
}
