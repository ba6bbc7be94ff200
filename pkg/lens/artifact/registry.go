package artifact

import (
	"bytes"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const handlePrefix = "blob:"

var ErrHandleRevoked = errors.New("handle revoked or unknown")

// Handle is an opaque reference to a registered resource.
type Handle string

// Resource is the content behind a handle.
type Resource struct {
	Name     string
	MimeType string
	Data     []byte
}

// Registry owns the resources behind handles. It is safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	resources map[Handle]Resource
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		resources: make(map[Handle]Resource),
	}
}

// Register stores a copy of data and returns a new handle to it.
func (r *Registry) Register(name, mimeType string, data []byte) Handle {
	h := Handle(handlePrefix + uuid.NewString())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources[h] = Resource{
		Name:     name,
		MimeType: mimeType,
		Data:     bytes.Clone(data),
	}

	return h
}

// Open returns the resource behind h. The returned data must not be modified.
func (r *Registry) Open(h Handle) (Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.resources[h]
	if !ok {
		return Resource{}, errors.Wrapf(ErrHandleRevoked, "%s", h)
	}

	return res, nil
}

// Revoke releases the handles. Unknown and already revoked handles are ignored.
func (r *Registry) Revoke(handles ...Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range handles {
		delete(r.resources, h)
	}
}

// RevokeSet releases every handle of the set. A nil set is ignored.
func (r *Registry) RevokeSet(set *ArtifactSet) {
	if set == nil {
		return
	}

	r.Revoke(set.Handles()...)
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.resources)
}
