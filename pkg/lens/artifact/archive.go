package artifact

import (
	"archive/zip"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// Entry is one file of an archive.
type Entry struct {
	Name  string
	IsDir bool
	Open  func() (io.ReadCloser, error)
}

// Archive lists the entries of a container, in their stored order.
type Archive interface {
	Entries() []Entry
}

// OpenFunc opens raw bytes as an archive.
type OpenFunc func(raw []byte) (Archive, error)

type zipArchive struct {
	reader *zip.Reader
}

// OpenZip opens raw as a zip archive.
func OpenZip(raw []byte) (Archive, error) {
	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, errors.Wrap(err, "unable to read zip")
	}

	return &zipArchive{reader: reader}, nil
}

func (a *zipArchive) Entries() []Entry {
	res := make([]Entry, len(a.reader.File))
	for i, f := range a.reader.File {
		res[i] = Entry{
			Name:  f.Name,
			IsDir: f.FileInfo().IsDir(),
			Open:  f.Open,
		}
	}

	return res
}
