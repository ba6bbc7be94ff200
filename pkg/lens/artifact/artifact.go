package artifact

import (
	"path"
	"strings"
)

// ArchiveName is the download name of the whole response.
const ArchiveName = "lens_images.zip"

const archiveMimeType = "application/zip"

var imageMimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// Image is one decoded image of the response.
type Image struct {
	Name     string
	MimeType string
	Handle   Handle
}

// ArtifactSet is the decoded response: its images, in archive order, and the archive itself.
type ArtifactSet struct {
	Images  []Image
	Archive Handle
}

// Handles returns every handle of the set, archive last.
func (s *ArtifactSet) Handles() []Handle {
	if s == nil {
		return nil
	}

	res := make([]Handle, 0, len(s.Images)+1)
	for _, img := range s.Images {
		res = append(res, img.Handle)
	}

	if s.Archive != "" {
		res = append(res, s.Archive)
	}

	return res
}

// imageMimeType returns the MIME type of an image entry name, false if the name is not an image.
func imageMimeType(name string) (string, bool) {
	mimeType, ok := imageMimeTypes[strings.ToLower(path.Ext(name))]

	return mimeType, ok
}

// ImageTitle returns the caption of an image: its base name without the .png extension and the lens_
// prefix.
func ImageTitle(name string) string {
	title := path.Base(name)
	title = strings.Replace(title, ".png", "", 1)

	return strings.Replace(title, "lens_", "", 1)
}
