package services

import "strings"

// ImageRoute is where locally stored screenshots are served from
const ImageRoute = "/api/images/"

// MediaResolver turns stored screenshot references into URLs a browser can load
type MediaResolver struct {
	base string
}

func NewMediaResolver(base string) MediaResolver {
	return MediaResolver{base: base}
}

// Resolve leaves empty and absolute references untouched. Relative references
// are served by the image route when the base is a local path, otherwise they
// are joined onto the remote base.
func (m MediaResolver) Resolve(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if m.base == "" || strings.HasPrefix(m.base, "/") {
		return ImageRoute + strings.TrimLeft(ref, "/")
	}
	return strings.TrimRight(m.base, "/") + "/" + strings.TrimLeft(ref, "/")
}
