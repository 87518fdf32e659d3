package tmdb

import "strings"

const (
	PosterSize  = "w500"
	ThumbSize   = "w92"
	ProfileSize = "w185"
)

// Images resolves relative image paths against the image CDN.
type Images struct {
	baseURL string
}

func NewImages(baseURL string) Images {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultImageBaseURL
	}
	return Images{baseURL: base}
}

// URL returns "" for a nil or empty path.
func (i Images) URL(size string, path *string) string {
	if path == nil {
		return ""
	}
	p := strings.TrimSpace(*path)
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return i.baseURL + "/" + size + p
}
