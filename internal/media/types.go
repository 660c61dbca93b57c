package media

import "strings"

// Type classifies a media reference for player selection.
type Type int

const (
	TypeVideo Type = iota
	TypeImage
	TypeUnknown
)

var videoExtensions = []string{
	"mp4", "mkv", "webm", "avi", "mov", "m4v", "mpg", "mpeg", "ts",
}

var imageExtensions = []string{
	"jpg", "jpeg", "png", "gif", "webp", "bmp", "svg", "avif", "img",
}

var videoHostPatterns = []string{
	"youtube.com/embed/", "youtube.com/watch", "youtu.be/", "vimeo.com/",
}

// DetectType classifies a URL or local path by extension, falling back to
// known video host patterns for embeddable references without one.
func DetectType(ref string) Type {
	lower := strings.ToLower(ref)

	if ext := extensionOf(lower); ext != "" {
		for _, e := range videoExtensions {
			if ext == e {
				return TypeVideo
			}
		}
		for _, e := range imageExtensions {
			if ext == e {
				return TypeImage
			}
		}
	}

	for _, p := range videoHostPatterns {
		if strings.Contains(lower, p) {
			return TypeVideo
		}
	}

	return TypeUnknown
}

func extensionOf(lower string) string {
	idx := strings.LastIndex(lower, ".")
	if idx == -1 {
		return ""
	}
	ext := lower[idx+1:]
	if q := strings.IndexAny(ext, "?#"); q != -1 {
		ext = ext[:q]
	}
	if strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
