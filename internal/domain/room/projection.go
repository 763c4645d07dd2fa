package room

import (
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ImageList is the stored encoding of a room's images: a JSON array of paths.
type ImageList string

func NewImageList(paths []string) ImageList {
	if paths == nil {
		paths = []string{}
	}
	b, _ := json.Marshal(paths)
	return ImageList(b)
}

func (l ImageList) Paths() ([]string, error) {
	if strings.TrimSpace(string(l)) == "" {
		return nil, nil
	}
	var paths []string
	if err := json.Unmarshal([]byte(l), &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

// SafePaths treats undecodable data as no images.
func (l ImageList) SafePaths() []string {
	paths, err := l.Paths()
	if err != nil {
		return nil
	}
	return paths
}

// Append adds paths after the existing ones. Corrupt stored data is replaced.
func (l ImageList) Append(paths ...string) ImageList {
	return NewImageList(append(l.SafePaths(), paths...))
}

// PrimaryImage returns the first stored image path, or nil when there is none
// or the stored data cannot be decoded.
func PrimaryImage(r Room) *string {
	paths := r.Images.SafePaths()
	if len(paths) == 0 {
		return nil
	}
	p := paths[0]
	return &p
}

type ImageConfig struct {
	MediaBaseURL string
	Placeholder  string
	Fallback     string
}

// DisplayImageURL resolves path against the media base URL, dropping a single
// leading slash from path. nil resolves to the placeholder.
func (c ImageConfig) DisplayImageURL(path *string) string {
	if path == nil || *path == "" {
		return c.Placeholder
	}
	p := *path
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	p = strings.TrimPrefix(p, "/")
	base := strings.TrimSuffix(c.MediaBaseURL, "/")
	return base + "/" + p
}

// FallbackImageURL is substituted when the display image fails to load. It is
// a fixed value and never resolved.
func (c ImageConfig) FallbackImageURL() string {
	return c.Fallback
}

// Initials takes the first letter of each word, uppercased.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

type Badge struct {
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

func StatusBadge(s BookingStatus) Badge {
	switch s {
	case BookingApproved:
		return Badge{Label: "Confirmed", Tone: "success"}
	case BookingPending:
		return Badge{Label: "Pending", Tone: "warning"}
	case BookingRejected:
		return Badge{Label: "Rejected", Tone: "danger"}
	default:
		return Badge{Label: "Unknown", Tone: "neutral"}
	}
}
