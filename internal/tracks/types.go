package tracks

import (
	"fmt"
	"strings"
)

// Kind is the container track category.
type Kind string

const (
	KindVideo     Kind = "video"
	KindAudio     Kind = "audio"
	KindSubtitles Kind = "subtitles"
	KindOther     Kind = "other"
)

// ParseKind maps an mkvmerge track type onto a Kind. Unknown types (buttons,
// for example) become KindOther.
func ParseKind(value string) Kind {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "video":
		return KindVideo
	case "audio":
		return KindAudio
	case "subtitles", "subtitle":
		return KindSubtitles
	default:
		return KindOther
	}
}

// NoTrack marks an absent primary selection.
const NoTrack = -1

// Track describes one track as reported by the metadata probe.
type Track struct {
	ID       int    `json:"id"`
	Kind     Kind   `json:"kind"`
	Language string `json:"language,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Decision is the per-file track selection. Lists keep the original order.
type Decision struct {
	Video           []int `json:"video"`
	Audio           []int `json:"audio"`
	Subtitles       []int `json:"subtitles"`
	PrimaryAudio    int   `json:"primary_audio"`
	PrimarySubtitle int   `json:"primary_subtitle"`
}

// HasPrimarySubtitle reports whether a primary subtitle was selected.
func (d Decision) HasPrimarySubtitle() bool {
	return d.PrimarySubtitle != NoTrack
}

// Flag assigns the default-track and forced-display flags of one track.
type Flag struct {
	TrackID int  `json:"track_id"`
	Enabled bool `json:"enabled"`
}

// Plan is the flag assignment and global track order for one mux.
type Plan struct {
	Flags []Flag `json:"flags"`
	Order []int  `json:"order"`
}

// TrackOrder renders the order as mkvmerge's --track-order value. Every
// entry refers to source file 0.
func (p Plan) TrackOrder() string {
	parts := make([]string, len(p.Order))
	for i, id := range p.Order {
		parts[i] = fmt.Sprintf("0:%d", id)
	}
	return strings.Join(parts, ",")
}
