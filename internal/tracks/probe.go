package tracks

import "mkvreorder/internal/mkvmerge"

// FromIdentification converts mkvmerge's probe result into track
// descriptors, preserving container order.
func FromIdentification(id mkvmerge.Identification) ([]Track, error) {
	out := make([]Track, 0, len(id.Tracks))
	for _, t := range id.Tracks {
		props, err := t.DecodeProperties()
		if err != nil {
			return nil, err
		}
		out = append(out, Track{
			ID:       t.ID,
			Kind:     ParseKind(t.Type),
			Language: props.Language,
			Name:     props.TrackName,
		})
	}
	return out, nil
}
