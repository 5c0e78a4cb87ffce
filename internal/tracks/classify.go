package tracks

import "strings"

// Classify applies DefaultPolicy to the probed tracks.
func Classify(tracks []Track) Decision {
	return DefaultPolicy().Classify(tracks)
}

// Classify partitions tracks by kind and selects the primaries.
//
// The primary audio is the first audio track in a policy audio language. The
// primary subtitle is the first subtitle in a policy subtitle language whose
// lower-cased name contains a preferred keyword; failing that, the first one
// whose name contains no excluded keyword. Either primary may be NoTrack.
func (p Policy) Classify(tracks []Track) Decision {
	d := Decision{
		Video:           []int{},
		Audio:           []int{},
		Subtitles:       []int{},
		PrimaryAudio:    NoTrack,
		PrimarySubtitle: NoTrack,
	}

	for _, t := range tracks {
		switch t.Kind {
		case KindVideo:
			d.Video = append(d.Video, t.ID)
		case KindAudio:
			d.Audio = append(d.Audio, t.ID)
			if d.PrimaryAudio == NoTrack && p.isAudioLanguage(t.Language) {
				d.PrimaryAudio = t.ID
			}
		case KindSubtitles:
			d.Subtitles = append(d.Subtitles, t.ID)
		}
	}

	d.PrimarySubtitle = p.selectSubtitle(tracks)
	return d
}

func (p Policy) selectSubtitle(tracks []Track) int {
	preferred, fallback := NoTrack, NoTrack
	for _, t := range tracks {
		if t.Kind != KindSubtitles || !p.isSubtitleLanguage(t.Language) {
			continue
		}
		name := strings.ToLower(t.Name)
		if containsAny(name, p.PreferredKeywords) {
			preferred = t.ID
			break
		}
		if fallback == NoTrack && !containsAny(name, p.ExcludedKeywords) {
			fallback = t.ID
		}
	}
	if preferred != NoTrack {
		return preferred
	}
	return fallback
}
