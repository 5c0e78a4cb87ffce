package tracks

import (
	"slices"
	"strings"

	"mkvreorder/internal/language"
)

const (
	defaultAudioLanguage    = "jpn"
	defaultSubtitleLanguage = "eng"
)

// Policy controls classification. Language sets are matched by exact string
// equality against the probed track language.
type Policy struct {
	AudioLanguages    []string
	SubtitleLanguages []string
	PreferredKeywords []string
	ExcludedKeywords  []string
}

// DefaultPolicy selects Japanese audio and English subtitles, preferring
// "full" subtitles and avoiding signs, songs and forced tracks.
func DefaultPolicy() Policy {
	return Policy{
		AudioLanguages:    []string{defaultAudioLanguage},
		SubtitleLanguages: []string{defaultSubtitleLanguage},
		PreferredKeywords: []string{"full"},
		ExcludedKeywords:  []string{"signs", "songs", "forced"},
	}
}

// NewPolicy builds a policy from configured values. Languages are expanded to
// every ISO 639-2 alias (so "de" matches both "deu" and "ger"); keywords are
// lower-cased. Empty inputs fall back to the defaults.
func NewPolicy(audioLanguage, subtitleLanguage string, preferred, excluded []string) Policy {
	p := DefaultPolicy()
	if aliases := language.Aliases(audioLanguage); len(aliases) > 0 {
		p.AudioLanguages = aliases
	}
	if aliases := language.Aliases(subtitleLanguage); len(aliases) > 0 {
		p.SubtitleLanguages = aliases
	}
	if preferred != nil {
		p.PreferredKeywords = normalizeKeywords(preferred)
	}
	if excluded != nil {
		p.ExcludedKeywords = normalizeKeywords(excluded)
	}
	return p
}

func normalizeKeywords(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (p Policy) isAudioLanguage(lang string) bool {
	return lang != "" && slices.Contains(p.AudioLanguages, lang)
}

func (p Policy) isSubtitleLanguage(lang string) bool {
	return lang != "" && slices.Contains(p.SubtitleLanguages, lang)
}

func containsAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
