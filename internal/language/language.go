package language

import (
	"strings"
	"sync"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// bibliographic maps ISO 639-2/B codes, which older Matroska muxers write, to
// the 639-2/T form the CLDR registry uses.
var bibliographic = map[string]string{
	"alb": "sqi", "arm": "hye", "baq": "eus", "bur": "mya", "chi": "zho",
	"cze": "ces", "dut": "nld", "fre": "fra", "geo": "kat", "ger": "deu",
	"gre": "ell", "ice": "isl", "mac": "mkd", "mao": "mri", "may": "msa",
	"per": "fas", "rum": "ron", "slo": "slk", "tib": "bod", "wel": "cym",
}

// wordBases lists languages whose English names are accepted in place of a
// code, as in audio_language = "japanese".
var wordBases = []string{
	"ar", "cs", "da", "de", "el", "en", "es", "fa", "fi", "fr", "he", "hi",
	"hu", "id", "it", "ja", "ko", "nl", "no", "pl", "pt", "ro", "ru", "sk",
	"sv", "th", "tr", "uk", "vi", "zh",
}

var (
	indexOnce   sync.Once
	terminology map[string]string
	byWord      map[string]string
)

func buildIndex() {
	terminology = make(map[string]string, len(bibliographic))
	for b, t := range bibliographic {
		terminology[t] = b
	}
	names := display.English.Languages()
	byWord = make(map[string]string, len(wordBases))
	for _, code := range wordBases {
		base := xlanguage.MustParseBase(code)
		byWord[strings.ToLower(names.Name(base))] = base.ISO3()
	}
}

func clean(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// ToISO3 converts a language code or English name to its ISO 639-2/T
// (3-letter) form. Empty or unresolvable 2-letter input yields "und"; unknown
// 3-letter codes pass through.
func ToISO3(code string) string {
	indexOnce.Do(buildIndex)
	code = clean(code)
	if code == "" {
		return "und"
	}
	if t, ok := bibliographic[code]; ok {
		return t
	}
	if base, err := xlanguage.ParseBase(code); err == nil {
		if iso3 := base.ISO3(); iso3 != "" && iso3 != "und" {
			return iso3
		}
	}
	if iso3, ok := byWord[code]; ok {
		return iso3
	}
	if len(code) == 3 {
		return code
	}
	return "und"
}

// Aliases returns every ISO 639-2 code that identifies the same language as
// code: the terminology form first, then the bibliographic form if it
// differs. Empty input yields nil.
func Aliases(code string) []string {
	indexOnce.Do(buildIndex)
	code = clean(code)
	if code == "" {
		return nil
	}
	iso3 := ToISO3(code)
	if iso3 == "und" && code != "und" {
		return []string{code}
	}
	if b, ok := terminology[iso3]; ok {
		return []string{iso3, b}
	}
	return []string{iso3}
}

// DisplayName returns the English name for a code. It returns "Unknown" for
// empty or undetermined input and the upper-cased code when CLDR does not
// know it.
func DisplayName(code string) string {
	iso3 := ToISO3(code)
	if iso3 == "und" {
		if c := clean(code); c != "" && c != "und" {
			return strings.ToUpper(c)
		}
		return "Unknown"
	}
	if base, err := xlanguage.ParseBase(iso3); err == nil {
		if name := display.English.Languages().Name(base); name != "" {
			return name
		}
	}
	return strings.ToUpper(clean(code))
}
