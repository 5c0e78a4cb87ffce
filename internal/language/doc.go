// Package language normalizes the ISO 639 codes used by the track selection
// policy and renders human-readable language names.
//
// mkvmerge reports ISO 639-2 codes, and some languages have both a
// bibliographic and a terminology form ("ger" and "deu"). Aliases returns
// every form so a policy configured as "de" matches either.
package language
