package tracks

import (
	"mkvreorder/internal/mkvmerge"
	"mkvreorder/internal/services"
)

// ErrNoPrimaryAudio is returned by BuildPlan when the decision has no
// primary audio track.
var ErrNoPrimaryAudio = services.Wrap(services.ErrIneligible, "tracks", "build plan", "no primary audio track", nil)

// Eligible reports whether the file can be remuxed.
func (d Decision) Eligible() bool {
	return d.PrimaryAudio != NoTrack
}

// BuildPlan derives the flag assignments and track order for an eligible
// decision.
//
// Flags are emitted as: primary audio on, primary subtitle on (if any), then
// off for every other audio track followed by every other subtitle track.
// Video tracks are not flagged. The order lists every video track, the
// primary audio, the remaining audio, the primary subtitle and the remaining
// subtitles.
func BuildPlan(d Decision) (Plan, error) {
	if !d.Eligible() {
		return Plan{}, ErrNoPrimaryAudio
	}

	otherAudio := without(d.Audio, d.PrimaryAudio)
	otherSubs := d.Subtitles
	if d.HasPrimarySubtitle() {
		otherSubs = without(d.Subtitles, d.PrimarySubtitle)
	}

	flags := make([]Flag, 0, len(d.Audio)+len(d.Subtitles))
	flags = append(flags, Flag{TrackID: d.PrimaryAudio, Enabled: true})
	if d.HasPrimarySubtitle() {
		flags = append(flags, Flag{TrackID: d.PrimarySubtitle, Enabled: true})
	}
	for _, id := range otherAudio {
		flags = append(flags, Flag{TrackID: id})
	}
	for _, id := range otherSubs {
		flags = append(flags, Flag{TrackID: id})
	}

	order := make([]int, 0, len(d.Video)+len(d.Audio)+len(d.Subtitles))
	order = append(order, d.Video...)
	order = append(order, d.PrimaryAudio)
	order = append(order, otherAudio...)
	if d.HasPrimarySubtitle() {
		order = append(order, d.PrimarySubtitle)
	}
	order = append(order, otherSubs...)

	return Plan{Flags: flags, Order: order}, nil
}

func without(ids []int, skip int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id != skip {
			out = append(out, id)
		}
	}
	return out
}

// MuxRequest converts the plan into an mkvmerge invocation for input.
func (p Plan) MuxRequest(input, output string) mkvmerge.MuxRequest {
	flags := make([]mkvmerge.TrackFlag, len(p.Flags))
	for i, f := range p.Flags {
		flags[i] = mkvmerge.TrackFlag{TrackID: f.TrackID, Enabled: f.Enabled}
	}
	return mkvmerge.MuxRequest{
		Input:  input,
		Output: output,
		Flags:  flags,
		Order:  append([]int(nil), p.Order...),
	}
}
