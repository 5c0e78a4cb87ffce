// Package tracks decides which audio and subtitle tracks of a Matroska file
// become primary and turns that decision into a mux plan.
//
// Classification is a pure function of the probed track list and a Policy:
// the first audio track in the policy audio language becomes the primary
// audio, and the subtitle track in the policy subtitle language is chosen by
// keyword (a preferred keyword such as "full" wins, otherwise the first track
// without an excluded keyword such as "signs"). All ties are broken by the
// container's original order.
//
// BuildPlan converts an eligible Decision into the default/forced flag
// assignments and the global track order that mkvmerge applies. Plans are
// immutable once built.
package tracks
