package mkvmerge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"mkvreorder/internal/services"
	"mkvreorder/internal/textutil"
)

// Identification is the decoded `mkvmerge -J` document.
type Identification struct {
	FileName  string      `json:"file_name"`
	Container Container   `json:"container"`
	Tracks    []TrackInfo `json:"tracks"`
	Errors    []string    `json:"errors"`
	Warnings  []string    `json:"warnings"`
}

// Container describes the probed container.
type Container struct {
	Type       string         `json:"type"`
	Recognized bool           `json:"recognized"`
	Supported  bool           `json:"supported"`
	Properties map[string]any `json:"properties"`
}

// TrackInfo is one track entry. Properties are kept raw because their keys
// vary by track type and mkvmerge version.
type TrackInfo struct {
	ID         int            `json:"id"`
	Type       string         `json:"type"`
	Codec      string         `json:"codec"`
	Properties map[string]any `json:"properties"`
}

// TrackProperties holds the track properties the tool cares about.
type TrackProperties struct {
	Language      string `mapstructure:"language"`
	LanguageIETF  string `mapstructure:"language_ietf"`
	TrackName     string `mapstructure:"track_name"`
	DefaultTrack  bool   `mapstructure:"default_track"`
	ForcedTrack   bool   `mapstructure:"forced_track"`
	CodecID       string `mapstructure:"codec_id"`
	AudioChannels int    `mapstructure:"audio_channels"`
}

// DecodeProperties decodes the raw properties map. Unknown keys are ignored.
func (t TrackInfo) DecodeProperties() (TrackProperties, error) {
	var props TrackProperties
	if len(t.Properties) == 0 {
		return props, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &props,
	})
	if err != nil {
		return TrackProperties{}, err
	}
	if err := decoder.Decode(t.Properties); err != nil {
		return TrackProperties{}, fmt.Errorf("decode properties of track %d: %w", t.ID, err)
	}
	props.Language = strings.TrimSpace(props.Language)
	return props, nil
}

// Identify probes path with `mkvmerge -J`. A non-zero exit, malformed JSON,
// reported errors or an unrecognized container all yield an error marked
// services.ErrProbe.
func (c *Client) Identify(ctx context.Context, path string) (Identification, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Identification{}, services.Wrap(services.ErrProbe, "mkvmerge", "identify", "empty path", nil)
	}

	stdout, stderr, runErr := c.exec.Run(ctx, c.binary, []string{"-J", path})
	if ctxErr := ctx.Err(); ctxErr != nil && runErr != nil {
		return Identification{}, ctxErr
	}

	var id Identification
	decodeErr := json.Unmarshal(stdout, &id)
	if decodeErr == nil && len(id.Errors) > 0 {
		msg := textutil.Truncate(strings.Join(id.Errors, "; "), c.diagnosticLimit)
		return Identification{}, services.Wrap(services.ErrProbe, "mkvmerge", "identify", msg, runErr)
	}
	if runErr != nil {
		return Identification{}, services.Wrap(services.ErrProbe, "mkvmerge", "identify", "", c.exitError(runErr, stdout, stderr))
	}
	if decodeErr != nil {
		return Identification{}, services.Wrap(services.ErrProbe, "mkvmerge", "identify", "parse json", decodeErr)
	}
	if !id.Container.Recognized {
		return Identification{}, services.Wrap(services.ErrProbe, "mkvmerge", "identify", "container not recognized", nil)
	}
	if !id.Container.Supported {
		return Identification{}, services.Wrap(services.ErrProbe, "mkvmerge", "identify",
			fmt.Sprintf("container %q not supported", id.Container.Type), nil)
	}
	return id, nil
}
