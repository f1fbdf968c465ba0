// Package preset enumerates enabled derivative presets and binds each to
// its transcoding policy (SPEC_FULL.md §2 C11), grounded on the teacher's
// static config-driven settings maps (internal/config/config.go) scaled
// down to the two image geometries this spec names. A Policy carries no
// video command templates; every preset shares the video pool's templates.
package preset

// Kind is the derivative family a preset belongs to.
type Kind string

const (
	KindThumbnail Kind = "thumbnail"
	KindPreview   Kind = "preview"
)

// Policy binds a preset name to the image geometry used for its resize
// command (spec §4.5). Video transcoding uses the same HW/SW command
// templates for every preset — only the image geometry varies.
type Policy struct {
	Name          string
	Kind          Kind
	ImageGeometry string // "WIDTHxHEIGHT", passed verbatim to `convert -resize`.
}

var policies = map[string]Policy{
	string(KindThumbnail): {Name: string(KindThumbnail), Kind: KindThumbnail, ImageGeometry: "400x400"},
	string(KindPreview):   {Name: string(KindPreview), Kind: KindPreview, ImageGeometry: "1280x1280"},
}

// Registry exposes the preset names enabled for this run.
type Registry struct {
	enabled []Policy
}

// NewRegistry builds a Registry from the two enable flags, yielding
// thumbnail before preview when both are enabled (a stable order, spec
// §4.7).
func NewRegistry(enableThumbnail, enablePreview bool) *Registry {
	var enabled []Policy
	if enableThumbnail {
		enabled = append(enabled, policies[string(KindThumbnail)])
	}
	if enablePreview {
		enabled = append(enabled, policies[string(KindPreview)])
	}
	return &Registry{enabled: enabled}
}

// Enabled returns the enabled policies in stable order.
func (r *Registry) Enabled() []Policy {
	out := make([]Policy, len(r.enabled))
	copy(out, r.enabled)
	return out
}
