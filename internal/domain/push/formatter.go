package push

import (
	"fmt"

	"respush/internal/domain/catalog"
)

// Formatter samples a group and renders it into a Draft.
type Formatter struct {
	sampler  *Sampler
	renderer Renderer
}

// NewFormatter creates a new formatter.
func NewFormatter(sampler *Sampler, renderer Renderer) *Formatter {
	return &Formatter{sampler: sampler, renderer: renderer}
}

// Draft picks up to n items of the group and renders the message for resType.
// An empty group renders a "no data" notice instead of a sample.
func (f *Formatter) Draft(resType string, items []catalog.Item, n int) (*Draft, error) {
	picked := f.sampler.Sample(items, n)

	content, err := f.renderer.Render(resType, len(items), picked)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", resType, err)
	}

	return &Draft{
		Type:    resType,
		Total:   len(items),
		Sampled: picked,
		Content: content,
	}, nil
}
