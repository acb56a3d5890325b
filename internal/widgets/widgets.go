package widgets

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"newsproxy/internal/model"
)

//go:embed widgets.yaml
var catalog []byte

// Load parses the embedded widget catalog. Every descriptor must declare a
// supported type, an endpoint and a widgetId matching its key.
func Load() (map[string]model.WidgetDescriptor, error) {
	return parse(catalog)
}

func parse(raw []byte) (map[string]model.WidgetDescriptor, error) {
	var descriptors map[string]model.WidgetDescriptor
	if err := yaml.Unmarshal(raw, &descriptors); err != nil {
		return nil, fmt.Errorf("parse widget catalog: %w", err)
	}

	for id, d := range descriptors {
		if d.WidgetID != id {
			return nil, fmt.Errorf("widget %s: widgetId %q does not match key", id, d.WidgetID)
		}
		if d.Type != model.WidgetTypeTable && d.Type != model.WidgetTypeMarkdown {
			return nil, fmt.Errorf("widget %s: unsupported type %q", id, d.Type)
		}
		if d.Endpoint == "" {
			return nil, fmt.Errorf("widget %s: endpoint is required", id)
		}
	}

	return descriptors, nil
}
