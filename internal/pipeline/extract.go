package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"newsproxy/pkg/news"
)

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type moduleListing struct {
	Modules []struct {
		Stories []json.RawMessage `json:"stories"`
	} `json:"modules"`
}

// Extract pulls story records out of an upstream listing. Two shapes are
// supported: a flat {"data": [...]} array and the nested
// {"data": {"modules": [{"stories": [...]}]}} form. Module order and
// intra-module order are preserved.
func Extract(raw []byte) ([]news.Story, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("extract stories: %w", err)
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 {
		return []news.Story{}, nil
	}

	var items []json.RawMessage
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("extract stories: %w", err)
		}
	case '{':
		var listing moduleListing
		if err := json.Unmarshal(data, &listing); err != nil {
			return nil, fmt.Errorf("extract modules: %w", err)
		}
		for _, m := range listing.Modules {
			items = append(items, m.Stories...)
		}
	}

	stories := make([]news.Story, 0, len(items))
	for _, item := range items {
		var s news.Story
		if err := json.Unmarshal(item, &s); err != nil {
			slog.Warn("skipping undecodable story", "error", err)
			continue
		}
		stories = append(stories, s)
	}

	return stories, nil
}
