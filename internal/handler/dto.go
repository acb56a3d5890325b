package handler

import "newsproxy/internal/model"

const provider = "bloomberg"

// Envelope is the list response shape shared by the dashboard widgets.
// Warnings and Chart are always null.
type Envelope[T any] struct {
	Results  []T    `json:"results"`
	Provider string `json:"provider"`
	Warnings any    `json:"warnings"`
	Chart    any    `json:"chart"`
	Extra    Extra  `json:"extra"`
}

type Extra struct {
	Metadata map[string]any `json:"metadata"`
}

func newEnvelope[T any](results []T, metadata map[string]any) Envelope[T] {
	if results == nil {
		results = []T{}
	}
	return Envelope[T]{
		Results:  results,
		Provider: provider,
		Extra:    Extra{Metadata: metadata},
	}
}

type ArticleResponse struct {
	Success bool           `json:"success"`
	Article *model.Article `json:"article,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
