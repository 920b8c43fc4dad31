// Package llm provides the content-generation collaborator. From the core's
// point of view a generator is a pure function; its output is plain content
// fed into section updates.
package llm

import (
	"context"
	"net/http"
	"time"
)

const defaultHTTPTimeout = 3 * time.Minute

// Request describes one generation call.
type Request struct {
	Prompt    string
	Style     string
	MaxLength int // target length in words, 0 means model default
}

// Generator produces draft content for a section.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() string
}

// Config describes how to build a generator.
type Config struct {
	Endpoint   string // Ollama base URL; empty selects the static generator
	Model      string
	HTTPClient *http.Client
}

// New builds a generator from config.
func New(cfg Config) Generator {
	if cfg.Endpoint == "" {
		return &staticGenerator{}
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &ollamaGenerator{
		host:   cfg.Endpoint,
		model:  cfg.Model,
		client: client,
	}
}
