package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type ollamaGenerator struct {
	host   string
	model  string
	client *http.Client
}

func (g *ollamaGenerator) Name() string {
	return fmt.Sprintf("Ollama (%s)", g.model)
}

func (g *ollamaGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	payload := map[string]any{
		"model":  g.model,
		"prompt": buildPrompt(req),
		"stream": false,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.host+"/api/generate", bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("ollama response: %w", err)
	}
	if strings.TrimSpace(parsed.Response) == "" {
		return "", fmt.Errorf("ollama returned empty response")
	}
	return strings.TrimSpace(parsed.Response), nil
}

func buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("You are drafting a section of an academic document.\n")
	if req.Style != "" {
		fmt.Fprintf(&b, "Write in %s style.\n", req.Style)
	}
	if req.MaxLength > 0 {
		fmt.Fprintf(&b, "Target roughly %d words.\n", req.MaxLength)
	}
	b.WriteString("\n")
	b.WriteString(req.Prompt)
	return b.String()
}
