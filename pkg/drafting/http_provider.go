package drafting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPProvider talks to the drafting service over its JSON API.
type HTTPProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ Provider = &HTTPProvider{}

func NewHTTPProvider(baseURL, modelName string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type extractRequest struct {
	Model         string            `json:"model"`
	Turns         []turnPayload     `json:"turns"`
	CurrentFields map[string]string `json:"current_fields,omitempty"`
	Temperature   float64           `json:"temperature,omitempty"`
}

type turnPayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type extractResponse struct {
	Fields map[string]string `json:"fields"`
}

type draftRequestPayload struct {
	Model        string            `json:"model"`
	DocumentType string            `json:"document_type"`
	Fields       map[string]string `json:"fields"`
	Citations    []string          `json:"citations,omitempty"`
	Temperature  float64           `json:"temperature,omitempty"`
}

type draftResponsePayload struct {
	Content      string   `json:"content"`
	QualityScore float64  `json:"quality_score"`
	Suggestions  []string `json:"suggestions"`
}

type strengthRequestPayload struct {
	Model        string            `json:"model"`
	DocumentType string            `json:"document_type"`
	Fields       map[string]string `json:"fields"`
}

type strengthResponsePayload struct {
	Score       float64  `json:"score"`
	Summary     string   `json:"summary"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

func (p *HTTPProvider) applyOptions(opts []Option) *Options {
	options := &Options{
		Temperature: 0.2, // Extraction and drafting want deterministic output
		Model:       p.ModelName,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.Model == "" {
		options.Model = p.ModelName
	}
	return options
}

func (p *HTTPProvider) ExtractCase(ctx context.Context, turns []ConversationTurn, currentFields map[string]string, opts ...Option) (*Extraction, error) {
	options := p.applyOptions(opts)

	payload := extractRequest{
		Model:         options.Model,
		CurrentFields: currentFields,
		Temperature:   options.Temperature,
		Turns:         make([]turnPayload, len(turns)),
	}
	for i, t := range turns {
		role := t.Role
		if role == "model" {
			role = "assistant"
		}
		payload.Turns[i] = turnPayload{Role: role, Content: t.Content}
	}

	var resp extractResponse
	if err := p.post(ctx, "/api/extract", payload, &resp); err != nil {
		return nil, err
	}
	if resp.Fields == nil {
		resp.Fields = map[string]string{}
	}
	return &Extraction{Fields: resp.Fields}, nil
}

func (p *HTTPProvider) DraftDocument(ctx context.Context, req DraftRequest, opts ...Option) (*DraftResult, error) {
	options := p.applyOptions(opts)

	payload := draftRequestPayload{
		Model:        options.Model,
		DocumentType: req.DocumentType,
		Fields:       req.Fields,
		Citations:    req.Citations,
		Temperature:  options.Temperature,
	}

	var resp draftResponsePayload
	if err := p.post(ctx, "/api/draft", payload, &resp); err != nil {
		return nil, err
	}
	if resp.Content == "" {
		return nil, fmt.Errorf("drafting service returned an empty document")
	}
	return &DraftResult{
		Content:      resp.Content,
		QualityScore: resp.QualityScore,
		Suggestions:  resp.Suggestions,
	}, nil
}

func (p *HTTPProvider) AnalyzeStrength(ctx context.Context, req StrengthRequest, opts ...Option) (*StrengthResult, error) {
	options := p.applyOptions(opts)

	payload := strengthRequestPayload{
		Model:        options.Model,
		DocumentType: req.DocumentType,
		Fields:       req.Fields,
	}

	var resp strengthResponsePayload
	if err := p.post(ctx, "/api/analyze", payload, &resp); err != nil {
		return nil, err
	}
	return &StrengthResult{
		Score:       resp.Score,
		Summary:     resp.Summary,
		Weaknesses:  resp.Weaknesses,
		Suggestions: resp.Suggestions,
	}, nil
}

func (p *HTTPProvider) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := p.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("drafting request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("drafting service status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
