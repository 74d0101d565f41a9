package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultHuggingFaceModel   = "mistralai/Mistral-7B-Instruct-v0.2"
	DefaultHuggingFaceBaseURL = "https://api-inference.huggingface.co/models/"
)

type HuggingFaceProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewHuggingFaceProvider(apiKey, model, baseURL string) (*HuggingFaceProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("huggingface: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultHuggingFaceModel
	}
	if baseURL == "" {
		baseURL = DefaultHuggingFaceBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &HuggingFaceProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		// the caller's context carries the real deadline
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (p *HuggingFaceProvider) Name() Name    { return HuggingFace }
func (p *HuggingFaceProvider) Model() string { return p.model }

func (p *HuggingFaceProvider) Generate(ctx context.Context, pr Prompt) (string, error) {
	/*
		Inference API, text-generation task:
		POST {base}/{model}
		{"inputs": "...", "parameters": {"max_new_tokens": 300, "return_full_text": false}}
		-> [{"generated_text": "..."}]
	*/
	payload := struct {
		Inputs     string `json:"inputs"`
		Parameters struct {
			MaxNewTokens   int  `json:"max_new_tokens"`
			ReturnFullText bool `json:"return_full_text"`
		} `json:"parameters"`
		Options struct {
			WaitForModel bool `json:"wait_for_model"`
		} `json:"options"`
	}{
		Inputs: pr.System + "\n\nQuestion: " + pr.Question + "\nAnswer:",
	}
	payload.Parameters.MaxNewTokens = 300
	payload.Options.WaitForModel = true

	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+p.model, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&e)
		return "", &HTTPError{Provider: HuggingFace, StatusCode: resp.StatusCode, Message: e.Error}
	}

	var out []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("huggingface: decode response: %w", err)
	}
	if len(out) == 0 || strings.TrimSpace(out[0].GeneratedText) == "" {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(out[0].GeneratedText), nil
}
