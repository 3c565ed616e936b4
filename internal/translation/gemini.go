package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiProvider translates via the Google Gemini API.
type GeminiProvider struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	return &GeminiProvider{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  *genConfig      `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *geminiError      `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Translate implements Provider over a single batched prompt.
func (p *GeminiProvider) Translate(ctx context.Context, texts []string, from, to string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt(from, to)}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: batchPrompt(texts)}}},
		},
		GenerationConfig: &genConfig{
			MaxOutputTokens: 8192,
			Temperature:     0.3,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal translation request: %w", err)
	}

	response, err := p.doRequest(ctx, bodyBytes)
	if err != nil {
		return nil, err
	}

	return splitBatchResponse(response, texts), nil
}

func (p *GeminiProvider) doRequest(ctx context.Context, bodyBytes []byte) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", geminiBaseURL, p.model, p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{Message: "API call failed", Cause: err, Retryable: true}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", &ProviderError{
			Message:   fmt.Sprintf("retryable error (status %d): %s", resp.StatusCode, string(respBody)),
			Retryable: true,
		}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Message: fmt.Sprintf("API error (status %d): %s", resp.StatusCode, string(respBody)),
		}
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if apiResp.Error != nil {
		return "", &ProviderError{
			Message: fmt.Sprintf("API error [%s]: %s", apiResp.Error.Status, apiResp.Error.Message),
		}
	}
	if len(apiResp.Candidates) == 0 {
		return "", &ProviderError{Message: "empty response: no candidates"}
	}

	var result strings.Builder
	for _, part := range apiResp.Candidates[0].Content.Parts {
		result.WriteString(part.Text)
	}

	return strings.TrimSpace(result.String()), nil
}

// systemPrompt instructs the model to translate UI strings verbatim.
func systemPrompt(from, to string) string {
	return fmt.Sprintf(
		"You are a software localization engine. Translate user interface strings from %s to %s. "+
			"Preserve placeholders like {{name}} and any markup exactly. "+
			"Return only the translations, nothing else.", from, to)
}

// batchPrompt numbers the texts and asks for delimiter-separated output.
func batchPrompt(texts []string) string {
	var sb strings.Builder
	sb.WriteString("Translate each of the following texts. Return ONLY the translations, in the same order.\n")
	sb.WriteString("Use " + Delimiter + " as a delimiter between translations.\n\n")
	for i, t := range texts {
		sb.WriteString(fmt.Sprintf("[%d] %s\n", i+1, t))
	}
	return sb.String()
}

// splitBatchResponse maps a delimiter-separated response back onto the
// inputs, falling back to the original text for missing entries.
func splitBatchResponse(response string, texts []string) []string {
	parts := strings.Split(response, Delimiter)
	results := make([]string, len(texts))

	for i := range results {
		if i < len(parts) && strings.TrimSpace(parts[i]) != "" {
			results[i] = strings.TrimSpace(parts[i])
		} else {
			log.Warn().Int("index", i).Msg("Missing translation in batch response, keeping original")
			results[i] = texts[i]
		}
	}

	return results
}
