// Package suggest implements the AI tip suggestion client: one structured
// completion request per call against Google's Gemini API, with the output
// re-validated locally against the declared schema.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"google.golang.org/genai"

	"github.com/rachaconta/backend/internal/models"
)

// DefaultModel is the fixed model identifier used for tip suggestions.
const DefaultModel = "gemini-1.5-flash-latest"

// promptTemplate is the product's suggestion prompt; the restaurant URL is
// substituted verbatim.
const promptTemplate = `Você é um assistente de IA prestativo que sugere uma porcentagem de gorjeta com base na URL de um restaurante.
Analise a URL do restaurante e considere fatores como a localização do restaurante, a qualidade de serviço percebida (com base no conteúdo da URL) e qualquer outra informação relevante para sugerir uma porcentagem de gorjeta apropriada.
Forneça uma breve justificativa para sua sugestão.
URL do Restaurante: %s`

// generator is the slice of the genai API the client needs. *genai.Models
// satisfies it; tests substitute a fake.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the model identifier.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// Client issues tip suggestion requests. A shared generator built from the
// environment credential serves requests without a caller credential; a
// caller credential gets a request-scoped generator from the same factory.
//
// The client performs no retry, caching, or queuing: exactly one outbound
// call per Suggest invocation.
type Client struct {
	model  string
	shared generator
	dial   func(ctx context.Context, apiKey string) (generator, error)
}

// New creates a Client. envKey is the environment-configured credential; when
// empty, requests without a caller credential fail with KindMissingCredential.
func New(ctx context.Context, envKey string, opts ...Option) (*Client, error) {
	c := &Client{
		model: DefaultModel,
		dial:  dialGenAI,
	}
	for _, o := range opts {
		o(c)
	}

	if envKey != "" {
		shared, err := c.dial(ctx, envKey)
		if err != nil {
			return nil, fmt.Errorf("suggest: create shared client: %w", err)
		}
		c.shared = shared
	}
	return c, nil
}

// dialGenAI builds a generator authenticated with the given API key. It is
// the single construction path for both the shared and caller-scoped cases.
func dialGenAI(ctx context.Context, apiKey string) (generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

// responseSchema declares the structured output contract: a percentage in
// [0,100] plus a reasoning string.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestedTipPercentage": {
				Type:        genai.TypeNumber,
				Minimum:     genai.Ptr(0.0),
				Maximum:     genai.Ptr(100.0),
				Description: "A porcentagem de gorjeta sugerida com base na URL do restaurante (um número de 0 a 100).",
			},
			"reasoning": {
				Type:        genai.TypeString,
				Description: "A justificativa para a porcentagem de gorjeta sugerida.",
			},
		},
		Required: []string{"suggestedTipPercentage", "reasoning"},
	}
}

// Suggest requests a tip percentage for the given restaurant URL.
// credential, when non-empty, authenticates this request instead of the
// environment credential. Failures are always a *Error with a Kind tag.
func (c *Client) Suggest(ctx context.Context, restaurantURL, credential string) (*models.SuggestionResult, error) {
	if err := validateURL(restaurantURL); err != nil {
		return nil, err
	}

	gen := c.shared
	if credential != "" {
		g, err := c.dial(ctx, credential)
		if err != nil {
			return nil, &Error{
				Kind:    KindProviderError,
				Message: "não foi possível autenticar com a chave de API fornecida",
				Err:     err,
			}
		}
		gen = g
	}
	if gen == nil {
		return nil, &Error{
			Kind:    KindMissingCredential,
			Message: "nenhuma chave de API configurada; salve uma chave ou defina a variável de ambiente",
		}
	}

	resp, err := gen.GenerateContent(ctx, c.model,
		genai.Text(fmt.Sprintf(promptTemplate, restaurantURL)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema(),
		},
	)
	if err != nil {
		return nil, &Error{
			Kind:    KindProviderError,
			Message: "falha ao obter sugestão de gorjeta",
			Err:     err,
		}
	}

	return parseResult(resp)
}

// parseResult re-validates the provider output against the schema,
// independently of the provider's own structured-output guarantee.
func parseResult(resp *genai.GenerateContentResponse) (*models.SuggestionResult, error) {
	raw := strings.TrimSpace(resp.Text())
	if raw == "" {
		return nil, &Error{
			Kind:    KindValidationError,
			Message: "a IA não retornou um resultado válido",
		}
	}

	var out models.SuggestionResult
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		slog.Warn("suggestion output is not valid JSON", "payload", raw, "error", err)
		return nil, &Error{
			Kind:    KindValidationError,
			Message: "a IA não retornou um resultado válido",
			Err:     err,
		}
	}
	if out.SuggestedTipPercentage < 0 || out.SuggestedTipPercentage > 100 {
		slog.Warn("suggested tip percentage out of range", "payload", raw)
		return nil, &Error{
			Kind:    KindValidationError,
			Message: "a IA retornou uma porcentagem fora do intervalo 0-100",
		}
	}
	if strings.TrimSpace(out.Reasoning) == "" {
		slog.Warn("suggestion reasoning is empty", "payload", raw)
		return nil, &Error{
			Kind:    KindValidationError,
			Message: "a IA não retornou uma justificativa",
		}
	}

	return &out, nil
}

// validateURL rejects empty or malformed restaurant URLs before any network
// I/O happens.
func validateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return &Error{
			Kind:    KindPreconditionFailed,
			Message: "insira a URL de um restaurante para obter uma sugestão de gorjeta",
		}
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &Error{
			Kind:    KindPreconditionFailed,
			Message: "a URL do restaurante não é válida",
			Err:     err,
		}
	}
	return nil
}
