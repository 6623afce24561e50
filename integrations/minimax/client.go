package minimax

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

const (
	defaultBaseURL     = "https://api.minimax.io"
	chatCompletionPath = "/v1/text/chatcompletion_v2"
	defaultModel       = "MiniMax-M2"
	defaultMaxTokens   = 2048
	defaultHTTPTimeout = 120 * time.Second
)

type Client struct {
	apiKey  string
	groupID string
	baseURL string
	model   string
	http    *http.Client
}

// Message est un tour de conversation au format attendu par l'API.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// Tool déclare un schéma d'outil proposé au modèle.
type Tool struct {
	Type     string     `json:"type"`
	Function ToolSchema `json:"function"`
}

type ToolSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ToolCall est l'écho brut d'un appel d'outil, arguments encore encodés
// en JSON texte.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Invocation est l'appel d'outil décodé, quelle que soit la voie de
// parsing qui l'a produit (champ structuré ou balisage dans le texte).
type Invocation struct {
	ID        string
	Name      string
	Arguments map[string]any
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Tools       []Tool    `json:"tools,omitempty"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string     `json:"content"`
			ToolCalls []ToolCall `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("MINIMAX_API_KEY")
	if apiKey == "" {
		return nil, errors.New("MINIMAX_API_KEY manquant")
	}
	baseURL := os.Getenv("MINIMAX_API_BASE")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := os.Getenv("MINIMAX_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &Client{
		apiKey:  apiKey,
		groupID: os.Getenv("MINIMAX_GROUP_ID"),
		baseURL: baseURL,
		model:   model,
		http: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}, nil
}

// Chat effectue une complétion simple, sans outils.
func (c *Client) Chat(ctx context.Context, messages []Message, temperature float64) (string, error) {
	out, err := c.send(ctx, chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("réponse Minimax sans choix")
	}
	return out.Choices[0].Message.Content, nil
}

// ChatWithTools effectue une complétion avec schémas d'outils et retourne
// le texte du modèle plus les invocations décodées. Deux stratégies de
// résolution : le champ tool_calls natif d'abord, sinon le balisage
// <minimax:tool_call> inclus dans le texte — certains modèles expriment
// leurs appels ainsi et un scénario ne doit pas échouer pour ce seul
// choix de format. Aucune invocation trouvée : liste vide, pas d'erreur.
func (c *Client) ChatWithTools(ctx context.Context, messages []Message, tools []Tool) (string, []Invocation, error) {
	out, err := c.send(ctx, chatRequest{
		Model:       c.model,
		Messages:    messages,
		Tools:       tools,
		Temperature: 0.1,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return "", nil, err
	}
	if len(out.Choices) == 0 {
		return "", nil, errors.New("réponse Minimax sans choix")
	}

	msg := out.Choices[0].Message
	if len(msg.ToolCalls) > 0 {
		invocations := make([]Invocation, 0, len(msg.ToolCalls))
		for _, tc := range msg.ToolCalls {
			args := map[string]any{}
			if tc.Function.Arguments != "" {
				if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
					return "", nil, fmt.Errorf("arguments d'appel d'outil illisibles : %w", err)
				}
			}
			invocations = append(invocations, Invocation{
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: args,
			})
		}
		return msg.Content, invocations, nil
	}

	return msg.Content, ParseInlineInvocations(msg.Content), nil
}

func (c *Client) send(ctx context.Context, payload chatRequest) (*chatResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, err
	}

	url := c.baseURL + chatCompletionPath
	if c.groupID != "" {
		url += "?GroupId=" + c.groupID
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("appel Minimax échoué avec le statut %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
