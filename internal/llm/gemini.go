package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const geminiAPI = "https://generativelanguage.googleapis.com/v1beta/models"

type GeminiClient struct {
	apiKey string
	model  string
	http   *http.Client
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = "gemini-1.5-pro-latest"
	}
	return &GeminiClient{
		apiKey: apiKey,
		model:  model,
		http:   &http.Client{},
	}
}

// Raw API request/response types

type gemRequest struct {
	SystemInstruction *gemContent  `json:"systemInstruction,omitempty"`
	Contents          []gemContent `json:"contents"`
	Tools             []gemTools   `json:"tools,omitempty"`
}

type gemContent struct {
	Role  string    `json:"role,omitempty"` // user, model
	Parts []gemPart `json:"parts"`
}

type gemPart struct {
	Text             string           `json:"text,omitempty"`
	FunctionCall     *gemFunctionCall `json:"functionCall,omitempty"`
	FunctionResponse *gemFunctionResp `json:"functionResponse,omitempty"`
}

type gemFunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

type gemFunctionResp struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

type gemTools struct {
	FunctionDeclarations []gemFunctionDecl `json:"functionDeclarations"`
}

type gemFunctionDecl struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type gemResponse struct {
	Candidates []struct {
		Content gemContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *GeminiClient) Chat(ctx context.Context, systemPrompt string, messages []Message, tools []Tool) (*Response, error) {
	// Build tools
	var gemToolList []gemTools
	if len(tools) > 0 {
		decls := make([]gemFunctionDecl, len(tools))
		for i, t := range tools {
			params := t.Parameters
			if props, ok := params["properties"].(map[string]any); ok && len(props) == 0 {
				// Gemini rejects object schemas with no properties.
				params = nil
			}
			decls[i] = gemFunctionDecl{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  params,
			}
		}
		gemToolList = []gemTools{{FunctionDeclarations: decls}}
	}

	// Build contents. Gemini has no assistant role; model turns are
	// "model" and tool results go back as user-role functionResponse
	// parts keyed by function name.
	var contents []gemContent
	for _, m := range messages {
		switch m.Role {
		case "user":
			if m.ToolCallID != "" {
				contents = append(contents, gemContent{
					Role: "user",
					Parts: []gemPart{{FunctionResponse: &gemFunctionResp{
						Name:     m.ToolCallID,
						Response: map[string]any{"result": m.Content},
					}}},
				})
			} else {
				contents = append(contents, gemContent{
					Role:  "user",
					Parts: []gemPart{{Text: m.Content}},
				})
			}
		case "assistant":
			var parts []gemPart
			if m.Content != "" {
				parts = append(parts, gemPart{Text: m.Content})
			}
			for _, tc := range m.ToolCalls {
				parts = append(parts, gemPart{FunctionCall: &gemFunctionCall{
					Name: tc.Name,
					Args: tc.Params,
				}})
			}
			if len(parts) > 0 {
				contents = append(contents, gemContent{Role: "model", Parts: parts})
			}
		}
	}

	reqBody := gemRequest{
		Contents: contents,
		Tools:    gemToolList,
	}
	if systemPrompt != "" {
		reqBody.SystemInstruction = &gemContent{Parts: []gemPart{{Text: systemPrompt}}}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", geminiAPI, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("gemini chat: %s %s", resp.Status, string(respBody))
	}

	var gemResp gemResponse
	if err := json.Unmarshal(respBody, &gemResp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if len(gemResp.Candidates) == 0 {
		return &Response{}, nil
	}

	result := &Response{}
	for _, part := range gemResp.Candidates[0].Content.Parts {
		if part.Text != "" {
			result.Content += part.Text
		}
		if part.FunctionCall != nil {
			// Gemini doesn't issue call IDs; the function name keys the
			// round trip instead.
			result.ToolCalls = append(result.ToolCalls, ToolCall{
				ID:     part.FunctionCall.Name,
				Name:   part.FunctionCall.Name,
				Params: part.FunctionCall.Args,
			})
		}
	}

	return result, nil
}
