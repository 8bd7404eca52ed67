package quill

import (
	"context"
	"errors"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

func newOpenAICompletion(cfg Config) (CompletionFunc, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, errors.New("quill: OpenAI API key is required to use ProviderOpenAI")
	}
	oc := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		oc.BaseURL = cfg.OpenAIBaseURL
	}
	if cfg.OpenAIOrgID != "" {
		oc.OrgID = cfg.OpenAIOrgID
	}
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	} else if cfg.Timeout > 0 {
		oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	client := openai.NewClientWithConfig(oc)

	return func(ctx context.Context, prompt string, opts Options) (string, error) {
		model := opts.Model
		if model == "" {
			model = cfg.DefaultModelOpenAI
		}
		if model == "" {
			return "", errors.New("quill: model must be specified")
		}

		req := openai.ChatCompletionRequest{
			Model:    model,
			Messages: openAIMessages(prompt, opts),
		}
		if opts.Temperature != nil {
			req.Temperature = *opts.Temperature
		}
		if opts.MaxOutputTokens != nil {
			req.MaxCompletionTokens = *opts.MaxOutputTokens
		}
		if len(opts.Tools) > 0 {
			req.Tools = make([]openai.Tool, len(opts.Tools))
			for i, t := range opts.Tools {
				req.Tools[i] = openai.Tool{
					Type: openai.ToolTypeFunction,
					Function: &openai.FunctionDefinition{
						Name:        t.Name,
						Description: t.Description,
						Parameters:  t.Parameters,
					},
				}
			}
		}

		if opts.OnDelta != nil {
			return streamOpenAI(ctx, client, req, opts.OnDelta)
		}

		resp, err := client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("quill: no choices in completion response")
		}
		return resp.Choices[0].Message.Content, nil
	}, nil
}

func openAIMessages(prompt string, opts Options) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, 2)
	if opts.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: opts.System,
		})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})
	return msgs
}

// streamOpenAI accumulates the streamed reply, forwarding each text chunk.
func streamOpenAI(ctx context.Context, client *openai.Client, req openai.ChatCompletionRequest, onDelta func(string)) (string, error) {
	req.Stream = true
	stream, err := client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	var full []byte
	for {
		response, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
		if len(response.Choices) == 0 {
			continue
		}
		if chunk := response.Choices[0].Delta.Content; chunk != "" {
			full = append(full, chunk...)
			onDelta(chunk)
		}
	}
	return string(full), nil
}
