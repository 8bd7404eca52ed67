package quill

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

func newGoogleCompletion(cfg Config) (CompletionFunc, error) {
	if cfg.GoogleAPIKey == "" {
		return nil, errors.New("quill: Google API key is required to use ProviderGoogle")
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.GoogleAPIKey,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.GoogleBaseURL,
		},
	})
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, prompt string, opts Options) (string, error) {
		model := opts.Model
		if model == "" {
			model = cfg.DefaultModelGoogle
		}
		if model == "" {
			return "", errors.New("quill: model must be specified")
		}

		gc := &genai.GenerateContentConfig{}
		if strings.TrimSpace(opts.System) != "" {
			gc.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: opts.System}},
			}
		}
		if opts.Temperature != nil {
			gc.Temperature = genai.Ptr(*opts.Temperature)
		}
		if opts.MaxOutputTokens != nil {
			gc.MaxOutputTokens = int32(*opts.MaxOutputTokens)
		}
		if len(opts.Labels) > 0 {
			gc.Labels = opts.Labels
		}
		if len(opts.Tools) > 0 {
			gc.Tools = toGenAITools(opts.Tools)
		}

		contents := genai.Text(prompt)

		if opts.OnDelta != nil {
			var full []byte
			for result, err := range client.Models.GenerateContentStream(ctx, model, contents, gc) {
				if err != nil {
					return "", err
				}
				if chunk := result.Text(); chunk != "" {
					full = append(full, chunk...)
					opts.OnDelta(chunk)
				}
			}
			return string(full), nil
		}

		res, err := client.Models.GenerateContent(ctx, model, contents, gc)
		if err != nil {
			return "", err
		}
		return res.Text(), nil
	}, nil
}

func toGenAITools(tools []Tool) []*genai.Tool {
	out := make([]*genai.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, &genai.Tool{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:                 t.Name,
					Description:          t.Description,
					ParametersJsonSchema: t.Parameters,
				},
			},
		})
	}
	return out
}
