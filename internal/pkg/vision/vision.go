package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
)

const (
	defaultModel = shared.ResponsesModel("gpt-4o-mini")

	// Fixed sampling parameters for every call; tuning happens in the
	// prompts, not per request.
	temperature     = 0.7
	maxOutputTokens = 1600
)

var (
	// ErrMissingAPIKey is returned when OPENAI_API_KEY was not configured.
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")
)

// ObjectAnalyzer is the slice of Analyzer the analyze-image endpoint needs.
type ObjectAnalyzer interface {
	AnalyzeObject(ctx context.Context, imageBase64 string, childAge int) (json.RawMessage, error)
}

// ContentGenerator is the slice of Analyzer the offline generators need.
type ContentGenerator interface {
	GenerateNews(ctx context.Context, country, band string) (json.RawMessage, error)
	GenerateQuiz(ctx context.Context, category, band string) (json.RawMessage, error)
}

// Analyzer is a thin wrapper around the OpenAI Responses client that turns a
// scanned image or a content combination into a parsed JSON payload.
type Analyzer struct {
	client *openai.Client
	model  shared.ResponsesModel
}

// NewAnalyzerFromEnv builds an Analyzer using the OPENAI_API_KEY env var.
func NewAnalyzerFromEnv(opts ...option.RequestOption) (*Analyzer, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return NewAnalyzer(apiKey, opts...), nil
}

func NewAnalyzer(apiKey string, opts ...option.RequestOption) *Analyzer {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(opts...)
	return &Analyzer{client: &client, model: defaultModel}
}

// AnalyzeObject sends the image and the lens instruction to the model and
// returns the parsed payload. A transport or API failure is an error; output
// that resists parsing is not - those calls return ParseErrorPayload so the
// caller can still answer the child.
func (a *Analyzer) AnalyzeObject(ctx context.Context, imageBase64 string, childAge int) (json.RawMessage, error) {
	if a == nil || a.client == nil {
		return nil, errors.New("Analyzer is not initialized")
	}

	imageURL := "data:image/jpeg;base64," + imageBase64

	resp, err := a.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           a.model,
		Temperature:     openai.Float(temperature),
		MaxOutputTokens: openai.Int(maxOutputTokens),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(analyzeSystemPrompt, responses.EasyInputMessageRoleSystem),
				responses.ResponseInputItemUnionParam{
					OfMessage: &responses.EasyInputMessageParam{
						Role: responses.EasyInputMessageRoleUser,
						Content: responses.EasyInputMessageContentUnionParam{
							OfInputItemContentList: responses.ResponseInputMessageContentListParam{
								responses.ResponseInputContentUnionParam{
									OfInputText: &responses.ResponseInputTextParam{
										Text: BuildAnalyzePrompt(childAge),
									},
								},
								responses.ResponseInputContentUnionParam{
									OfInputImage: &responses.ResponseInputImageParam{
										Detail:   responses.ResponseInputImageDetailAuto,
										ImageURL: openai.String(imageURL),
									},
								},
							},
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("call OpenAI: %w", err)
	}

	return parseOrErrorPayload(resp.OutputText()), nil
}

// GenerateNews produces one daily news blob for a (country, band)
// combination.
func (a *Analyzer) GenerateNews(ctx context.Context, country, band string) (json.RawMessage, error) {
	return a.generate(ctx, BuildNewsPrompt(country, band))
}

// GenerateQuiz produces one quiz blob for a (category, band) combination.
func (a *Analyzer) GenerateQuiz(ctx context.Context, category, band string) (json.RawMessage, error) {
	return a.generate(ctx, BuildQuizPrompt(category, band))
}

// generate runs a text-only prompt. Unlike AnalyzeObject, a parse failure is
// an error here: the generators skip the combination instead of storing an
// error-shaped blob.
func (a *Analyzer) generate(ctx context.Context, prompt string) (json.RawMessage, error) {
	if a == nil || a.client == nil {
		return nil, errors.New("Analyzer is not initialized")
	}

	resp, err := a.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           a.model,
		Temperature:     openai.Float(temperature),
		MaxOutputTokens: openai.Int(maxOutputTokens),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(generatorSystemPrompt, responses.EasyInputMessageRoleSystem),
				responses.ResponseInputItemParamOfMessage(prompt, responses.EasyInputMessageRoleUser),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("call OpenAI: %w", err)
	}

	output := strings.TrimSpace(resp.OutputText())
	if output == "" {
		return nil, errors.New("model returned an empty response")
	}

	return ParseModelJSON(output)
}

func parseOrErrorPayload(output string) json.RawMessage {
	payload, err := ParseModelJSON(output)
	if err != nil {
		return ParseErrorPayload
	}
	return payload
}
