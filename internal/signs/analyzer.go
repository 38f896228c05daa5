package signs

import (
	"bytes"
	"context"
	"encoding/base64"
	goerrors "errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrInvalidLetterRange rejects ranges other than the configured ones.
	ErrInvalidLetterRange = goerrors.New("letter range must be 'A-N' or 'O-Z'")
	// ErrInvalidImage rejects payloads that do not decode as an image.
	ErrInvalidImage = goerrors.New("invalid image file")
)

// Options configures the model endpoint. BaseURL and Model have working
// defaults for OpenRouter; APIKey is mandatory.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Referer string
	Title   string
}

// Analyzer grades uploaded handsign photos by asking a vision model which
// letter the sign looks like.
type Analyzer struct {
	http    *resty.Client
	model   string
	prompts *Prompts
	logger  *zap.Logger
}

func NewAnalyzer(opts Options, prompts *Prompts, logger *zap.Logger) (*Analyzer, error) {
	if opts.APIKey == "" {
		return nil, errors.New("model API key is not configured")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://openrouter.ai/api/v1"
	}
	if opts.Model == "" {
		opts.Model = "openai/gpt-4o-mini"
	}

	http := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(time.Second * 60).
		SetAuthToken(opts.APIKey)
	if opts.Referer != "" {
		http.Header.Add("HTTP-Referer", opts.Referer)
	}
	if opts.Title != "" {
		http.Header.Add("X-Title", opts.Title)
	}

	return &Analyzer{
		http:    http,
		model:   opts.Model,
		prompts: prompts,
		logger:  logger.Named("signs"),
	}, nil
}

func (a *Analyzer) Model() string {
	return a.model
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze sends the sign photo to the model and returns its verdict text.
// The payload is re-encoded to PNG first, both to validate it and to give
// the model one consistent format.
func (a *Analyzer) Analyze(ctx context.Context, imageData []byte, letterRange string) (string, error) {
	if !a.prompts.ValidRange(letterRange) {
		return "", ErrInvalidLetterRange
	}

	dataURL, err := normalizeImage(imageData)
	if err != nil {
		return "", err
	}

	request := chatRequest{
		Model: a.model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: a.prompts.Ranges[letterRange]},
				{Type: "image_url", ImageURL: &imageRef{URL: dataURL}},
			},
		}},
	}

	var verdict string
	operation := func() error {
		var response chatResponse
		resp, err := a.http.R().
			SetContext(ctx).
			SetBody(&request).
			SetResult(&response).
			Post("/chat/completions")
		if err != nil {
			return err
		}
		if resp.IsError() {
			err := errors.Errorf("Model endpoint returned status %d", resp.StatusCode())
			if resp.StatusCode() < http.StatusInternalServerError && resp.StatusCode() != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			return err
		}
		if len(response.Choices) == 0 {
			return backoff.Permanent(errors.New("Model returned no choices"))
		}
		verdict = response.Choices[0].Message.Content
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		a.logger.Error("Sign analysis failed", zap.String("letter_range", letterRange), zap.Error(err))
		return "", errors.Wrap(err, "Failed to analyze sign")
	}

	a.logger.Info("Sign analysis completed", zap.String("letter_range", letterRange))
	return verdict, nil
}

func normalizeImage(data []byte) (string, error) {
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrInvalidImage
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, decoded); err != nil {
		return "", ErrInvalidImage
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
