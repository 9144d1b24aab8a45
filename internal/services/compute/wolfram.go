// File: internal/services/compute/wolfram.go
package compute

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"
)

// FallbackAnswer is returned whenever the Short Answers API does not reply
// with 200. The caller sees it as a normal answer, not an error.
const FallbackAnswer = "Sorry, Wolfram couldn't compute that."

const defaultEndpoint = "https://api.wolframalpha.com/v1/result"

// Answerer resolves a natural-language arithmetic question to plain text.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// WolframClient queries the WolframAlpha Short Answers API.
type WolframClient struct {
	appID      string
	endpoint   string
	httpClient *http.Client
}

func NewWolframClient(appID string) *WolframClient {
	return &WolframClient{
		appID:    appID,
		endpoint: defaultEndpoint,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

func (c *WolframClient) Answer(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", errors.New("question is required")
	}

	params := url.Values{}
	params.Set("i", question)
	params.Set("appid", c.appID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FallbackAnswer, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
