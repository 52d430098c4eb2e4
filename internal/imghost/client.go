package imghost

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

// Client uploads product images to the third-party image host. Calls run
// through a circuit breaker so a flaky host fails fast instead of hanging
// every admin upload.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	url     string
	apiKey  string
}

type uploadResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
}

func New(uploadURL, apiKey string) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "imghost",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 3 && counts.TotalFailures*10 >= counts.Requests*6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[IMGHOST] breaker %s: %s -> %s", name, from, to)
		},
	})

	return &Client{
		http: resty.New().
			SetTimeout(10 * time.Second).
			SetRetryCount(0),
		breaker: breaker,
		url:     uploadURL,
		apiKey:  apiKey,
	}
}

// Upload pushes an image and returns its hosted URL.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var out uploadResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetFormData(map[string]string{"key": c.apiKey}).
			SetFileReader("image", filename, bytes.NewReader(data)).
			SetResult(&out).
			Post(c.url)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("image host returned %s", resp.Status())
		}
		if !out.Success || out.Data.URL == "" {
			return nil, fmt.Errorf("image host rejected upload")
		}
		return out.Data.URL, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			return "", fmt.Errorf("image host unavailable (circuit open)")
		}
		return "", err
	}
	return result.(string), nil
}
