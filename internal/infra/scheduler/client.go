package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client fala com o registro externo de gatilhos recorrentes que dispara os
// jobs desta aplicação.
type Client struct {
	httpClient *resty.Client
}

func NewClient(baseURL, token string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetTimeout(10 * time.Second)

	return &Client{httpClient: httpClient}
}

func (c *Client) DisableJob(ctx context.Context, name string) error {
	return c.setJobState(ctx, name, "disable")
}

func (c *Client) EnableJob(ctx context.Context, name string) error {
	return c.setJobState(ctx, name, "enable")
}

func (c *Client) setJobState(ctx context.Context, name, action string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Post(fmt.Sprintf("/jobs/%s/%s", name, action))
	if err != nil {
		return fmt.Errorf("scheduler: falha na requisição: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("scheduler: status %d: %s", resp.StatusCode(), resp.String())
	}
	log.Printf("🔧 Scheduler: job %s → %s", name, action)
	return nil
}
