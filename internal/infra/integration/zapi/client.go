package zapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	httpClient    *resty.Client
	instanceID    string
	instanceToken string
}

func NewClient(baseURL, instanceID, instanceToken, clientToken string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Client-Token", clientToken).
		SetTimeout(15 * time.Second)

	return &Client{
		httpClient:    httpClient,
		instanceID:    instanceID,
		instanceToken: instanceToken,
	}
}

// SendText envia uma mensagem de texto. phone já vem na forma internacional
// ("<país><dígitos>").
func (c *Client) SendText(ctx context.Context, phone, message string) error {
	url := fmt.Sprintf("/instances/%s/token/%s/send-text", c.instanceID, c.instanceToken)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(SendTextRequest{Phone: phone, Message: message}).
		Post(url)
	if err != nil {
		return fmt.Errorf("zapi: falha na requisição: %w", err)
	}

	var result SendTextResponse
	if err := json.Unmarshal(resp.Body(), &result); err == nil && result.Error != "" {
		log.Printf("❌ Z-API: erro no envio para %s: %s", phone, result.Error)
		return fmt.Errorf("zapi: %s", result.Error)
	}

	if resp.IsError() {
		return fmt.Errorf("zapi: status %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
