package payments

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/veloraeats/dispatch-service/internal/config"
)

// Client triggers cash collection confirmation in the payment service.
// Fire-and-forget from the caller's point of view: the payment service
// owns the paid/unpaid state, this service only reports the handover.
type Client struct {
	client *resty.Client
}

func NewClient(cfg config.Payments) *Client {
	return &Client{
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetRetryCount(2),
	}
}

func (c *Client) ConfirmCashOnDelivery(ctx context.Context, orderID uuid.UUID) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"order_id": orderID.String()}).
		Post("/payments/cash/confirm")
	if err != nil {
		return fmt.Errorf("failed to confirm cash payment: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("payment service returned %s", resp.Status())
	}
	return nil
}
