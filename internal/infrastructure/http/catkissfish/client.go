package catkissfish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"order_compare/internal/config"
	"order_compare/internal/domain/order"
	"order_compare/internal/infrastructure/http/transport"
	"order_compare/pkg/logger"
)

const (
	tokenPath       = "/oauth2/client_token"
	orderDetailPath = "/open/api/order/v1/order/detail"
)

var ErrMissingCredentials = errors.New("catkissfish client_id or client_secret is empty")

var tracer = otel.Tracer("order_compare/catkissfish")

// Client gọi API của xưởng Cat Kiss Fish (token + order detail).
type Client struct {
	rest *resty.Client
	cfg  config.CatKissFishConfig
	log  logger.Logger
	now  func() time.Time
}

func NewClient(cfg config.CatKissFishConfig, log logger.Logger) *Client {
	return &Client{
		rest: transport.NewRestClient(transport.Config{Timeout: cfg.Timeout()}),
		cfg:  cfg,
		log:  log.WithFields(logger.String("vendor", "catkissfish")),
		now:  time.Now,
	}
}

func (c *Client) ClientID() string {
	return c.cfg.ClientID
}

// GetAccessToken exchanges the client credentials for a client token.
func (c *Client) GetAccessToken(ctx context.Context) (TokenCache, error) {
	ctx, span := tracer.Start(ctx, "catkissfish.get_access_token")
	defer span.End()

	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return TokenCache{}, ErrMissingCredentials
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     c.cfg.ClientID,
			"client_secret": c.cfg.ClientSecret,
		}).
		Post(c.url(tokenPath))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token request failed")
		return TokenCache{}, fmt.Errorf("call catkissfish token api: %w", err)
	}

	var data tokenData
	if err := c.decode(resp, &data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token response rejected")
		return TokenCache{}, fmt.Errorf("obtain catkissfish token: %w", err)
	}
	if data.ClientToken == "" {
		return TokenCache{}, fmt.Errorf("obtain catkissfish token: empty client_token")
	}

	c.log.Info("obtained catkissfish token", logger.Duration("ttl", c.cfg.TokenTTL()))
	return TokenCache{
		Token:     data.ClientToken,
		ExpiresAt: c.now().Add(c.cfg.TokenTTL()),
	}, nil
}

// GetOrderDetail fetches one factory order by its opaque id.
func (c *Client) GetOrderDetail(ctx context.Context, orderID, token string) (*order.FactoryOrder, error) {
	ctx, span := tracer.Start(ctx, "catkissfish.get_order_detail")
	defer span.End()
	span.SetAttributes(attribute.String("factory_order_id", orderID))

	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json;charset=utf-8").
		SetHeader("access_token", token).
		SetQueryParam("id", orderID).
		Get(c.url(orderDetailPath))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order detail request failed")
		return nil, fmt.Errorf("call catkissfish order detail api: %w", err)
	}

	var data orderDetailData
	if err := c.decode(resp, &data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order detail rejected")
		return nil, fmt.Errorf("fetch catkissfish order %s: %w", orderID, err)
	}

	out := data.toDomain()
	span.SetAttributes(attribute.Int("designs", len(out.DesignHistory)))
	return out, nil
}

// decode kiểm tra HTTP status, code trong envelope rồi mới parse data
func (c *Client) decode(resp *resty.Response, into any) error {
	if err := transport.CheckStatus(resp); err != nil {
		c.log.Error("catkissfish http error",
			logger.Int("status", resp.StatusCode()),
			logger.String("url", resp.Request.URL))
		return err
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.IsSuccess() {
		apiErr := env.apiError()
		c.log.Error("catkissfish api error",
			logger.String("code", apiErr.Code),
			logger.String("message", apiErr.Message))
		return apiErr
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("decode response: data is empty")
	}
	if err := json.Unmarshal(env.Data, into); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + path
}
