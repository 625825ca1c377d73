package transport

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Config cấu hình transport dùng chung cho các vendor client
type Config struct {
	Timeout             time.Duration
	DialTimeout         time.Duration
	KeepAlive           time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	UserAgent           string
}

func (c Config) withDefaults() Config {
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.KeepAlive == 0 {
		c.KeepAlive = 30 * time.Second
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 100
	}
	if c.MaxIdleConnsPerHost == 0 {
		c.MaxIdleConnsPerHost = 10
	}
	if c.UserAgent == "" {
		c.UserAgent = "order-compare/1.0"
	}
	return c
}

// NewHTTPClient builds the tuned *http.Client shared by the vendor clients.
func NewHTTPClient(cfg Config) *http.Client {
	cfg = cfg.withDefaults()
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   cfg.DialTimeout,
				KeepAlive: cfg.KeepAlive,
			}).DialContext,
			MaxIdleConns:        cfg.MaxIdleConns,
			MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		},
	}
}

// NewRestClient wraps the tuned client in resty. Retries stay disabled, a
// failed call is reported once.
func NewRestClient(cfg Config) *resty.Client {
	cfg = cfg.withDefaults()
	return resty.NewWithClient(NewHTTPClient(cfg)).
		SetRetryCount(0).
		SetHeader("User-Agent", cfg.UserAgent)
}

// StatusError is returned when a vendor answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d: %s", e.StatusCode, truncate(e.Body, 512))
}

// CheckStatus converts a non-2xx resty response into a *StatusError.
func CheckStatus(resp *resty.Response) error {
	if resp.StatusCode() >= 200 && resp.StatusCode() < 300 {
		return nil
	}
	return &StatusError{StatusCode: resp.StatusCode(), Body: resp.String()}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
