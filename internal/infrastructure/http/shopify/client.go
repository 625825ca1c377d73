package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"order_compare/internal/config"
	"order_compare/internal/domain/order"
	"order_compare/internal/infrastructure/http/transport"
	"order_compare/pkg/logger"
)

const accessTokenHeader = "X-Shopify-Access-Token"

// ErrAllItemsExcluded: Shopify trả order nhưng mọi line item đều là shipping/versand.
var ErrAllItemsExcluded = errors.New("all line items of the shopify order were excluded")

var tracer = otel.Tracer("order_compare/shopify")

type store struct {
	baseURL string
	token   string
}

// Client talks to the Shopify Admin REST API of every configured storefront.
type Client struct {
	rest       *resty.Client
	apiVersion string
	stores     map[string]store
	excluded   []string
	log        logger.Logger
}

func NewClient(cfg config.ShopifyConfig, log logger.Logger) *Client {
	stores := make(map[string]store, len(cfg.Stores))
	for prefix, sc := range cfg.Stores {
		stores[strings.ToUpper(prefix)] = store{
			baseURL: normalizeURL(sc.URL),
			token:   sc.AccessToken,
		}
	}

	version := cfg.APIVersion
	if version == "" {
		version = "2023-10"
	}

	return &Client{
		rest:       transport.NewRestClient(transport.Config{Timeout: cfg.Timeout()}),
		apiVersion: version,
		stores:     stores,
		excluded:   cfg.ExcludedKeywords,
		log:        log.WithFields(logger.String("vendor", "shopify")),
	}
}

func (c *Client) Has(prefix string) bool {
	_, ok := c.stores[strings.ToUpper(prefix)]
	return ok
}

func (c *Client) Prefixes() []string {
	out := make([]string, 0, len(c.stores))
	for p := range c.stores {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// GetOrderByName looks an order up by its display name (e.g. "G61226") and
// returns the first match that still has line items after filtering.
func (c *Client) GetOrderByName(ctx context.Context, name, prefix string) (*order.ShopOrder, error) {
	ctx, span := tracer.Start(ctx, "shopify.get_order_by_name")
	defer span.End()
	span.SetAttributes(attribute.String("shop_order_name", name), attribute.String("store_prefix", prefix))

	var body ordersResponse
	err := c.get(ctx, prefix, "orders.json", map[string]string{"name": name}, &body)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("fetch shopify order %s: %w", name, err)
	}

	if len(body.Orders) == 0 {
		return nil, fmt.Errorf("shopify order %s: %w", name, order.ErrOrderNotFound)
	}

	for i := range body.Orders {
		out := body.Orders[i].toDomain(c.excluded)
		if len(out.LineItems) > 0 {
			return out, nil
		}
	}

	c.log.Warn("shopify order has only excluded line items", logger.String("name", name))
	return nil, fmt.Errorf("shopify order %s: %w", name, ErrAllItemsExcluded)
}

// GetOrderByID fetches an order by its numeric id. Line items are filtered
// the same way but an order left empty is still returned.
func (c *Client) GetOrderByID(ctx context.Context, id int64, prefix string) (*order.ShopOrder, error) {
	ctx, span := tracer.Start(ctx, "shopify.get_order_by_id")
	defer span.End()

	var body orderResponse
	if err := c.get(ctx, prefix, "orders/"+strconv.FormatInt(id, 10)+".json", nil, &body); err != nil {
		var statusErr *transport.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
			return nil, fmt.Errorf("shopify order %d: %w", id, order.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("fetch shopify order %d: %w", id, err)
	}
	if body.Order == nil {
		return nil, fmt.Errorf("shopify order %d: %w", id, order.ErrOrderNotFound)
	}
	return body.Order.toDomain(c.excluded), nil
}

// GetVariantImage resolves the image of a variant. A variant without its own
// image falls back to the first image of its product; "" means no image.
func (c *Client) GetVariantImage(ctx context.Context, variantID int64, prefix string) (string, error) {
	ctx, span := tracer.Start(ctx, "shopify.get_variant_image")
	defer span.End()
	span.SetAttributes(attribute.Int64("variant_id", variantID))

	var v variantResponse
	if err := c.get(ctx, prefix, "variants/"+strconv.FormatInt(variantID, 10)+".json", nil, &v); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("fetch shopify variant %d: %w", variantID, err)
	}

	productID := v.Variant.ProductID
	imageID := v.Variant.ImageID

	switch {
	case productID != nil && imageID != nil:
		var img imageResponse
		path := fmt.Sprintf("products/%d/images/%d.json", *productID, *imageID)
		if err := c.get(ctx, prefix, path, nil, &img); err != nil {
			return "", fmt.Errorf("fetch shopify image %d: %w", *imageID, err)
		}
		return img.Image.Src, nil
	case productID != nil:
		return c.GetProductImage(ctx, *productID, prefix)
	default:
		return "", nil
	}
}

// GetProductImage returns the first image of the product or "".
func (c *Client) GetProductImage(ctx context.Context, productID int64, prefix string) (string, error) {
	var p productResponse
	if err := c.get(ctx, prefix, "products/"+strconv.FormatInt(productID, 10)+".json", nil, &p); err != nil {
		return "", fmt.Errorf("fetch shopify product %d: %w", productID, err)
	}
	if len(p.Product.Images) == 0 {
		return "", nil
	}
	return p.Product.Images[0].Src, nil
}

func (c *Client) get(ctx context.Context, prefix, path string, query map[string]string, into any) error {
	st, ok := c.stores[strings.ToUpper(prefix)]
	if !ok {
		return fmt.Errorf("%w: %q", order.ErrUnknownStore, prefix)
	}

	url := fmt.Sprintf("%s/admin/api/%s/%s", st.baseURL, c.apiVersion, path)
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader(accessTokenHeader, st.token).
		SetHeader("Content-Type", "application/json").
		SetQueryParams(query).
		Get(url)
	if err != nil {
		return fmt.Errorf("call shopify: %w", err)
	}
	if err := transport.CheckStatus(resp); err != nil {
		c.log.Error("shopify http error",
			logger.Int("status", resp.StatusCode()),
			logger.String("path", path),
			logger.String("store", prefix))
		return err
	}

	if err := json.Unmarshal(resp.Body(), into); err != nil {
		return fmt.Errorf("decode shopify response: %w", err)
	}
	return nil
}

func normalizeURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return u
}
