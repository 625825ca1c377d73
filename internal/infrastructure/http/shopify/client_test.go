package shopify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order_compare/internal/config"
	"order_compare/internal/domain/order"
	"order_compare/pkg/logger"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return NewClient(config.ShopifyConfig{
		APIVersion: "2023-10",
		Stores: map[string]config.StoreConfig{
			"G": {Prefix: "G", URL: server.URL, AccessToken: "shpat_g"},
		},
		ExcludedKeywords: []string{"versand", "shipping"},
		TimeoutSeconds:   5,
	}, logger.NewNop())
}

func TestGetOrderByName_FiltersShippingItems(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/api/2023-10/orders.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "G61226", r.URL.Query().Get("name"))
		assert.Equal(t, "shpat_g", r.Header.Get("X-Shopify-Access-Token"))
		_, _ = w.Write([]byte(`{"orders":[{
			"id": 501,
			"name": "G61226",
			"order_number": 61226,
			"customer": {"first_name": " Anna ", "last_name": "Schmidt"},
			"shipping_address": {"address1": "Hauptstr. 5", "zip": "80331"},
			"line_items": [
				{"name": "Poster - A3", "title": "Poster", "variant_title": "A3", "quantity": 2, "variant_id": 11, "product_id": 7,
				 "properties": [{"name": "Text", "value": "Hi"}, {"name": "Count", "value": 3}]},
				{"name": "Versand DHL", "quantity": 1},
				{"name": "Express SHIPPING", "quantity": 1}
			]
		}]}`))
	})
	client := newTestClient(t, mux)

	got, err := client.GetOrderByName(context.Background(), "G61226", "g")

	require.NoError(t, err)
	assert.Equal(t, int64(501), got.ID)
	assert.Equal(t, "61226", got.OrderNumber)
	assert.Equal(t, "Anna Schmidt", got.Customer.FullName())
	assert.Equal(t, "80331", got.ShippingAddress.Zip)
	require.Len(t, got.LineItems, 1)
	item := got.LineItems[0]
	assert.Equal(t, "A3", item.VariantTitle)
	assert.Equal(t, "2", item.Quantity)
	assert.Equal(t, int64(11), item.VariantID)
	assert.Equal(t, []order.Property{{Name: "Text", Value: "Hi"}, {Name: "Count", Value: "3"}}, item.Properties)
}

func TestGetOrderByName_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/api/2023-10/orders.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"orders":[]}`))
	})
	client := newTestClient(t, mux)

	_, err := client.GetOrderByName(context.Background(), "G1", "G")

	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestGetOrderByName_AllItemsExcluded(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/api/2023-10/orders.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"orders":[{"id":1,"line_items":[{"name":"Versandkosten","quantity":1}]}]}`))
	})
	client := newTestClient(t, mux)

	_, err := client.GetOrderByName(context.Background(), "G1", "G")

	assert.ErrorIs(t, err, ErrAllItemsExcluded)
}

func TestGetOrderByName_UnknownStore(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())

	_, err := client.GetOrderByName(context.Background(), "X1", "X")

	assert.ErrorIs(t, err, order.ErrUnknownStore)
}

func TestGetOrderByID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/api/2023-10/orders/501.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"order":{"id":501,"name":"G61226","line_items":[{"name":"Mug","quantity":1}]}}`))
	})
	client := newTestClient(t, mux)

	got, err := client.GetOrderByID(context.Background(), 501, "G")
	require.NoError(t, err)
	assert.Equal(t, "G61226", got.Name)
	assert.Equal(t, order.NotAvailable, got.LineItems[0].VariantTitle)

	_, err = client.GetOrderByID(context.Background(), 999, "G")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestGetVariantImage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/api/2023-10/variants/1.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"variant":{"id":1,"image_id":20,"product_id":7}}`))
	})
	mux.HandleFunc("/admin/api/2023-10/variants/2.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"variant":{"id":2,"image_id":null,"product_id":7}}`))
	})
	mux.HandleFunc("/admin/api/2023-10/variants/3.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"variant":{"id":3}}`))
	})
	mux.HandleFunc("/admin/api/2023-10/products/7/images/20.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"image":{"src":"https://cdn/variant.png"}}`))
	})
	mux.HandleFunc("/admin/api/2023-10/products/7.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"product":{"images":[{"src":"https://cdn/first.png"},{"src":"https://cdn/second.png"}]}}`))
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	src, err := client.GetVariantImage(ctx, 1, "G")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/variant.png", src)

	src, err = client.GetVariantImage(ctx, 2, "G")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/first.png", src)

	src, err = client.GetVariantImage(ctx, 3, "G")
	require.NoError(t, err)
	assert.Empty(t, src)
}

func TestGetProductImage_NoImages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/api/2023-10/products/9.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"product":{"images":[]}}`))
	})
	client := newTestClient(t, mux)

	src, err := client.GetProductImage(context.Background(), 9, "G")

	require.NoError(t, err)
	assert.Empty(t, src)
}

func TestStoresAndNormalizeURL(t *testing.T) {
	client := NewClient(config.ShopifyConfig{
		Stores: map[string]config.StoreConfig{
			"U": {URL: "u.myshopify.com/"},
			"C": {URL: "https://c.myshopify.com"},
		},
	}, logger.NewNop())

	assert.Equal(t, []string{"C", "U"}, client.Prefixes())
	assert.True(t, client.Has("u"))
	assert.False(t, client.Has("G"))
	assert.Equal(t, "https://u.myshopify.com", client.stores["U"].baseURL)
	assert.Equal(t, "https://c.myshopify.com", client.stores["C"].baseURL)
	assert.Equal(t, "2023-10", client.apiVersion)
}
