package view

import (
	"bytes"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "order_compare/internal/domain/comparison"
	"order_compare/internal/domain/order"
)

func sampleResult() *domain.Result {
	return &domain.Result{
		ID:   "c1",
		Pair: order.OrderPair{FactoryOrderID: "F1", ShopOrderName: "G61226", StorePrefix: "G"},
		Rows: []domain.Row{
			{
				Index:   0,
				Factory: domain.ProductSlot{Name: "Mug", Size: "L", Quantity: "1", Images: []string{"a", "b", "c"}},
				Shop:    domain.ProductSlot{Name: "Mug", Size: "L", Quantity: "1", Images: []string{"s"}},
			},
			{
				Index:   1,
				Factory: domain.ProductSlot{Name: "Shirt", Size: "M", Quantity: "2", Images: []string{}},
				Shop:    domain.ProductSlot{Name: order.NotAvailable, Size: order.NotAvailable, Quantity: order.NotAvailable, Images: []string{}, Placeholder: true},
			},
		},
	}
}

func TestNewComparePage_ImageBrowser(t *testing.T) {
	query := url.Values{"factory": {"F1"}, "shop": {"G61226"}, "img0": {"1"}}

	page := NewComparePage(sampleResult(), query)

	require.Len(t, page.Rows, 2)
	b := page.Rows[0].Factory.Browser
	require.NotNil(t, b)
	assert.Equal(t, "b", b.Selected)
	assert.Equal(t, 2, b.Position)
	assert.Equal(t, 3, b.Total)
	assert.Equal(t, "/compare?factory=F1&img0=0&shop=G61226", b.PrevURL)
	assert.Equal(t, "/compare?factory=F1&img0=2&shop=G61226", b.NextURL)
	require.Len(t, b.Options, 3)
	assert.True(t, b.Options[1].Selected)
	assert.Nil(t, page.Rows[1].Factory.Browser)
	assert.True(t, page.Rows[1].Shop.Placeholder)
	assert.Equal(t, "F1 vs G61226", page.Title)

	// query gốc không bị sửa
	assert.Equal(t, "1", query.Get("img0"))
}

func TestNewComparePage_OutOfRangeIndex(t *testing.T) {
	page := NewComparePage(sampleResult(), url.Values{"img0": {"9"}})

	b := page.Rows[0].Factory.Browser
	assert.Equal(t, "a", b.Selected)
	assert.Empty(t, b.PrevURL)
	assert.NotEmpty(t, b.NextURL)
}

func TestNewIndexPage(t *testing.T) {
	pairs := []order.OrderPair{{FactoryOrderID: "F1", ShopOrderName: "G1", StorePrefix: "G"}}
	warnings := []order.ParseWarning{{Line: 2, Text: "bad", Reason: "invalid format"}}

	page := NewIndexPage("F1 G1\nbad", []string{"G"}, pairs, warnings)

	require.Len(t, page.Pairs, 1)
	assert.Equal(t, "1: F1 vs G1 (Store G)", page.Pairs[0].Label)
	assert.Equal(t, "/compare?factory=F1&shop=G1", page.Pairs[0].URL)
	require.Len(t, page.Warnings, 1)
	assert.Contains(t, page.Warnings[0], "invalid format")
}

func TestNewFactoryPage_ShowsAllEffectImages(t *testing.T) {
	page := NewFactoryPage(&order.FactoryOrder{
		ID:            "F1",
		DesignHistory: []order.Design{{ProductName: "Mug", EffectImageURL: "a, b,c"}},
	})

	require.Len(t, page.Designs, 1)
	assert.Equal(t, []string{"a", "b", "c"}, page.Designs[0].Images)
}

func TestTemplates_Render(t *testing.T) {
	tmpl := Templates()

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "compare.html", NewComparePage(sampleResult(), url.Values{})))
	assert.Contains(t, buf.String(), "Image 1 / 3")
	assert.Contains(t, buf.String(), "No effect images available.")

	buf.Reset()
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "index.html", NewIndexPage("", []string{"C", "G"}, nil, nil)))
	assert.Contains(t, buf.String(), "Stores: C, G")

	buf.Reset()
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "factory.html", FactoryPage{Error: "boom"}))
	assert.Contains(t, buf.String(), "boom")
}
