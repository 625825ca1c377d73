package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "order_compare/internal/domain/comparison"
	"order_compare/internal/domain/order"
)

func TestPairs(t *testing.T) {
	md := Pairs(
		[]order.OrderPair{{FactoryOrderID: "F1", ShopOrderName: "G1", StorePrefix: "G"}},
		[]order.ParseWarning{{Line: 2, Text: "x", Reason: "invalid format"}},
	)

	assert.Contains(t, md, "- 1: F1 vs G1 (Store G)")
	assert.Contains(t, md, "## Warnings")
	assert.Contains(t, md, "invalid format")

	assert.Contains(t, Pairs(nil, nil), "No valid order pairs found")
}

func TestComparison(t *testing.T) {
	r := &domain.Result{
		ID:      "c1",
		Pair:    order.OrderPair{FactoryOrderID: "F1", ShopOrderName: "G1", StorePrefix: "G"},
		Factory: domain.Side{OrderRef: "F1", CustomerName: "Max"},
		Shop:    domain.Side{OrderRef: "61226", CustomerName: "Anna Schmidt"},
		Rows: []domain.Row{{
			Factory: domain.ProductSlot{Name: "Mug | XL", Size: "L", Quantity: "1", Images: []string{"a"}},
			Shop:    domain.ProductSlot{Name: "Mug", Size: "L", Quantity: "1", Properties: []order.Property{{Name: "Text", Value: "Hi"}}},
		}},
		ComparedAt: time.Date(2024, 9, 11, 12, 0, 0, 0, time.UTC),
	}

	md := Comparison(r)

	assert.Contains(t, md, "# F1 vs G1 (Store G)")
	assert.Contains(t, md, "| Customer | Max | Anna Schmidt |")
	assert.Contains(t, md, `| Name | Mug \| XL | Mug |`)
	assert.Contains(t, md, "| Text |  | Hi |")
	assert.Contains(t, md, "_Comparison c1 at 2024-09-11 12:00:00 UTC_")
}

func TestShopOrder(t *testing.T) {
	md := ShopOrder(&order.ShopOrder{
		Name:        "G1",
		OrderNumber: "1",
		LineItems:   []order.LineItem{{Name: "Mug", VariantTitle: "L", Quantity: "2"}, {Name: "Cap"}},
	}, map[int][]string{0: {"https://cdn/mug.png"}})

	assert.Contains(t, md, "- Image: https://cdn/mug.png")
	assert.Contains(t, md, "## 2. Cap")
	assert.Contains(t, md, "- Image: none")
}

func TestFactoryOrder(t *testing.T) {
	md := FactoryOrder(&order.FactoryOrder{
		ID:            "F1",
		Amount:        "3",
		DesignHistory: []order.Design{{ProductName: "Mug", SizeName: "L", Quantity: "1", EffectImageURL: "a,b"}},
	})

	assert.Contains(t, md, "# Factory order F1")
	assert.Contains(t, md, "- a\n- b\n")
}

func TestRender_Plain(t *testing.T) {
	out, err := Render("# Title", true)
	require.NoError(t, err)
	assert.Equal(t, "# Title", out)

	out, err = Render("# Title", false)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}
