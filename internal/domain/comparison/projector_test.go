package comparison

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order_compare/internal/domain/order"
)

func factoryWithDesigns(names ...string) *order.FactoryOrder {
	designs := make([]order.Design, 0, len(names))
	for _, n := range names {
		designs = append(designs, order.Design{
			ProductName:    n,
			SizeName:       "M",
			Quantity:       "1",
			EffectImageURL: n + "-front," + n + "-back," + n + "-mockup",
		})
	}
	return &order.FactoryOrder{
		ID:            "2024091112121444123628",
		Address:       order.Address{UserName: "Ada", DetailAddress: "Main St 1", PostalCode: "10115"},
		DesignHistory: designs,
	}
}

func shopWithItems(names ...string) *order.ShopOrder {
	items := make([]order.LineItem, 0, len(names))
	for _, n := range names {
		items = append(items, order.LineItem{Name: n, VariantTitle: "M", Quantity: "1", VariantID: 7})
	}
	return &order.ShopOrder{
		OrderNumber:     "61226",
		LineItems:       items,
		Customer:        order.Customer{FirstName: "Ada", LastName: "L"},
		ShippingAddress: order.ShippingAddress{Address1: "Main St 1", Zip: "10115"},
	}
}

func TestProject_PadsShopSide(t *testing.T) {
	res := Project(factoryWithDesigns("D1", "D2", "D3"), shopWithItems("S1"), nil, DefaultProjectionOptions())

	require.Len(t, res.Rows, 3)
	assert.Equal(t, "S1", res.Rows[0].Shop.Name)
	for _, row := range res.Rows[1:] {
		assert.True(t, row.Shop.Placeholder)
		assert.Equal(t, order.NotAvailable, row.Shop.Name)
		assert.Equal(t, order.NotAvailable, row.Shop.Size)
		assert.Equal(t, order.NotAvailable, row.Shop.Quantity)
		assert.Empty(t, row.Shop.Images)
	}
}

func TestProject_PadsFactorySide(t *testing.T) {
	res := Project(factoryWithDesigns("D1"), shopWithItems("S1", "S2"), nil, DefaultProjectionOptions())

	require.Len(t, res.Rows, 2)
	assert.False(t, res.Rows[0].Factory.Placeholder)
	assert.True(t, res.Rows[1].Factory.Placeholder)
	assert.Equal(t, 1, res.Rows[1].Index)
}

func TestProject_ReversesDesignHistory(t *testing.T) {
	res := Project(factoryWithDesigns("D1", "D2", "D3"), shopWithItems("S1"), nil, DefaultProjectionOptions())

	got := []string{res.Rows[0].Factory.Name, res.Rows[1].Factory.Name, res.Rows[2].Factory.Name}
	assert.Equal(t, []string{"D3", "D2", "D1"}, got)
}

func TestProject_KeepsOrderWhenReverseDisabled(t *testing.T) {
	opts := ProjectionOptions{ReverseDesignHistory: false, DropLastEffectImage: false}
	res := Project(factoryWithDesigns("D1", "D2"), shopWithItems("S1"), nil, opts)

	assert.Equal(t, "D1", res.Rows[0].Factory.Name)
	assert.Equal(t, []string{"D1-front", "D1-back", "D1-mockup"}, res.Rows[0].Factory.Images)
}

func TestProject_DropsLastEffectImage(t *testing.T) {
	res := Project(factoryWithDesigns("D1"), shopWithItems("S1"), nil, DefaultProjectionOptions())

	assert.Equal(t, []string{"D1-front", "D1-back"}, res.Rows[0].Factory.Images)
}

func TestProject_ShopImagesAndSides(t *testing.T) {
	shop := shopWithItems("S1", "S2")
	shop.LineItems[1].Properties = []order.Property{{Name: "Pet name", Value: "Mochi"}}
	images := map[int][]string{1: {"https://cdn/variant.png"}}

	res := Project(factoryWithDesigns("D1", "D2"), shop, images, DefaultProjectionOptions())

	assert.Empty(t, res.Rows[0].Shop.Images)
	assert.Equal(t, []string{"https://cdn/variant.png"}, res.Rows[1].Shop.Images)
	assert.Equal(t, "Mochi", res.Rows[1].Shop.Properties[0].Value)
	assert.Equal(t, "Ada L", res.Shop.CustomerName)
	assert.Equal(t, "61226", res.Shop.OrderRef)
	assert.Equal(t, "Ada", res.Factory.CustomerName)
	assert.Equal(t, "2024091112121444123628", res.Factory.OrderRef)
}

func TestEffectImages(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		dropLast bool
		want     []string
	}{
		{name: "drop last of three", raw: "a,b,c", dropLast: true, want: []string{"a", "b"}},
		{name: "empty", raw: "", dropLast: true, want: []string{}},
		{name: "single dropped", raw: "a", dropLast: true, want: []string{}},
		{name: "blanks and spaces", raw: " a , ,b,", dropLast: false, want: []string{"a", "b"}},
		{name: "keep all", raw: "a,b,c", dropLast: false, want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectImages(tt.raw, tt.dropLast))
		})
	}
}

func TestSummarize(t *testing.T) {
	res := Project(factoryWithDesigns("D1", "D2"), shopWithItems("S1"), nil, DefaultProjectionOptions())
	res.ID = "cmp-1"
	res.Pair = order.OrderPair{FactoryOrderID: "2024", ShopOrderName: "G61226", StorePrefix: "G"}
	res.ComparedAt = time.Date(2024, 9, 11, 12, 0, 0, 0, time.UTC)

	s := Summarize(&res)

	assert.Equal(t, "cmp-1", s.ID)
	assert.Equal(t, "G", s.StorePrefix)
	assert.Equal(t, "Main St 1 10115", s.ShopAddress)
	require.Len(t, s.Rows, 2)
	assert.Equal(t, "D2", s.Rows[0].FactoryProduct)
	assert.Equal(t, "S1", s.Rows[0].ShopProduct)
	assert.Equal(t, order.NotAvailable, s.Rows[1].ShopProduct)
}
