package comparison

import (
	"strings"
	"time"

	"order_compare/internal/domain/order"
)

// ProjectionOptions name the two display rules the factory dashboard always
// applied. They are kept switchable until the product owner confirms them.
type ProjectionOptions struct {
	// ReverseDesignHistory lists factory designs newest first.
	ReverseDesignHistory bool
	// DropLastEffectImage hides the final entry of every effect image list.
	DropLastEffectImage bool
}

func DefaultProjectionOptions() ProjectionOptions {
	return ProjectionOptions{
		ReverseDesignHistory: true,
		DropLastEffectImage:  true,
	}
}

// ProductSlot is one product on one side of a comparison row.
type ProductSlot struct {
	Name        string           `json:"name"`
	Size        string           `json:"size"`
	Quantity    string           `json:"quantity"`
	Images      []string         `json:"images"`
	Properties  []order.Property `json:"properties,omitempty"`
	Placeholder bool             `json:"placeholder"`
}

func placeholderSlot() ProductSlot {
	return ProductSlot{
		Name:        order.NotAvailable,
		Size:        order.NotAvailable,
		Quantity:    order.NotAvailable,
		Images:      []string{},
		Placeholder: true,
	}
}

// Row pairs the factory and shop products found at the same position.
type Row struct {
	Index   int         `json:"index"`
	Factory ProductSlot `json:"factory"`
	Shop    ProductSlot `json:"shop"`
}

// Side is the order-level part of one vendor's view.
type Side struct {
	OrderRef      string `json:"order_ref"`
	CustomerName  string `json:"customer_name"`
	DetailAddress string `json:"detail_address"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country,omitempty"`
	Province      string `json:"province,omitempty"`
	City          string `json:"city,omitempty"`
}

type Result struct {
	ID         string          `json:"id"`
	Pair       order.OrderPair `json:"pair"`
	Factory    Side            `json:"factory"`
	Shop       Side            `json:"shop"`
	Rows       []Row           `json:"rows"`
	ComparedAt time.Time       `json:"compared_at"`
}

// Project aligns a factory order and a shop order into index-matched rows.
// shopImages maps a shop line item index to its resolved variant image URLs.
// The shorter side is padded with N/A placeholders.
func Project(factory *order.FactoryOrder, shop *order.ShopOrder, shopImages map[int][]string, opts ProjectionOptions) Result {
	factorySlots := factoryProducts(factory.DesignHistory, opts)
	shopSlots := shopProducts(shop.LineItems, shopImages)

	n := max(len(factorySlots), len(shopSlots))
	factorySlots = pad(factorySlots, n)
	shopSlots = pad(shopSlots, n)

	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		rows[i] = Row{Index: i, Factory: factorySlots[i], Shop: shopSlots[i]}
	}

	return Result{
		Factory: Side{
			OrderRef:      factory.ID,
			CustomerName:  factory.Address.UserName,
			DetailAddress: factory.Address.DetailAddress,
			PostalCode:    factory.Address.PostalCode,
			Country:       factory.Address.Country,
			Province:      factory.Address.Province,
			City:          factory.Address.City,
		},
		Shop: Side{
			OrderRef:      shop.OrderNumber,
			CustomerName:  shop.Customer.FullName(),
			DetailAddress: shop.ShippingAddress.Address1,
			PostalCode:    shop.ShippingAddress.Zip,
		},
		Rows: rows,
	}
}

func factoryProducts(designs []order.Design, opts ProjectionOptions) []ProductSlot {
	slots := make([]ProductSlot, 0, len(designs))
	for i := range designs {
		d := designs[i]
		if opts.ReverseDesignHistory {
			d = designs[len(designs)-1-i]
		}
		slots = append(slots, ProductSlot{
			Name:     d.ProductName,
			Size:     d.SizeName,
			Quantity: d.Quantity,
			Images:   EffectImages(d.EffectImageURL, opts.DropLastEffectImage),
		})
	}
	return slots
}

func shopProducts(items []order.LineItem, images map[int][]string) []ProductSlot {
	slots := make([]ProductSlot, 0, len(items))
	for i, item := range items {
		imgs := images[i]
		if imgs == nil {
			imgs = []string{}
		}
		slots = append(slots, ProductSlot{
			Name:       item.Name,
			Size:       item.VariantTitle,
			Quantity:   item.Quantity,
			Images:     imgs,
			Properties: item.Properties,
		})
	}
	return slots
}

// EffectImages splits a comma separated URL list, dropping blanks. With
// dropLast the final URL is removed.
func EffectImages(raw string, dropLast bool) []string {
	urls := []string{}
	for _, u := range strings.Split(raw, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if dropLast && len(urls) > 0 {
		urls = urls[:len(urls)-1]
	}
	return urls
}

func pad(slots []ProductSlot, n int) []ProductSlot {
	for len(slots) < n {
		slots = append(slots, placeholderSlot())
	}
	return slots
}
