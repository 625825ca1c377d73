package shopify

import (
	"encoding/json"
	"strconv"
	"strings"

	"order_compare/internal/domain/order"
)

type ordersResponse struct {
	Orders []orderData `json:"orders"`
}

type orderResponse struct {
	Order *orderData `json:"order"`
}

type orderData struct {
	ID              int64         `json:"id"`
	Name            *string       `json:"name"`
	OrderNumber     *int64        `json:"order_number"`
	LineItems       []lineItem    `json:"line_items"`
	Customer        *customer     `json:"customer"`
	ShippingAddress *shippingAddr `json:"shipping_address"`
}

type lineItem struct {
	Name         *string    `json:"name"`
	Title        *string    `json:"title"`
	VariantTitle *string    `json:"variant_title"`
	Quantity     *int       `json:"quantity"`
	VariantID    *int64     `json:"variant_id"`
	ProductID    *int64     `json:"product_id"`
	Properties   []property `json:"properties"`
}

type property struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

type customer struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type shippingAddr struct {
	Address1 *string `json:"address1"`
	Zip      *string `json:"zip"`
}

type variantResponse struct {
	Variant struct {
		ID        int64  `json:"id"`
		ImageID   *int64 `json:"image_id"`
		ProductID *int64 `json:"product_id"`
	} `json:"variant"`
}

type imageResponse struct {
	Image struct {
		Src string `json:"src"`
	} `json:"image"`
}

type productResponse struct {
	Product struct {
		Images []struct {
			Src string `json:"src"`
		} `json:"images"`
	} `json:"product"`
}

// toDomain chuyển order thô sang domain, bỏ các line item khớp keyword.
func (o *orderData) toDomain(excluded []string) *order.ShopOrder {
	out := &order.ShopOrder{
		ID:          o.ID,
		Name:        stringOr(o.Name, order.NotAvailable),
		OrderNumber: order.NotAvailable,
		LineItems:   make([]order.LineItem, 0, len(o.LineItems)),
	}
	if o.OrderNumber != nil {
		out.OrderNumber = strconv.FormatInt(*o.OrderNumber, 10)
	}

	if o.Customer != nil {
		out.Customer = order.Customer{
			FirstName: strings.TrimSpace(stringOr(o.Customer.FirstName, "")),
			LastName:  strings.TrimSpace(stringOr(o.Customer.LastName, "")),
		}
	}

	out.ShippingAddress = order.ShippingAddress{Address1: order.NotAvailable, Zip: order.NotAvailable}
	if o.ShippingAddress != nil {
		out.ShippingAddress = order.ShippingAddress{
			Address1: stringOr(o.ShippingAddress.Address1, order.NotAvailable),
			Zip:      stringOr(o.ShippingAddress.Zip, order.NotAvailable),
		}
	}

	for _, item := range o.LineItems {
		name := stringOr(item.Name, "")
		if isExcluded(name, excluded) {
			continue
		}
		out.LineItems = append(out.LineItems, item.toDomain())
	}
	return out
}

func (l *lineItem) toDomain() order.LineItem {
	item := order.LineItem{
		Name:         stringOr(l.Name, order.NotAvailable),
		Title:        stringOr(l.Title, order.NotAvailable),
		VariantTitle: stringOr(l.VariantTitle, order.NotAvailable),
		Quantity:     order.NotAvailable,
	}
	if l.Quantity != nil {
		item.Quantity = strconv.Itoa(*l.Quantity)
	}
	if l.VariantID != nil {
		item.VariantID = *l.VariantID
	}
	if l.ProductID != nil {
		item.ProductID = *l.ProductID
	}
	for _, p := range l.Properties {
		item.Properties = append(item.Properties, order.Property{Name: p.Name, Value: rawText(p.Value)})
	}
	return item
}

// isExcluded: so khớp substring, không phân biệt hoa thường
func isExcluded(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// rawText renders a property value, strings unquoted and anything else as JSON text.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
