package comparison

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("comparison not found")

// Summary is the image-free record of a comparison kept in history and
// carried on the event stream.
type Summary struct {
	ID             string       `json:"id"`
	FactoryOrderID string       `json:"factory_order_id"`
	ShopOrderName  string       `json:"shop_order_name"`
	StorePrefix    string       `json:"store_prefix"`
	FactoryAddress string       `json:"factory_address"`
	ShopAddress    string       `json:"shop_address"`
	Rows           []SummaryRow `json:"rows"`
	ComparedAt     time.Time    `json:"compared_at"`
}

type SummaryRow struct {
	FactoryProduct  string `json:"factory_product"`
	FactorySize     string `json:"factory_size"`
	FactoryQuantity string `json:"factory_quantity"`
	ShopProduct     string `json:"shop_product"`
	ShopSize        string `json:"shop_size"`
	ShopQuantity    string `json:"shop_quantity"`
}

func Summarize(r *Result) Summary {
	rows := make([]SummaryRow, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = SummaryRow{
			FactoryProduct:  row.Factory.Name,
			FactorySize:     row.Factory.Size,
			FactoryQuantity: row.Factory.Quantity,
			ShopProduct:     row.Shop.Name,
			ShopSize:        row.Shop.Size,
			ShopQuantity:    row.Shop.Quantity,
		}
	}

	return Summary{
		ID:             r.ID,
		FactoryOrderID: r.Pair.FactoryOrderID,
		ShopOrderName:  r.Pair.ShopOrderName,
		StorePrefix:    r.Pair.StorePrefix,
		FactoryAddress: r.Factory.DetailAddress + " " + r.Factory.PostalCode,
		ShopAddress:    r.Shop.DetailAddress + " " + r.Shop.PostalCode,
		Rows:           rows,
		ComparedAt:     r.ComparedAt,
	}
}
