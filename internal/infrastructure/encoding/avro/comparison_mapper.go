package avro

import (
	"fmt"
	"time"

	domain "order_compare/internal/domain/comparison"
)

// ComparisonCodec encodes comparison summaries for the event stream.
type ComparisonCodec struct {
	enc *Encoder
}

func NewComparisonCodec() (*ComparisonCodec, error) {
	enc, err := NewEncoder(ComparisonSummarySchema)
	if err != nil {
		return nil, err
	}
	return &ComparisonCodec{enc: enc}, nil
}

func (c *ComparisonCodec) Encode(s domain.Summary) ([]byte, error) {
	return c.enc.EncodeNative(toSummaryNative(s))
}

func (c *ComparisonCodec) Decode(binary []byte) (domain.Summary, error) {
	native, err := c.enc.DecodeNative(binary)
	if err != nil {
		return domain.Summary{}, err
	}
	m, ok := native.(map[string]any)
	if !ok {
		return domain.Summary{}, fmt.Errorf("avro record is %T, want map", native)
	}
	return fromSummaryNative(m)
}

// goavro cần union được bọc dạng {"string": v}
func toSummaryNative(s domain.Summary) map[string]any {
	rows := make([]any, len(s.Rows))
	for i, r := range s.Rows {
		rows[i] = map[string]any{
			"factory_product":  r.FactoryProduct,
			"factory_size":     r.FactorySize,
			"factory_quantity": r.FactoryQuantity,
			"shop_product":     r.ShopProduct,
			"shop_size":        r.ShopSize,
			"shop_quantity":    r.ShopQuantity,
		}
	}

	return map[string]any{
		"id":               s.ID,
		"factory_order_id": s.FactoryOrderID,
		"shop_order_name":  s.ShopOrderName,
		"store_prefix":     s.StorePrefix,
		"factory_address":  optionalString(s.FactoryAddress),
		"shop_address":     optionalString(s.ShopAddress),
		"rows":             rows,
		"compared_at":      s.ComparedAt.UnixMilli(),
	}
}

func fromSummaryNative(m map[string]any) (domain.Summary, error) {
	out := domain.Summary{
		ID:             str(m["id"]),
		FactoryOrderID: str(m["factory_order_id"]),
		ShopOrderName:  str(m["shop_order_name"]),
		StorePrefix:    str(m["store_prefix"]),
		FactoryAddress: unionString(m["factory_address"]),
		ShopAddress:    unionString(m["shop_address"]),
	}

	millis, ok := m["compared_at"].(int64)
	if !ok {
		return domain.Summary{}, fmt.Errorf("compared_at is %T, want int64", m["compared_at"])
	}
	out.ComparedAt = time.UnixMilli(millis).UTC()

	rawRows, _ := m["rows"].([]any)
	out.Rows = make([]domain.SummaryRow, 0, len(rawRows))
	for _, raw := range rawRows {
		r, ok := raw.(map[string]any)
		if !ok {
			return domain.Summary{}, fmt.Errorf("row is %T, want map", raw)
		}
		out.Rows = append(out.Rows, domain.SummaryRow{
			FactoryProduct:  str(r["factory_product"]),
			FactorySize:     str(r["factory_size"]),
			FactoryQuantity: str(r["factory_quantity"]),
			ShopProduct:     str(r["shop_product"]),
			ShopSize:        str(r["shop_size"]),
			ShopQuantity:    str(r["shop_quantity"]),
		})
	}
	return out, nil
}

func optionalString(s string) any {
	if s == "" {
		return nil
	}
	return map[string]any{"string": s}
}

func unionString(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	return str(m["string"])
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
