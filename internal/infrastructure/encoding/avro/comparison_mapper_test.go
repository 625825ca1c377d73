package avro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "order_compare/internal/domain/comparison"
)

func TestComparisonCodec_EncodeDecode(t *testing.T) {
	codec, err := NewComparisonCodec()
	require.NoError(t, err)

	in := domain.Summary{
		ID:             "c1",
		FactoryOrderID: "2024091112121444123628",
		ShopOrderName:  "G61226",
		StorePrefix:    "G",
		FactoryAddress: "Str 1 10115",
		Rows: []domain.SummaryRow{
			{FactoryProduct: "Mug", FactorySize: "L", FactoryQuantity: "2", ShopProduct: "N/A", ShopSize: "N/A", ShopQuantity: "N/A"},
		},
		ComparedAt: time.Date(2024, 9, 11, 12, 0, 0, 0, time.UTC),
	}

	binary, err := codec.Encode(in)
	require.NoError(t, err)
	assert.NotEmpty(t, binary)

	out, err := codec.Decode(binary)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestComparisonCodec_DecodeGarbage(t *testing.T) {
	codec, err := NewComparisonCodec()
	require.NoError(t, err)

	_, err = codec.Decode([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}

func TestNewEncoder_InvalidSchema(t *testing.T) {
	_, err := NewEncoder(`{"type": "record"}`)
	assert.Error(t, err)
}
