package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "order_compare/internal/application/comparison"
	"order_compare/internal/config"
	"order_compare/pkg/logger"
)

func TestNew_MinimalConfig(t *testing.T) {
	cfg := &config.Config{
		CatKissFish: config.CatKissFishConfig{BaseURL: "http://factory", TokenTTLSeconds: 7000, TimeoutSeconds: 5},
		Shopify: config.ShopifyConfig{
			Stores: map[string]config.StoreConfig{"G": {Prefix: "G", URL: "g.myshopify.com"}},
		},
		Compare: config.CompareConfig{ReverseDesignHistory: true, DropLastEffectImage: true},
	}

	c, err := New(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.History)
	assert.Nil(t, c.Codec)
	assert.Equal(t, []string{"G"}, c.Service.Stores())

	_, err = c.Service.Comparison(context.Background(), "x")
	assert.ErrorIs(t, err, app.ErrHistoryDisabled)
}
