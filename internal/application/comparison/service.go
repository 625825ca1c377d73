package comparison

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	domain "order_compare/internal/domain/comparison"
	"order_compare/internal/domain/order"
	"order_compare/pkg/logger"
)

// ErrHistoryDisabled is returned by Comparison when no history store is wired.
var ErrHistoryDisabled = errors.New("comparison history is disabled")

var tracer = otel.Tracer("order_compare/comparison")

// TokenProvider trả về access token còn hạn của Cat Kiss Fish.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type FactoryOrderFetcher interface {
	GetOrderDetail(ctx context.Context, orderID, token string) (*order.FactoryOrder, error)
}

// ShopOrderFetcher abstract Shopify client để dễ test.
type ShopOrderFetcher interface {
	order.StoreSet
	GetOrderByName(ctx context.Context, name, prefix string) (*order.ShopOrder, error)
	GetOrderByID(ctx context.Context, id int64, prefix string) (*order.ShopOrder, error)
	GetVariantImage(ctx context.Context, variantID int64, prefix string) (string, error)
}

// Recorder nhận summary sau mỗi lần so sánh (Kafka producer hoặc Postgres).
type Recorder interface {
	RecordComparison(ctx context.Context, summary domain.Summary) error
}

type HistoryReader interface {
	FindByID(ctx context.Context, id string) (*domain.Summary, error)
}

type Option func(*Service)

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithHistory(h HistoryReader) Option {
	return func(s *Service) { s.history = h }
}

func WithProjectionOptions(opts domain.ProjectionOptions) Option {
	return func(s *Service) { s.projection = opts }
}

type Service struct {
	tokens     TokenProvider
	factory    FactoryOrderFetcher
	shop       ShopOrderFetcher
	recorder   Recorder
	history    HistoryReader
	projection domain.ProjectionOptions
	log        logger.Logger
	now        func() time.Time
}

func NewService(tokens TokenProvider, factory FactoryOrderFetcher, shop ShopOrderFetcher, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		tokens:     tokens,
		factory:    factory,
		shop:       shop,
		projection: domain.DefaultProjectionOptions(),
		log:        log,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stores lists the configured store prefixes.
func (s *Service) Stores() []string {
	return s.shop.Prefixes()
}

func (s *Service) ParsePairs(input string) ([]order.OrderPair, []order.ParseWarning) {
	return order.ParsePairs(input, s.shop)
}

func (s *Service) NewPair(factoryOrderID, shopOrderName string) (order.OrderPair, error) {
	return order.NewOrderPair(factoryOrderID, shopOrderName, s.shop)
}

// CompareOrders fetches both orders of the pair and projects them into rows.
// Either fetch failing fails the whole comparison. A missing variant image
// only leaves that row without images.
func (s *Service) CompareOrders(ctx context.Context, pair order.OrderPair) (*domain.Result, error) {
	ctx, span := tracer.Start(ctx, "comparison.compare_orders")
	defer span.End()
	span.SetAttributes(
		attribute.String("factory_order_id", pair.FactoryOrderID),
		attribute.String("shop_order_name", pair.ShopOrderName),
		attribute.String("store_prefix", pair.StorePrefix),
	)

	log := s.log.WithContext(ctx).WithFields(
		logger.String("factory_order_id", pair.FactoryOrderID),
		logger.String("shop_order_name", pair.ShopOrderName),
	)

	factory, err := s.FactoryOrder(ctx, pair.FactoryOrderID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "factory order")
		return nil, err
	}

	shop, err := s.shop.GetOrderByName(ctx, pair.ShopOrderName, pair.StorePrefix)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "shop order")
		return nil, fmt.Errorf("fetch shop order: %w", err)
	}

	images := s.variantImages(ctx, log, shop, pair.StorePrefix)

	result := domain.Project(factory, shop, images, s.projection)
	result.ID = uuid.NewString()
	result.Pair = pair
	result.ComparedAt = s.now().UTC()

	log.Info("orders compared",
		logger.String("comparison_id", result.ID),
		logger.Int("rows", len(result.Rows)))

	if s.recorder != nil {
		if err := s.recorder.RecordComparison(ctx, domain.Summarize(&result)); err != nil {
			log.Warn("record comparison failed", logger.Error(err))
		}
	}

	return &result, nil
}

// FactoryOrder fetches a single Cat Kiss Fish order with a cached token.
func (s *Service) FactoryOrder(ctx context.Context, id string) (*order.FactoryOrder, error) {
	if id == "" {
		return nil, order.ErrMissingOrderRef
	}

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("get factory token: %w", err)
	}

	factory, err := s.factory.GetOrderDetail(ctx, id, token)
	if err != nil {
		return nil, fmt.Errorf("fetch factory order: %w", err)
	}
	return factory, nil
}

// ShopOrderByName looks a Shopify order up by name, the store is taken from
// the name's first character.
func (s *Service) ShopOrderByName(ctx context.Context, name string) (*order.ShopOrder, map[int][]string, error) {
	prefix := order.StorePrefix(name)
	if !s.shop.Has(prefix) {
		return nil, nil, fmt.Errorf("%w: %q", order.ErrUnknownStore, prefix)
	}

	shop, err := s.shop.GetOrderByName(ctx, name, prefix)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch shop order: %w", err)
	}

	log := s.log.WithContext(ctx).WithFields(logger.String("shop_order_name", name))
	return shop, s.variantImages(ctx, log, shop, prefix), nil
}

// ShopOrderByID looks a Shopify order up by numeric id and resolves the
// image of every line item.
func (s *Service) ShopOrderByID(ctx context.Context, id int64, prefix string) (*order.ShopOrder, map[int][]string, error) {
	if !s.shop.Has(prefix) {
		return nil, nil, fmt.Errorf("%w: %q", order.ErrUnknownStore, prefix)
	}

	shop, err := s.shop.GetOrderByID(ctx, id, prefix)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch shop order: %w", err)
	}

	log := s.log.WithContext(ctx).WithFields(logger.Int64("shop_order_id", id))
	return shop, s.variantImages(ctx, log, shop, prefix), nil
}

// Comparison returns a recorded comparison summary.
func (s *Service) Comparison(ctx context.Context, id string) (*domain.Summary, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.FindByID(ctx, id)
}

func (s *Service) variantImages(ctx context.Context, log logger.Logger, shop *order.ShopOrder, prefix string) map[int][]string {
	images := make(map[int][]string, len(shop.LineItems))
	for i, item := range shop.LineItems {
		if item.VariantID == 0 {
			continue
		}
		src, err := s.shop.GetVariantImage(ctx, item.VariantID, prefix)
		if err != nil {
			log.Warn("variant image lookup failed",
				logger.Int64("variant_id", item.VariantID),
				logger.Error(err))
			continue
		}
		if src != "" {
			images[i] = []string{src}
		}
	}
	return images
}
