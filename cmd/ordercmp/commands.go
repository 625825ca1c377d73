package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"order_compare/internal/bootstrap"
	"order_compare/internal/config"
	"order_compare/internal/domain/order"
	"order_compare/internal/interfaces/report"
	"order_compare/pkg/logger"
)

type options struct {
	plain   bool
	timeout time.Duration
	file    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "ordercmp",
		Short:         "Compare Cat Kiss Fish factory orders with Shopify orders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.plain, "plain", false, "print raw markdown without terminal styling")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall timeout of a command")

	root.AddCommand(
		newParseCmd(opts),
		newCompareCmd(opts),
		newFactoryOrderCmd(opts),
		newShopOrderCmd(opts),
	)
	return root
}

func newParseCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Validate order pairs without calling any vendor",
		Long: `Reads "<factory order id> <shop order name>" pairs, one per line, from
--file or stdin and lists the valid pairs and the rejected lines.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			input, err := readInput(cmd.InOrStdin(), opts.file)
			if err != nil {
				return err
			}

			stores := make([]string, 0, len(cfg.Shopify.Stores))
			for p := range cfg.Shopify.Stores {
				stores = append(stores, p)
			}
			pairs, warnings := order.ParsePairs(input, order.NewPrefixSet(stores...))
			return render(cmd.OutOrStdout(), report.Pairs(pairs, warnings), opts.plain)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "file with one pair per line (default stdin)")
	return cmd
}

func newCompareCmd(opts *options) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "compare [factory-order-id shop-order-name]",
		Short: "Compare one pair, or every pair read from --file or stdin",
		Example: `  ordercmp compare 2024091112121444123628 G61226
  ordercmp compare --file pairs.txt`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected no arguments or exactly two, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withComponents(cmd, opts, func(ctx context.Context, c *bootstrap.Components, log logger.Logger) error {
				var pairs []order.OrderPair
				if len(args) == 2 {
					pair, err := c.Service.NewPair(args[0], args[1])
					if err != nil {
						return err
					}
					pairs = []order.OrderPair{pair}
				} else {
					input, err := readInput(cmd.InOrStdin(), opts.file)
					if err != nil {
						return err
					}
					var warnings []order.ParseWarning
					pairs, warnings = c.Service.ParsePairs(input)
					for _, w := range warnings {
						log.Warn("skipping line", logger.String("warning", w.String()))
					}
					if len(pairs) == 0 {
						return errors.New("no valid order pairs found")
					}
				}

				failed := 0
				for i, res := range c.Service.CompareBatch(ctx, pairs, workers) {
					if res.Err != nil {
						failed++
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.Pair.Label(i+1), res.Err)
						continue
					}
					log.Debug("pair compared",
						logger.String("pair", res.Pair.Label(i+1)),
						logger.Duration("took", res.Duration))
					if err := render(cmd.OutOrStdout(), report.Comparison(res.Result), opts.plain); err != nil {
						return err
					}
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d comparisons failed", failed, len(pairs))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "file with one pair per line (default stdin)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "pairs compared concurrently")
	return cmd
}

func newFactoryOrderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "factory-order <id>",
		Short: "Show a single Cat Kiss Fish order with all effect images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withComponents(cmd, opts, func(ctx context.Context, c *bootstrap.Components, _ logger.Logger) error {
				fo, err := c.Service.FactoryOrder(ctx, args[0])
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), report.FactoryOrder(fo), opts.plain)
			})
		},
	}
}

func newShopOrderCmd(opts *options) *cobra.Command {
	var (
		id    int64
		store string
	)

	cmd := &cobra.Command{
		Use:   "shop-order [name]",
		Short: "Show a Shopify order and the image of every line item",
		Example: `  ordercmp shop-order G61226
  ordercmp shop-order --id 5512345678901 --store G`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == (id != 0) {
				return errors.New("pass either an order name or --id")
			}

			return withComponents(cmd, opts, func(ctx context.Context, c *bootstrap.Components, _ logger.Logger) error {
				var (
					so     *order.ShopOrder
					images map[int][]string
					err    error
				)
				if id != 0 {
					so, images, err = c.Service.ShopOrderByID(ctx, id, store)
				} else {
					so, images, err = c.Service.ShopOrderByName(ctx, args[0])
				}
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), report.ShopOrder(so, images), opts.plain)
			})
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "numeric Shopify order id")
	cmd.Flags().StringVar(&store, "store", "G", "store prefix used with --id")
	return cmd
}

// withComponents loads config, wires the service and runs fn with a timeout.
func withComponents(cmd *cobra.Command, opts *options, fn func(ctx context.Context, c *bootstrap.Components, log logger.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	c, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer c.Close()

	return fn(ctx, c, log)
}

func readInput(stdin io.Reader, file string) (string, error) {
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func render(w io.Writer, markdown string, plain bool) error {
	out, err := report.Render(markdown, plain)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}
