package order

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// StoreSet is the set of configured Shopify storefronts, keyed by prefix.
type StoreSet interface {
	Has(prefix string) bool
	Prefixes() []string
}

// PrefixSet is a plain StoreSet.
type PrefixSet map[string]struct{}

func NewPrefixSet(prefixes ...string) PrefixSet {
	s := make(PrefixSet, len(prefixes))
	for _, p := range prefixes {
		s[strings.ToUpper(p)] = struct{}{}
	}
	return s
}

func (s PrefixSet) Has(prefix string) bool {
	_, ok := s[prefix]
	return ok
}

func (s PrefixSet) Prefixes() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// OrderPair links a factory order to the shop order it fulfils.
type OrderPair struct {
	FactoryOrderID string `json:"factory_order_id"`
	ShopOrderName  string `json:"shop_order_name"`
	StorePrefix    string `json:"store_prefix"`
}

// Label is the one-line description used in pair pickers.
func (p OrderPair) Label(position int) string {
	return fmt.Sprintf("%d: %s vs %s (Store %s)", position, p.FactoryOrderID, p.ShopOrderName, p.StorePrefix)
}

// ParseWarning describes an input line that produced no pair.
type ParseWarning struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("line %d: %q: %s", w.Line, w.Text, w.Reason)
}

// NewOrderPair validates a single pair. The store prefix is the upper-cased
// first character of the shop order name.
func NewOrderPair(factoryOrderID, shopOrderName string, stores StoreSet) (OrderPair, error) {
	factoryOrderID = strings.TrimSpace(factoryOrderID)
	shopOrderName = strings.TrimSpace(shopOrderName)
	if factoryOrderID == "" || shopOrderName == "" {
		return OrderPair{}, fmt.Errorf("%w: %w", ErrInvalidPair, ErrMissingOrderRef)
	}

	prefix := StorePrefix(shopOrderName)
	if !stores.Has(prefix) {
		return OrderPair{}, fmt.Errorf("%w: %w %q, expected one of %s",
			ErrInvalidPair, ErrUnknownStore, prefix, strings.Join(stores.Prefixes(), ", "))
	}

	return OrderPair{
		FactoryOrderID: factoryOrderID,
		ShopOrderName:  shopOrderName,
		StorePrefix:    prefix,
	}, nil
}

// ParsePairs reads one "<factoryId> <shopName>" pair per line. Blank lines are
// skipped, every other rejected line yields a warning. Input order is kept and
// duplicates are allowed.
func ParsePairs(input string, stores StoreSet) ([]OrderPair, []ParseWarning) {
	var (
		pairs    []OrderPair
		warnings []ParseWarning
	)

	lines := strings.Split(strings.TrimSpace(input), "\n")
	for i, line := range lines {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		parts := strings.Fields(text)
		if len(parts) != 2 {
			warnings = append(warnings, ParseWarning{
				Line:   i + 1,
				Text:   text,
				Reason: "invalid format, expected two order numbers separated by a space",
			})
			continue
		}

		prefix := StorePrefix(parts[1])
		if !stores.Has(prefix) {
			warnings = append(warnings, ParseWarning{
				Line: i + 1,
				Text: text,
				Reason: fmt.Sprintf("unknown store prefix %q, expected prefixes: %s",
					prefix, strings.Join(stores.Prefixes(), ", ")),
			})
			continue
		}

		pairs = append(pairs, OrderPair{
			FactoryOrderID: parts[0],
			ShopOrderName:  parts[1],
			StorePrefix:    prefix,
		})
	}

	return pairs, warnings
}

// StorePrefix is the upper-cased first character of a shop order name.
func StorePrefix(shopOrderName string) string {
	r, _ := utf8.DecodeRuneInString(shopOrderName)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}
