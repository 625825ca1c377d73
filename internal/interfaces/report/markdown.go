// Package report renders comparisons and orders as markdown for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	domain "order_compare/internal/domain/comparison"
	"order_compare/internal/domain/order"
)

// Render turns markdown into styled terminal output. plain skips styling,
// e.g. when stdout is piped.
func Render(markdown string, plain bool) (string, error) {
	if plain {
		return markdown, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	return r.Render(markdown)
}

func Pairs(pairs []order.OrderPair, warnings []order.ParseWarning) string {
	var b strings.Builder
	b.WriteString("# Order pairs\n\n")
	if len(pairs) == 0 {
		b.WriteString("_No valid order pairs found._\n")
	}
	for i, p := range pairs {
		fmt.Fprintf(&b, "- %s\n", p.Label(i+1))
	}
	if len(warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range warnings {
			fmt.Fprintf(&b, "- %s\n", w.String())
		}
	}
	return b.String()
}

func Comparison(r *domain.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s vs %s (Store %s)\n\n", r.Pair.FactoryOrderID, r.Pair.ShopOrderName, r.Pair.StorePrefix)

	b.WriteString("| | Cat Kiss Fish | Shopify |\n|---|---|---|\n")
	row(&b, "Order", r.Factory.OrderRef, r.Shop.OrderRef)
	row(&b, "Customer", r.Factory.CustomerName, r.Shop.CustomerName)
	row(&b, "Address", r.Factory.DetailAddress, r.Shop.DetailAddress)
	row(&b, "Postal code", r.Factory.PostalCode, r.Shop.PostalCode)

	for _, rw := range r.Rows {
		fmt.Fprintf(&b, "\n## Product %d\n\n", rw.Index+1)
		b.WriteString("| | Cat Kiss Fish | Shopify |\n|---|---|---|\n")
		row(&b, "Name", rw.Factory.Name, rw.Shop.Name)
		for _, p := range rw.Shop.Properties {
			row(&b, p.Name, "", p.Value)
		}
		row(&b, "Size", rw.Factory.Size, rw.Shop.Size)
		row(&b, "Quantity", rw.Factory.Quantity, rw.Shop.Quantity)
		row(&b, "Images", strings.Join(rw.Factory.Images, " "), strings.Join(rw.Shop.Images, " "))
	}

	if r.ID != "" {
		fmt.Fprintf(&b, "\n_Comparison %s at %s_\n", r.ID, r.ComparedAt.Format("2006-01-02 15:04:05 MST"))
	}
	return b.String()
}

func FactoryOrder(f *order.FactoryOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Factory order %s\n\n", f.ID)
	a := f.Address
	fmt.Fprintf(&b, "%s  \n%s  \n%s %s  \n%s %s\n\n", a.UserName, a.DetailAddress, a.PostalCode, a.City, a.Province, a.Country)
	fmt.Fprintf(&b, "Amount: %s\n", f.Amount)

	for i, d := range f.DesignHistory {
		fmt.Fprintf(&b, "\n## %d. %s\n\n", i+1, d.ProductName)
		fmt.Fprintf(&b, "- Size: %s\n- Quantity: %s\n", d.SizeName, d.Quantity)
		for _, u := range domain.EffectImages(d.EffectImageURL, false) {
			fmt.Fprintf(&b, "- %s\n", u)
		}
	}
	return b.String()
}

// ShopOrder prints a Shopify order with the resolved image of each line item.
func ShopOrder(s *order.ShopOrder, images map[int][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Shopify order %s (#%s)\n\n", s.Name, s.OrderNumber)
	fmt.Fprintf(&b, "%s  \n%s %s\n", s.Customer.FullName(), s.ShippingAddress.Address1, s.ShippingAddress.Zip)

	for i, item := range s.LineItems {
		fmt.Fprintf(&b, "\n## %d. %s\n\n", i+1, item.Name)
		for _, p := range item.Properties {
			fmt.Fprintf(&b, "- %s: %s\n", p.Name, p.Value)
		}
		fmt.Fprintf(&b, "- Size: %s\n- Quantity: %s\n", item.VariantTitle, item.Quantity)
		if imgs := images[i]; len(imgs) > 0 {
			fmt.Fprintf(&b, "- Image: %s\n", strings.Join(imgs, " "))
		} else {
			b.WriteString("- Image: none\n")
		}
	}
	return b.String()
}

func row(b *strings.Builder, label, left, right string) {
	fmt.Fprintf(b, "| %s | %s | %s |\n", cell(label), cell(left), cell(right))
}

// cell escapes pipes so a value cannot break the table.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
