package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	domain "order_compare/internal/domain/comparison"
	"order_compare/internal/domain/order"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the dashboard pages for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

type PairLink struct {
	Label string
	URL   string
}

type IndexPage struct {
	Input    string
	Stores   []string
	Pairs    []PairLink
	Warnings []string
	Error    string
}

type ComparePage struct {
	Title        string
	ComparisonID string
	Pair         order.OrderPair
	Factory      domain.Side
	Shop         domain.Side
	Rows         []RowView
	Error        string
}

type RowView struct {
	Number  int
	Factory SlotView
	Shop    SlotView
}

type SlotView struct {
	Name        string
	Size        string
	Quantity    string
	Properties  []order.Property
	Placeholder bool
	Images      []string
	Browser     *ImageBrowser
}

// ImageBrowser is the state of one row's factory image selector, kept in the
// img<row> query parameter.
type ImageBrowser struct {
	Selected string
	Position int
	Total    int
	PrevURL  string
	NextURL  string
	Options  []ImageOption
}

type ImageOption struct {
	Label    string
	URL      string
	Selected bool
}

type FactoryPage struct {
	OrderID string
	Order   *order.FactoryOrder
	Designs []DesignView
	Error   string
}

type DesignView struct {
	order.Design
	Images []string
}

func CompareURL(pair order.OrderPair) string {
	q := url.Values{}
	q.Set("factory", pair.FactoryOrderID)
	q.Set("shop", pair.ShopOrderName)
	return "/compare?" + q.Encode()
}

func NewIndexPage(input string, stores []string, pairs []order.OrderPair, warnings []order.ParseWarning) IndexPage {
	page := IndexPage{Input: input, Stores: stores}
	for i, p := range pairs {
		page.Pairs = append(page.Pairs, PairLink{Label: p.Label(i + 1), URL: CompareURL(p)})
	}
	for _, w := range warnings {
		page.Warnings = append(page.Warnings, w.String())
	}
	return page
}

// NewComparePage builds the side-by-side page. query carries the current
// image selection of every row.
func NewComparePage(r *domain.Result, query url.Values) ComparePage {
	page := ComparePage{
		Title:        r.Pair.FactoryOrderID + " vs " + r.Pair.ShopOrderName,
		ComparisonID: r.ID,
		Pair:         r.Pair,
		Factory:      r.Factory,
		Shop:         r.Shop,
		Rows:         make([]RowView, 0, len(r.Rows)),
	}

	for _, row := range r.Rows {
		factory := slotView(row.Factory)
		if len(row.Factory.Images) > 0 {
			factory.Browser = newImageBrowser(row.Index, row.Factory.Images, query)
		}
		page.Rows = append(page.Rows, RowView{
			Number:  row.Index + 1,
			Factory: factory,
			Shop:    slotView(row.Shop),
		})
	}
	return page
}

func NewFactoryPage(f *order.FactoryOrder) FactoryPage {
	page := FactoryPage{OrderID: f.ID, Order: f}
	for _, d := range f.DesignHistory {
		page.Designs = append(page.Designs, DesignView{Design: d, Images: domain.EffectImages(d.EffectImageURL, false)})
	}
	return page
}

func slotView(s domain.ProductSlot) SlotView {
	return SlotView{
		Name:        s.Name,
		Size:        s.Size,
		Quantity:    s.Quantity,
		Properties:  s.Properties,
		Placeholder: s.Placeholder,
		Images:      s.Images,
	}
}

func newImageBrowser(row int, images []string, query url.Values) *ImageBrowser {
	key := ImageParam(row)
	idx, err := strconv.Atoi(query.Get(key))
	if err != nil || idx < 0 || idx >= len(images) {
		idx = 0
	}

	b := &ImageBrowser{
		Selected: images[idx],
		Position: idx + 1,
		Total:    len(images),
	}
	if idx > 0 {
		b.PrevURL = withParam(query, key, idx-1)
	}
	if idx < len(images)-1 {
		b.NextURL = withParam(query, key, idx+1)
	}
	for i := range images {
		b.Options = append(b.Options, ImageOption{
			Label:    fmt.Sprintf("Image %d", i+1),
			URL:      withParam(query, key, i),
			Selected: i == idx,
		})
	}
	return b
}

// ImageParam is the query parameter holding the image index of a row.
func ImageParam(row int) string {
	return "img" + strconv.Itoa(row)
}

func withParam(query url.Values, key string, value int) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	q.Set(key, strconv.Itoa(value))
	return "/compare?" + q.Encode()
}
