package order

// NotAvailable is shown for any field the vendor payload did not carry.
const NotAvailable = "N/A"

// FactoryOrder is a Cat Kiss Fish order after defaulting.
type FactoryOrder struct {
	ID            string   `json:"id"`
	Amount        string   `json:"amount"`
	Address       Address  `json:"address"`
	DesignHistory []Design `json:"design_history"`
}

type Address struct {
	Country       string `json:"country"`
	Province      string `json:"province"`
	City          string `json:"city"`
	UserName      string `json:"user_name"`
	DetailAddress string `json:"detail_address"`
	PostalCode    string `json:"postal_code"`
}

// Design is one entry of the factory's design history, i.e. one printed product.
type Design struct {
	ProductName string `json:"product_name"`
	SizeName    string `json:"size_name"`
	Quantity    string `json:"quantity"`
	// EffectImageURL is the raw comma separated list of rendered previews.
	EffectImageURL string `json:"effect_image_url"`
}

// ShopOrder is a Shopify order after defaulting and line item filtering.
type ShopOrder struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	OrderNumber     string          `json:"order_number"`
	LineItems       []LineItem      `json:"line_items"`
	Customer        Customer        `json:"customer"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
}

type LineItem struct {
	Name         string     `json:"name"`
	Title        string     `json:"title"`
	VariantTitle string     `json:"variant_title"`
	Quantity     string     `json:"quantity"`
	VariantID    int64      `json:"variant_id"`
	ProductID    int64      `json:"product_id"`
	Properties   []Property `json:"properties"`
}

type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ShippingAddress struct {
	Address1 string `json:"address1"`
	Zip      string `json:"zip"`
}

// FullName joins first and last name, it may be empty.
func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}
