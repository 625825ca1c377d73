package catkissfish

import (
	"bytes"
	"encoding/json"
	"fmt"

	"order_compare/internal/domain/order"
)

// envelope is the common Cat Kiss Fish response wrapper.
type envelope struct {
	Code    flexString      `json:"code"`
	Msg     string          `json:"msg"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// IsSuccess returns true for code 0 or 200, both are used by the API.
func (e *envelope) IsSuccess() bool {
	code := e.Code.String()
	return code == "0" || code == "200"
}

func (e *envelope) apiError() *APIError {
	msg := e.Msg
	if msg == "" {
		msg = e.Message
	}
	return &APIError{Code: e.Code.String(), Message: msg}
}

type tokenData struct {
	ClientToken string `json:"client_token"`
}

type orderDetailData struct {
	ID                     flexString   `json:"id"`
	Amount                 flexString   `json:"amount"`
	Address                *addressData `json:"address"`
	OrderDesignHistoryList []designData `json:"orderDesignHistoryList"`
}

type addressData struct {
	Country       *string `json:"country"`
	Province      *string `json:"province"`
	City          *string `json:"city"`
	UserName      *string `json:"userName"`
	DetailAddress *string `json:"detailAddress"`
	PostalCode    *string `json:"postalCode"`
}

type designData struct {
	ProductName    *string    `json:"productName"`
	SizeName       *string    `json:"sizeName"`
	Quantity       flexString `json:"quantity"`
	EffectImageURL *string    `json:"effectImageUrl"`
}

// toDomain là nơi duy nhất áp dụng giá trị mặc định "N/A".
func (d *orderDetailData) toDomain() *order.FactoryOrder {
	out := &order.FactoryOrder{
		ID:            d.ID.Or(order.NotAvailable),
		Amount:        d.Amount.Or(order.NotAvailable),
		DesignHistory: make([]order.Design, 0, len(d.OrderDesignHistoryList)),
	}

	addr := d.Address
	if addr == nil {
		addr = &addressData{}
	}
	out.Address = order.Address{
		Country:       stringOr(addr.Country, order.NotAvailable),
		Province:      stringOr(addr.Province, order.NotAvailable),
		City:          stringOr(addr.City, order.NotAvailable),
		UserName:      stringOr(addr.UserName, order.NotAvailable),
		DetailAddress: stringOr(addr.DetailAddress, order.NotAvailable),
		PostalCode:    stringOr(addr.PostalCode, order.NotAvailable),
	}

	for _, design := range d.OrderDesignHistoryList {
		out.DesignHistory = append(out.DesignHistory, order.Design{
			ProductName:    stringOr(design.ProductName, order.NotAvailable),
			SizeName:       stringOr(design.SizeName, order.NotAvailable),
			Quantity:       design.Quantity.Or(order.NotAvailable),
			EffectImageURL: stringOr(design.EffectImageURL, ""),
		})
	}

	return out
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

// flexString accepts a JSON string, number or bool and keeps its text.
// The API is not consistent about quoting ids and quantities.
type flexString struct {
	value string
	set   bool
}

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = flexString{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString{value: s, set: true}
		return nil
	}
	*f = flexString{value: string(b), set: true}
	return nil
}

func (f flexString) String() string {
	return f.value
}

func (f flexString) Or(def string) string {
	if !f.set {
		return def
	}
	return f.value
}

// APIError is an API-level failure: HTTP 200 with a non-success code.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catkissfish api error (code %s): %s", e.Code, e.Message)
}
