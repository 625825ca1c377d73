package order

import "errors"

var (
	ErrInvalidPair     = errors.New("invalid order pair")
	ErrUnknownStore    = errors.New("unknown store prefix")
	ErrOrderNotFound   = errors.New("order not found")
	ErrMissingOrderRef = errors.New("order reference is empty")
)
