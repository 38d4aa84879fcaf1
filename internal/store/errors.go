package store

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrDuplicatePurchase = errors.New("product already purchased by customer")
)
