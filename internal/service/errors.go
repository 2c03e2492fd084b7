package service

import "errors"

var (
	ErrInvalidProduct     = errors.New("invalid product data")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session")
	ErrUserExists         = errors.New("user already exists")
)
