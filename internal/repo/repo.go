package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = gorm.ErrRecordNotFound
	ErrUserExists = errors.New("user already exists")
)

type GormRepo struct {
	DB *gorm.DB
}
