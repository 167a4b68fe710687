package category

import (
	"errors"

	"gorm.io/gorm"

	"yummy-backend/domain"
)

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func notFound(key string, err error) error {
	if isRecordNotFound(err) {
		return errors.Join(domain.NewNotFoundError("category", key), domain.ErrCategoryNotFound)
	}
	return domain.MapDBError("load category", err)
}
