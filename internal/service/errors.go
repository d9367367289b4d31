package service

import (
	"errors"

	"padel-ranking-api/internal/domain"
)

// storeErr 保留仓储层已分类的错误，其余一律视为 internal
func storeErr(msg string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.Internal(msg, err)
}
