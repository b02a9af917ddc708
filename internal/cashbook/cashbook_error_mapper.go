package cashbook

import (
	"errors"

	cashbookerrors "go-bizdocs/internal/cashbook/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cashbookerrors.ErrEntryNotFound
	}
	return err
}
