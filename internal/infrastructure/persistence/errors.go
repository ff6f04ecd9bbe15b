package persistence

import (
	"errors"

	"gorm.io/gorm"

	"github.com/servex/backend/internal/domain/shared"
)

// translateSaveError maps driver-level write failures onto the domain error
// taxonomy. With TranslateError enabled GORM surfaces unique-index
// violations (trip numbers, invoice numbers, barcodes) as
// gorm.ErrDuplicatedKey; callers racing on those indexes expect Conflict.
func translateSaveError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrConflict
	}
	return err
}
