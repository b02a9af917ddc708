package salesdoc

import (
	"errors"
	"strings"

	salesdocerrors "go-bizdocs/internal/salesdoc/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salesdocerrors.ErrDocumentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_sales_document_number" {
			return salesdocerrors.ErrDocumentNumberExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_sales_document_number") {
		return salesdocerrors.ErrDocumentNumberExists
	}

	return err
}
