package rdb

import (
	"errors"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"gorm.io/gorm"

	"github.com/mwops/mwops/domain/model"
)

// translate maps storage-engine integrity errors onto the domain error
// kinds, producing a field-scoped ValidationError where the engine names
// the offending column. Unrecognized errors pass through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			if field := fieldFromConstraint(pgErr.ConstraintName); field != "" {
				return model.NewValidationError(field, "value already exists")
			}
			return &model.ConflictError{Message: pgErr.Detail, Err: err}
		case pgerrcode.NotNullViolation:
			return model.NewValidationError(pgErr.ColumnName, "value is required")
		case pgerrcode.ForeignKeyViolation:
			return &model.ConflictError{Message: "referenced record does not exist", Err: err}
		}
		if pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return &model.ConflictError{Message: pgErr.Message, Err: err}
		}
		return err
	}

	// The sqlite driver reports integrity errors as text, e.g.
	// "UNIQUE constraint failed: mw_platform_postgres.name".
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed:"):
		if field := lastColumn(msg); field != "" {
			return model.NewValidationError(field, "value already exists")
		}
		return &model.ConflictError{Message: msg, Err: err}
	case strings.Contains(msg, "NOT NULL constraint failed:"):
		return model.NewValidationError(lastColumn(msg), "value is required")
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &model.ConflictError{Message: "referenced record does not exist", Err: err}
	}
	return err
}

// fieldFromConstraint extracts a column name from index names shaped like
// idx_<table>_<column> or <table>_<column>_key.
func fieldFromConstraint(constraint string) string {
	switch {
	case constraint == "":
		return ""
	case strings.HasSuffix(constraint, "_key"):
		parts := strings.Split(strings.TrimSuffix(constraint, "_key"), "_")
		return parts[len(parts)-1]
	case strings.HasPrefix(constraint, "idx_"):
		parts := strings.Split(constraint, "_")
		return parts[len(parts)-1]
	default:
		return ""
	}
}

// lastColumn pulls the column out of "... failed: table.column".
func lastColumn(msg string) string {
	i := strings.LastIndex(msg, ".")
	if i < 0 || i == len(msg)-1 {
		return ""
	}
	col := msg[i+1:]
	if j := strings.IndexAny(col, " ,;"); j >= 0 {
		col = col[:j]
	}
	return col
}
