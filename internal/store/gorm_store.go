package store

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"tripnest_backend/pkg/apperror"
	"tripnest_backend/pkg/utils/validation"
)

// GormStore keeps a collection in a relational table through gorm.
type GormStore[T any] struct {
	db         *gorm.DB
	collection Collection
	schema     Schema
}

func NewGormStore[T any](db *gorm.DB, collection Collection) *GormStore[T] {
	return &GormStore[T]{
		db:         db,
		collection: collection,
		schema:     SchemaOf(collection),
	}
}

func (s *GormStore[T]) List(ctx context.Context, filters Filters) ([]T, error) {
	query := s.db.WithContext(ctx).Model(new(T))

	keys, clean := s.schema.cleanFilters(filters)
	for _, key := range keys {
		query = query.Where(map[string]interface{}{key: clean[key]})
	}

	records := []T{}
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, s.translate(err, "list")
	}
	return records, nil
}

func (s *GormStore[T]) GetOne(ctx context.Context, id string) (*T, error) {
	var record T
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound(id)
		}
		return nil, s.translate(err, "get")
	}
	return &record, nil
}

func (s *GormStore[T]) Create(ctx context.Context, record *T) error {
	if err := validation.Struct(record); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return s.translate(err, "create")
	}
	return nil
}

// Update merges the allowed patch columns into the stored record, validates the
// result and writes only those columns.
func (s *GormStore[T]) Update(ctx context.Context, id string, patch map[string]interface{}) (*T, error) {
	existing, err := s.GetOne(ctx, id)
	if err != nil {
		return nil, err
	}

	keys, clean := s.schema.cleanPatch(patch)
	if len(keys) == 0 {
		return existing, nil
	}

	merged, err := merge(existing, clean)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeValidation, "invalid update payload", err)
	}
	if err := validation.Struct(merged); err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).Model(merged).Where("id = ?", id).Select(keys).Updates(merged)
	if res.Error != nil {
		return nil, s.translate(res.Error, "update")
	}
	return s.GetOne(ctx, id)
}

func (s *GormStore[T]) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return s.translate(res.Error, "delete")
	}
	if res.RowsAffected == 0 {
		return s.notFound(id)
	}
	return nil
}

func (s *GormStore[T]) notFound(id string) error {
	return apperror.NotFound(fmt.Sprintf("%s record %s not found", s.collection, id))
}

// merge overlays patch onto a copy of record through JSON, so patch values take
// the field types of T. Fields hidden from JSON keep their stored values.
func merge[T any](record *T, patch map[string]interface{}) (*T, error) {
	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, err
	}
	merged := *record
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (s *GormStore[T]) translate(err error, op string) error {
	msg := fmt.Sprintf("%s %s failed", op, s.collection)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42501": // insufficient_privilege
			return apperror.PermissionDenied(msg, err)
		case "23505": // unique_violation
			return apperror.Wrap(apperror.CodeValidation, fmt.Sprintf("%s: record already exists", s.collection), err)
		case "23502", "23514": // not_null_violation, check_violation
			return apperror.Wrap(apperror.CodeValidation, fmt.Sprintf("%s: %s", s.collection, pgErr.Message), err)
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return apperror.Wrap(apperror.CodeValidation, fmt.Sprintf("%s: record already exists", s.collection), err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return apperror.Network(msg, err)
	}
	return apperror.Wrap(apperror.CodeUnknown, msg, err)
}
