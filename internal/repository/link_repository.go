package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	customerrors "github.com/axellelanca/shortlinks/internal/errors"
	"github.com/axellelanca/shortlinks/internal/models"
)

// ErrDuplicateURL is returned by Insert when the full URL is already stored,
// typically because a concurrent request created it first.
var ErrDuplicateURL = errors.New("full URL already exists")

// LinkRepository is the persistence boundary of the lifecycle engine.
// Lookups report a missing record with customerrors.ErrURLNotFound; any other
// persistence failure wraps customerrors.ErrStoreUnavailable.
type LinkRepository interface {
	FindByFullURL(ctx context.Context, fullURL string) (*models.Link, error)
	FindByShortURL(ctx context.Context, shortURL string) (*models.Link, error)
	// Insert stores a link without short code and returns its assigned id.
	Insert(ctx context.Context, fullURL string) (uint, error)
	PatchShortURL(ctx context.Context, id uint, shortURL string) error
	// IncrementCounter adds one request to an active link as a single
	// read-modify-write in the database. Inactive links fail with ErrURLRestricted.
	IncrementCounter(ctx context.Context, id uint) (*models.Link, error)
	SetActive(ctx context.Context, id uint, active bool) (*models.Link, error)
	// List returns links ordered by id, filtered on is_active when isActive is set.
	List(ctx context.Context, isActive *bool) ([]models.Link, error)
	Delete(ctx context.Context, id uint) error
	// WithinTx runs fn inside one transaction. The repository handed to fn is
	// bound to it; the transaction commits when fn returns nil and rolls back
	// on error, panic or context cancellation. Nested calls join the outer one.
	WithinTx(ctx context.Context, fn func(repo LinkRepository) error) error
}

// GormLinkRepository is the GORM implementation of LinkRepository.
type GormLinkRepository struct {
	db   *gorm.DB
	inTx bool
}

// NewLinkRepository creates a repository over a shared, pooled GORM handle.
func NewLinkRepository(db *gorm.DB) *GormLinkRepository {
	return &GormLinkRepository{db: db}
}

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", customerrors.ErrStoreUnavailable, op, err)
}

// isUniqueViolation covers drivers that do not implement GORM's error translation.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "Duplicate entry")
}

func (r *GormLinkRepository) findOne(ctx context.Context, op, query string, arg interface{}) (*models.Link, error) {
	var link models.Link
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerrors.ErrURLNotFound
		}
		return nil, storeError(op, err)
	}
	return &link, nil
}

// FindByFullURL looks a link up by its normalized destination.
func (r *GormLinkRepository) FindByFullURL(ctx context.Context, fullURL string) (*models.Link, error) {
	return r.findOne(ctx, "find by full url", "full_url = ?", fullURL)
}

// FindByShortURL looks a link up by its short code.
func (r *GormLinkRepository) FindByShortURL(ctx context.Context, shortURL string) (*models.Link, error) {
	return r.findOne(ctx, "find by short url", "short_url = ?", shortURL)
}

func (r *GormLinkRepository) findByID(ctx context.Context, id uint) (*models.Link, error) {
	return r.findOne(ctx, "find by id", "id = ?", id)
}

// Insert creates the row with short_url left NULL.
func (r *GormLinkRepository) Insert(ctx context.Context, fullURL string) (uint, error) {
	link := models.Link{FullURL: fullURL, IsActive: true}
	if err := r.db.WithContext(ctx).Omit("ShortURL").Create(&link).Error; err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateURL
		}
		return 0, storeError("insert link", err)
	}
	return link.ID, nil
}

// PatchShortURL sets the short code derived from the link id.
func (r *GormLinkRepository) PatchShortURL(ctx context.Context, id uint, shortURL string) error {
	res := r.db.WithContext(ctx).Model(&models.Link{}).Where("id = ?", id).Update("short_url", shortURL)
	if res.Error != nil {
		return storeError("patch short url", res.Error)
	}
	if res.RowsAffected == 0 {
		return customerrors.ErrURLNotFound
	}
	return nil
}

// IncrementCounter bumps count_requests in the UPDATE statement itself so
// concurrent resolutions serialize on the row instead of racing in Go.
func (r *GormLinkRepository) IncrementCounter(ctx context.Context, id uint) (*models.Link, error) {
	res := r.db.WithContext(ctx).Model(&models.Link{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("count_requests", gorm.Expr("count_requests + ?", 1))
	if res.Error != nil {
		return nil, storeError("increment counter", res.Error)
	}

	link, err := r.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		// The row exists, so the is_active guard rejected it.
		return nil, customerrors.ErrURLRestricted
	}
	return link, nil
}

// SetActive flips is_active and returns the updated link.
func (r *GormLinkRepository) SetActive(ctx context.Context, id uint, active bool) (*models.Link, error) {
	res := r.db.WithContext(ctx).Model(&models.Link{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return nil, storeError("set active", res.Error)
	}
	return r.findByID(ctx, id)
}

// List returns all links, or only those whose is_active equals *isActive.
func (r *GormLinkRepository) List(ctx context.Context, isActive *bool) ([]models.Link, error) {
	query := r.db.WithContext(ctx).Order("id")
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}

	links := make([]models.Link, 0)
	if err := query.Find(&links).Error; err != nil {
		return nil, storeError("list links", err)
	}
	return links, nil
}

// Delete removes a link. Lifecycle operations never call it.
func (r *GormLinkRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Link{}, id)
	if res.Error != nil {
		return storeError("delete link", res.Error)
	}
	if res.RowsAffected == 0 {
		return customerrors.ErrURLNotFound
	}
	return nil
}

// WithinTx opens a transaction scoped to fn.
func (r *GormLinkRepository) WithinTx(ctx context.Context, fn func(repo LinkRepository) error) error {
	if r.inTx {
		return fn(r)
	}

	var fnErr error
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(&GormLinkRepository{db: tx, inTx: true})
		return fnErr
	})
	if err != nil && fnErr == nil {
		// begin or commit failed
		return storeError("transaction", err)
	}
	return err
}
