// Package inventory implements the recency-gated upsert that keeps the
// product store consistent across imports and interactive edits.
package inventory

import (
	"strconv"
	"strings"

	"github.com/kimhsiao/inventory/internal/date"
	apperrors "github.com/kimhsiao/inventory/internal/errors"
	"github.com/kimhsiao/inventory/internal/logging"
	"github.com/kimhsiao/inventory/internal/models"
)

// Candidate is a not-yet-committed product state proposed for storage.
type Candidate struct {
	Name      string
	Quantity  int64
	Price     int64 // minor currency units (cents)
	UpdatedAt date.Date
}

// ParseCandidate validates raw edit-boundary input into a Candidate.
// Failures carry INVALID_INPUT and leave the store untouched; the
// caller may re-prompt and retry.
func ParseCandidate(name, quantity, price string, updatedAt date.Date) (Candidate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Candidate{}, apperrors.New(apperrors.ErrInvalidInput, "product name has to be one or more characters")
	}

	qty, err := strconv.ParseInt(strings.TrimSpace(quantity), 10, 64)
	if err != nil {
		return Candidate{}, apperrors.Wrap(apperrors.ErrInvalidInput, "quantity must be an integer", err)
	}
	if qty < 0 {
		return Candidate{}, apperrors.New(apperrors.ErrInvalidInput, "quantity cannot be negative")
	}

	cents, err := strconv.ParseInt(strings.TrimSpace(price), 10, 64)
	if err != nil {
		return Candidate{}, apperrors.Wrap(apperrors.ErrInvalidInput, "price must be an integer number of cents", err)
	}
	if cents < 0 {
		return Candidate{}, apperrors.New(apperrors.ErrInvalidInput, "price cannot be negative")
	}

	return Candidate{Name: name, Quantity: qty, Price: cents, UpdatedAt: updatedAt}, nil
}

// UpsertOutcome describes what an upsert did to the store.
type UpsertOutcome string

const (
	OutcomeCreated UpsertOutcome = "created"
	OutcomeUpdated UpsertOutcome = "updated"
	OutcomeSkipped UpsertOutcome = "skipped"
)

// Store is the narrow record-store surface the engine depends on.
type Store interface {
	Create(p *models.Product) error
	GetByID(id int64) (*models.Product, error)
	GetByName(name string) (*models.Product, error)
	Update(id int64, quantity, price int64, updatedAt date.Date) error
	ListOrderedByID() ([]*models.Product, error)
	Count() (int64, error)
}

// Service applies candidate states to the store under the recency rule.
type Service struct {
	store Store
}

// NewService creates a new Service instance.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Upsert creates the product on first sight of a name. For an existing
// name, only a strictly newer UpdatedAt overwrites the stored state;
// older or equal candidates are discarded as a silent no-op, so
// replaying the same candidate any number of times is idempotent.
//
// Existence is checked before any insert, so DUPLICATE_KEY never
// escapes this method.
func (s *Service) Upsert(c Candidate) (UpsertOutcome, error) {
	if err := c.validate(); err != nil {
		return "", err
	}

	existing, err := s.store.GetByName(c.Name)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		p := &models.Product{
			Name:      c.Name,
			Quantity:  c.Quantity,
			Price:     c.Price,
			UpdatedAt: c.UpdatedAt,
		}
		if err := s.store.Create(p); err != nil {
			return "", err
		}
		logging.Debug("product created", map[string]interface{}{"name": c.Name, "id": p.ID})
		return OutcomeCreated, nil
	}
	if err != nil {
		return "", err
	}

	if !c.UpdatedAt.After(existing.UpdatedAt) {
		return OutcomeSkipped, nil
	}
	if err := s.store.Update(existing.ID, c.Quantity, c.Price, c.UpdatedAt); err != nil {
		return "", err
	}
	logging.Debug("product updated", map[string]interface{}{"name": c.Name, "id": existing.ID})
	return OutcomeUpdated, nil
}

// validate rejects candidates that bypassed ParseCandidate.
func (c Candidate) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return apperrors.New(apperrors.ErrInvalidInput, "product name has to be one or more characters")
	}
	if c.Quantity < 0 {
		return apperrors.New(apperrors.ErrInvalidInput, "quantity cannot be negative")
	}
	if c.Price < 0 {
		return apperrors.New(apperrors.ErrInvalidInput, "price cannot be negative")
	}
	if c.UpdatedAt.IsZero() {
		return apperrors.New(apperrors.ErrInvalidInput, "update date is required")
	}
	return nil
}

// View returns the product with the given id. When the id does not
// exist, the NOT_FOUND error reports the current inventory size so the
// caller can hint at the valid id range.
func (s *Service) View(id int64) (*models.Product, error) {
	p, err := s.store.GetByID(id)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		count, countErr := s.store.Count()
		if countErr != nil {
			return nil, countErr
		}
		return nil, apperrors.Newf(apperrors.ErrNotFound, "only %d product(s) in the inventory", count)
	}
	return p, err
}

// Count returns the number of products in the store.
func (s *Service) Count() (int64, error) {
	return s.store.Count()
}
