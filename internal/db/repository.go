// Package db provides CRUD repository operations for the product store.
package db

import (
	"database/sql"
	stderrors "errors"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/kimhsiao/inventory/internal/date"
	apperrors "github.com/kimhsiao/inventory/internal/errors"
	"github.com/kimhsiao/inventory/internal/models"
)

var productColumns = []string{
	"product_id",
	"product_name",
	"product_quantity",
	"product_price",
	"date_updated",
}

// ProductRepository provides access to the products table. Callers
// receive copies of stored rows and never mutate store state directly.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product and assigns p.ID. A name that already
// exists fails with DUPLICATE_KEY.
func (r *ProductRepository) Create(p *models.Product) error {
	res, err := sq.Insert(p.TableName()).
		SetMap(map[string]interface{}{
			"product_name":     p.Name,
			"product_quantity": p.Quantity,
			"product_price":    p.Price,
			"date_updated":     p.UpdatedAt,
		}).
		RunWith(r.db).
		Exec()
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrDuplicateKey, "product \""+p.Name+"\" already exists", err)
		}
		return apperrors.Wrap(apperrors.ErrDatabase, "inserting product", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatabase, "reading inserted id", err)
	}
	p.ID = id
	return nil
}

// GetByID retrieves a product by its store-assigned id.
func (r *ProductRepository) GetByID(id int64) (*models.Product, error) {
	row := sq.Select(productColumns...).
		From(models.Product{}.TableName()).
		Where(sq.Eq{"product_id": id}).
		RunWith(r.db).
		QueryRow()
	return scanProduct(row, apperrors.Newf(apperrors.ErrNotFound, "product id %d not found", id))
}

// GetByName retrieves a product by its unique name.
func (r *ProductRepository) GetByName(name string) (*models.Product, error) {
	row := sq.Select(productColumns...).
		From(models.Product{}.TableName()).
		Where(sq.Eq{"product_name": name}).
		RunWith(r.db).
		QueryRow()
	return scanProduct(row, apperrors.Newf(apperrors.ErrNotFound, "product %q not found", name))
}

// Update overwrites the mutable fields of an existing product in place.
// Exactly one row must be affected.
func (r *ProductRepository) Update(id int64, quantity, price int64, updatedAt date.Date) error {
	res, err := sq.Update(models.Product{}.TableName()).
		Where(sq.Eq{"product_id": id}).
		SetMap(map[string]interface{}{
			"product_quantity": quantity,
			"product_price":    price,
			"date_updated":     updatedAt,
		}).
		RunWith(r.db).
		Exec()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatabase, "executing update", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatabase, "getting affected rows", err)
	}
	if rowsAffected != 1 {
		return apperrors.Newf(apperrors.ErrNotFound, "update affected %d rows, expected exactly 1", rowsAffected)
	}
	return nil
}

// ListOrderedByID returns every product, ascending by id.
func (r *ProductRepository) ListOrderedByID() ([]*models.Product, error) {
	rows, err := sq.Select(productColumns...).
		From(models.Product{}.TableName()).
		OrderBy("product_id ASC").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "listing products", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrDatabase, "scanning product row", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "iterating products", err)
	}
	return products, nil
}

// Count returns the number of products in the store.
func (r *ProductRepository) Count() (int64, error) {
	var count int64
	err := sq.Select("COUNT(*)").
		From(models.Product{}.TableName()).
		RunWith(r.db).
		QueryRow().
		Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrDatabase, "counting products", err)
	}
	return count, nil
}

// scanProduct scans a single row, translating sql.ErrNoRows into the
// supplied NOT_FOUND error.
func scanProduct(row sq.RowScanner, notFound error) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, notFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "scanning product", err)
	}
	return &p, nil
}

// isUniqueViolation reports whether err is a sqlite unique constraint
// failure. modernc.org/sqlite carries the constraint detail in the
// error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
