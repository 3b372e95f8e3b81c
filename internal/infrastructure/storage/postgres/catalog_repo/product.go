package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"loomledger/internal/core/apperror"
	"loomledger/internal/domain/catalogs/product"
	"loomledger/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*product.Product](
			txManager,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// FindByName retrieves a product by name, case-insensitively.
func (r *ProductRepo) FindByName(ctx context.Context, name string) (*product.Product, error) {
	q := r.BaseSelect().
		Where(squirrel.Expr("LOWER(TRIM(name)) = LOWER(TRIM(?))", name)).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", name)
		}
		return nil, err
	}
	return item, nil
}

// MaxSerialNo returns the highest assigned serial number, 0 when the
// catalog is empty. Soft-deleted products keep their serial reserved.
func (r *ProductRepo) MaxSerialNo(ctx context.Context) (int, error) {
	q := r.Builder().
		Select("COALESCE(MAX(serial_no), 0)").
		From(productTable)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var maxNo int
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&maxNo); err != nil {
		return 0, fmt.Errorf("max serial no: %w", err)
	}
	return maxNo, nil
}

// ListOrdered returns all live products in catalog order: ascending
// serial number with name as tiebreak.
func (r *ProductRepo) ListOrdered(ctx context.Context) ([]*product.Product, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("serial_no ASC", "name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*product.Product
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list ordered: %w", err)
	}
	return items, nil
}
