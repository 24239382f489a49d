package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con
// pool o tx). La BOM vive en product_materials, una fila por material.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste el producto y sus líneas de BOM.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.UnitPrice,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return r.insertBOM(product.ID, product.Materials)
}

func (r *ProductRepo) insertBOM(productID string, entries []entity.BOMEntry) error {
	for _, e := range entries {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO product_materials (product_id, material_id, quantity_per_unit)
			VALUES ($1, $2, $3)`,
			productID, e.MaterialID, e.QuantityPerUnit,
		)
		if err != nil {
			return fmt.Errorf("insert product material: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el producto con su BOM cargado.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, name, description, unit_price, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.UnitPrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	materials, err := r.loadBOM(id)
	if err != nil {
		return nil, err
	}
	p.Materials = materials
	return &p, nil
}

func (r *ProductRepo) loadBOM(productID string) ([]entity.BOMEntry, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT material_id, quantity_per_unit
		FROM product_materials WHERE product_id = $1
		ORDER BY material_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("load bom: %w", err)
	}
	defer rows.Close()
	var entries []entity.BOMEntry
	for rows.Next() {
		var e entity.BOMEntry
		if err := rows.Scan(&e.MaterialID, &e.QuantityPerUnit); err != nil {
			return nil, fmt.Errorf("scan bom entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// List lista productos (con BOM) ordenados por nombre.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, name, description, unit_price, created_at, updated_at
		FROM products ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.UnitPrice, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range list {
		materials, err := r.loadBOM(p.ID)
		if err != nil {
			return nil, err
		}
		p.Materials = materials
	}
	return list, nil
}

// Update reemplaza datos del producto y reescribe su BOM.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, unit_price = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.UnitPrice, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM product_materials WHERE product_id = $1`, product.ID); err != nil {
		return fmt.Errorf("clear bom: %w", err)
	}
	return r.insertBOM(product.ID, product.Materials)
}
