package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
)

// ProductUseCase administración de productos y su lista de materiales (BOM).
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	materialRepo repository.MaterialRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, materialRepo repository.MaterialRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, materialRepo: materialRepo}
}

// SaveProductInput datos de alta/edición de un producto con su BOM.
type SaveProductInput struct {
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	Materials   []entity.BOMEntry
}

// validateBOM verifica que cada entrada referencie un material existente con
// cantidad por unidad positiva.
func (uc *ProductUseCase) validateBOM(entries []entity.BOMEntry) error {
	for _, e := range entries {
		if e.MaterialID == "" || !e.QuantityPerUnit.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		material, err := uc.materialRepo.GetByID(e.MaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

// Create da de alta un producto con su BOM.
func (uc *ProductUseCase) Create(ctx context.Context, in SaveProductInput) (*entity.Product, error) {
	if in.Name == "" || in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateBOM(in.Materials); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
		Materials:   in.Materials,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto con su BOM.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List lista productos paginados.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(limit, offset)
}

// Update reemplaza datos y BOM del producto. Los pedidos ya creados no se
// ven afectados: la BOM se lee en vivo al procesar cada pedido.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in SaveProductInput) (*entity.Product, error) {
	if in.Name == "" || in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateBOM(in.Materials); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.Name = in.Name
	product.Description = in.Description
	product.UnitPrice = in.UnitPrice
	product.Materials = in.Materials
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}
