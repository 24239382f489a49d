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

// MaterialUseCase administración de materiales (alta y edición de datos).
// El stock disponible NO se edita por aquí: nace en cero y solo lo mueven los
// movimientos INGRESO/SALIDA, para que el kardex siempre concilie.
type MaterialUseCase struct {
	materialRepo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(materialRepo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{materialRepo: materialRepo}
}

// CreateMaterialInput datos de alta de un material.
type CreateMaterialInput struct {
	Name        string
	UnitMeasure string
	UnitPrice   decimal.Decimal
}

// Create da de alta un material con stock cero.
func (uc *MaterialUseCase) Create(ctx context.Context, in CreateMaterialInput) (*entity.Material, error) {
	if in.Name == "" || in.UnitMeasure == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	material := &entity.Material{
		ID:          uuid.New().String(),
		Name:        in.Name,
		UnitMeasure: in.UnitMeasure,
		UnitPrice:   in.UnitPrice,
		Quantity:    decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.materialRepo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

// GetByID obtiene un material.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	material, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return material, nil
}

// List lista materiales paginados.
func (uc *MaterialUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Material, error) {
	return uc.materialRepo.List(limit, offset)
}

// Update edita nombre, unidad y precio. La cantidad disponible no se toca.
func (uc *MaterialUseCase) Update(ctx context.Context, id string, in CreateMaterialInput) (*entity.Material, error) {
	if in.Name == "" || in.UnitMeasure == "" || in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	material, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	material.Name = in.Name
	material.UnitMeasure = in.UnitMeasure
	material.UnitPrice = in.UnitPrice
	material.UpdatedAt = time.Now()
	if err := uc.materialRepo.Update(material); err != nil {
		return nil, err
	}
	return material, nil
}
