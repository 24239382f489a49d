package inventory

import (
	"context"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
	domaininv "github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/inventory"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
)

// KardexUseCase reconstruye el kardex de un material: movimientos en orden
// cronológico con saldo acumulado.
type KardexUseCase struct {
	materialRepo repository.MaterialRepository
	movementRepo repository.MovementRepository
}

// NewKardexUseCase construye el caso de uso.
func NewKardexUseCase(materialRepo repository.MaterialRepository, movementRepo repository.MovementRepository) *KardexUseCase {
	return &KardexUseCase{materialRepo: materialRepo, movementRepo: movementRepo}
}

// KardexResult kardex de un material más el chequeo de conciliación:
// el saldo final del plegado debe coincidir con el stock disponible.
type KardexResult struct {
	Material   *entity.Material
	Lines      []domaininv.KardexLine
	Reconciled bool
}

// GetKardex devuelve los movimientos del material en orden cronológico con el
// saldo corrido, y verifica la conciliación contra el contador de stock.
func (uc *KardexUseCase) GetKardex(ctx context.Context, materialID string) (*KardexResult, error) {
	if materialID == "" {
		return nil, domain.ErrInvalidInput
	}
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movementRepo.ListByMaterial(materialID)
	if err != nil {
		return nil, err
	}
	lines := domaininv.BuildKardex(movements)
	reconciled := domaininv.FinalBalance(movements).Equal(material.Quantity)
	return &KardexResult{Material: material, Lines: lines, Reconciled: reconciled}, nil
}
