package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/entity"
	"github.com/Cambadios/ImprentaCamiri-sub000/internal/domain/repository"
)

// RecordMovementUseCase registra movimientos de material (INGRESO/SALIDA) de
// forma transaccional: bloqueo de fila (SELECT FOR UPDATE), ajuste del
// contador de stock y apunte en el libro de movimientos, con Commit/Rollback.
// Toda mutación de stock del sistema pasa por aquí, incluida la reserva y
// devolución de pedidos (vía ApplyInTx).
type RecordMovementUseCase struct {
	txRunner TxRunner
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(txRunner TxRunner) *RecordMovementUseCase {
	return &RecordMovementUseCase{txRunner: txRunner}
}

// MovementInput entrada para registrar un movimiento.
// Quantity debe ser > 0; el signo lo determina Type.
type MovementInput struct {
	MaterialID string
	Type       string // INGRESO | SALIDA
	Quantity   decimal.Decimal
	UnitCost   *decimal.Decimal // solo INGRESO
	Reason     string
	OrderID    *string // referencia al pedido, si el movimiento nace de uno
	Reference  string
	CreatedBy  string
}

// RecordMovement valida la entrada e inicia una transacción que bloquea la
// fila del material, verifica que una SALIDA no deje el stock negativo,
// ajusta el contador y agrega la entrada al libro. Falla completa o no hace nada.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	if input.MaterialID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Type != entity.MovementIngreso && input.Type != entity.MovementSalida {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if input.UnitCost != nil && input.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		movRepo repository.MovementRepository,
	) error {
		var err error
		mov, err = ApplyInTx(materialRepo, movRepo, input, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ApplyInTx aplica un movimiento usando los repositorios proporcionados
// (misma transacción del caller). Lo usan también los casos de uso de pedidos
// para que la reserva al crear y la devolución al cancelar queden en el libro.
func ApplyInTx(
	materialRepo repository.MaterialRepository,
	movRepo repository.MovementRepository,
	input MovementInput,
	now time.Time,
) (*entity.Movement, error) {
	// Bloquea la fila del material para evitar condiciones de carrera
	material, err := materialRepo.GetForUpdate(input.MaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}

	newQty := material.Quantity
	switch input.Type {
	case entity.MovementIngreso:
		newQty = newQty.Add(input.Quantity)
	case entity.MovementSalida:
		if material.Quantity.LessThan(input.Quantity) {
			return nil, &domain.InsufficientStockError{
				MaterialID:   material.ID,
				MaterialName: material.Name,
				Required:     input.Quantity,
				Available:    material.Quantity,
			}
		}
		newQty = newQty.Sub(input.Quantity)
	default:
		return nil, domain.ErrInvalidInput
	}

	if err := materialRepo.UpdateQuantity(material.ID, newQty); err != nil {
		return nil, err
	}

	mov := &entity.Movement{
		ID:          uuid.New().String(),
		MaterialID:  material.ID,
		Type:        input.Type,
		Quantity:    input.Quantity,
		UnitMeasure: material.UnitMeasure,
		UnitCost:    input.UnitCost,
		Reason:      input.Reason,
		OrderID:     input.OrderID,
		Reference:   input.Reference,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}
