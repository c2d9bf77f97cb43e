package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/application/notification"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ApplyMovementUseCase es el motor de movimientos: valida, aplica y registra
// cada cambio de stock (IN, OUT, TRANSFER, SALE, RETURN, ADJUST) con bloqueo
// de fila (SELECT FOR UPDATE) y Commit/Rollback.
type ApplyMovementUseCase struct {
	txRunner TxRunner
	trigger  *notification.Trigger
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner, trigger *notification.Trigger) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner, trigger: trigger}
}

// MovementResult es el resultado de aplicar un movimiento: la fila del kardex
// y la cantidad resultante en la bodega afectada.
type MovementResult struct {
	Movement          *entity.Movement
	ResultingQuantity int64
}

// Apply valida el comando y lo aplica dentro de su propia transacción.
// Cualquier fallo después de la validación deja stock y kardex intactos.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, in MovementInput) (*MovementResult, error) {
	cmd, err := ValidateMovement(in)
	if err != nil {
		return nil, err
	}
	var result *MovementResult
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		userRepo repository.UserRepository,
		notifRepo repository.NotificationRepository,
	) error {
		r, err := uc.applyCommand(ctx, movRepo, stockRepo, productRepo, warehouseRepo, userRepo, notifRepo, cmd, "")
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyInTx valida y aplica un movimiento usando repositorios atados a la
// transacción del caller (ventas y devoluciones componen varios movimientos
// en una sola tx). reference agrupa los movimientos de la misma operación.
func (uc *ApplyMovementUseCase) ApplyInTx(
	ctx context.Context,
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	in MovementInput,
	reference string,
) (*MovementResult, error) {
	cmd, err := ValidateMovement(in)
	if err != nil {
		return nil, err
	}
	return uc.applyCommand(ctx, movRepo, stockRepo, productRepo, warehouseRepo, userRepo, notifRepo, cmd, reference)
}

// applyCommand ejecuta el algoritmo del motor sobre un comando ya validado:
// existencia de producto y bodegas, bloqueo de filas, efecto por tipo, fila de
// kardex y trigger de stock bajo, todo dentro de la tx de los repos recibidos.
func (uc *ApplyMovementUseCase) applyCommand(
	ctx context.Context,
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	cmd *MovementCommand,
	reference string,
) (*MovementResult, error) {
	product, err := productRepo.GetByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	for _, wh := range []*int64{cmd.From, cmd.To} {
		if wh == nil {
			continue
		}
		ok, err := warehouseRepo.Exists(ctx, *wh)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &domain.WarehouseNotFoundError{WarehouseID: *wh}
		}
	}

	resulting, err := uc.applyEffect(ctx, stockRepo, cmd)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	mov := &entity.Movement{
		ProductID:       cmd.ProductID,
		Type:            cmd.Type,
		WarehouseFromID: cmd.From,
		WarehouseToID:   cmd.To,
		Quantity:        cmd.Quantity,
		Reason:          cmd.Reason,
		Reference:       reference,
		CreatedBy:       cmd.UserID,
		CreatedAt:       now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}

	// Alerta de stock bajo: se evalúa sobre la bodega afectada, dentro de la
	// misma transacción, para que un rollback no deje notificaciones.
	if resulting <= product.MinStock {
		payload := notification.LowStockPayload{
			ProductID:   product.ID,
			ProductName: product.Name,
			WarehouseID: cmd.AffectedWarehouseID(),
			Quantity:    resulting,
			MinStock:    product.MinStock,
		}
		if err := uc.trigger.LowStock(ctx, notifRepo, userRepo, payload); err != nil {
			return nil, err
		}
	}

	return &MovementResult{Movement: mov, ResultingQuantity: resulting}, nil
}

// applyEffect muta el stock según el tipo y devuelve la cantidad resultante en
// la bodega afectada.
//
// Incrementos (IN/RETURN): upsert aditivo atómico; dos entradas concurrentes
// sobre una fila inexistente no pierden actualizaciones.
// Decrementos (OUT/SALE): FOR UPDATE y verificación de disponible; fila ausente
// equivale a disponible 0.
// TRANSFER: bloquea ambas filas en orden ascendente de bodega, sin importar
// cuál es origen; dos traslados opuestos entre las mismas bodegas no se
// interbloquean.
// ADJUST: exige fila existente y fija el valor absoluto.
func (uc *ApplyMovementUseCase) applyEffect(
	ctx context.Context,
	stockRepo repository.StockRepository,
	cmd *MovementCommand,
) (int64, error) {
	switch cmd.Type {
	case entity.MovementTypeIN, entity.MovementTypeRETURN:
		return stockRepo.AddQuantity(ctx, cmd.ProductID, *cmd.To, cmd.Quantity)

	case entity.MovementTypeOUT, entity.MovementTypeSALE:
		entry, err := stockRepo.GetForUpdate(ctx, cmd.ProductID, *cmd.From)
		if err != nil {
			return 0, err
		}
		var available int64
		if entry != nil {
			available = entry.Quantity
		}
		if available < cmd.Quantity {
			return 0, &domain.InsufficientStockError{
				ProductID:   cmd.ProductID,
				WarehouseID: *cmd.From,
				Available:   available,
				Requested:   cmd.Quantity,
			}
		}
		remaining := available - cmd.Quantity
		if err := stockRepo.SetQuantity(ctx, cmd.ProductID, *cmd.From, remaining); err != nil {
			return 0, err
		}
		return remaining, nil

	case entity.MovementTypeTRANSFER:
		return uc.applyTransfer(ctx, stockRepo, cmd)

	case entity.MovementTypeADJUST:
		entry, err := stockRepo.GetForUpdate(ctx, cmd.ProductID, *cmd.To)
		if err != nil {
			return 0, err
		}
		if entry == nil {
			return 0, domain.ErrStockEntryNotFound
		}
		if err := stockRepo.SetQuantity(ctx, cmd.ProductID, *cmd.To, cmd.Quantity); err != nil {
			return 0, err
		}
		return cmd.Quantity, nil
	}
	// ValidateMovement ya rechazó cualquier otro tipo.
	return 0, domain.ErrInvalidInput
}

// applyTransfer resta de origen y suma en destino dentro de la misma tx.
// Las filas se bloquean en orden ascendente de ID de bodega.
func (uc *ApplyMovementUseCase) applyTransfer(
	ctx context.Context,
	stockRepo repository.StockRepository,
	cmd *MovementCommand,
) (int64, error) {
	from, to := *cmd.From, *cmd.To

	// El destino puede no existir todavía: se asegura la fila antes de bloquear.
	if err := stockRepo.EnsureRow(ctx, cmd.ProductID, to); err != nil {
		return 0, err
	}

	first, second := from, to
	if second < first {
		first, second = second, first
	}
	entries := make(map[int64]*entity.StockEntry, 2)
	for _, wh := range []int64{first, second} {
		entry, err := stockRepo.GetForUpdate(ctx, cmd.ProductID, wh)
		if err != nil {
			return 0, err
		}
		entries[wh] = entry
	}

	var available int64
	if origin := entries[from]; origin != nil {
		available = origin.Quantity
	}
	if available < cmd.Quantity {
		return 0, &domain.InsufficientStockError{
			ProductID:   cmd.ProductID,
			WarehouseID: from,
			Available:   available,
			Requested:   cmd.Quantity,
		}
	}
	var destQty int64
	if dest := entries[to]; dest != nil {
		destQty = dest.Quantity
	}

	if err := stockRepo.SetQuantity(ctx, cmd.ProductID, from, available-cmd.Quantity); err != nil {
		return 0, err
	}
	resulting := destQty + cmd.Quantity
	if err := stockRepo.SetQuantity(ctx, cmd.ProductID, to, resulting); err != nil {
		return 0, err
	}
	return resulting, nil
}
