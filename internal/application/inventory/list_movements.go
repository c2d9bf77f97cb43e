package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Paginación del kardex.
const (
	defaultMovementLimit = 50
	maxMovementLimit     = 200
)

// ListMovementsUseCase consulta el kardex (solo lectura, paginado, del más
// reciente al más antiguo).
type ListMovementsUseCase struct {
	movRepo repository.MovementRepository
}

// NewListMovementsUseCase construye el caso de uso con un repo atado al pool.
func NewListMovementsUseCase(movRepo repository.MovementRepository) *ListMovementsUseCase {
	return &ListMovementsUseCase{movRepo: movRepo}
}

// ListMovementsQuery filtros del listado. Los ceros/vacíos no filtran.
type ListMovementsQuery struct {
	ProductID   int64
	WarehouseID int64
	Type        string
	DateFrom    *time.Time
	DateTo      *time.Time
	Limit       int
	Offset      int
}

// List normaliza filtros y paginación y consulta el kardex. Con filtros
// idénticos y sin escrituras intermedias la secuencia devuelta es idéntica.
func (uc *ListMovementsUseCase) List(ctx context.Context, q ListMovementsQuery) ([]*entity.Movement, error) {
	filter := repository.MovementFilter{
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
		Offset:   q.Offset,
	}
	if q.ProductID > 0 {
		filter.ProductID = &q.ProductID
	}
	if q.WarehouseID > 0 {
		filter.WarehouseID = &q.WarehouseID
	}
	if q.Type != "" {
		switch q.Type {
		case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeTRANSFER,
			entity.MovementTypeSALE, entity.MovementTypeRETURN, entity.MovementTypeADJUST:
			filter.Type = &q.Type
		default:
			return nil, domain.Validation("type", "tipo de movimiento desconocido")
		}
	}
	if q.Offset < 0 {
		filter.Offset = 0
	}
	filter.Limit = q.Limit
	if filter.Limit <= 0 {
		filter.Limit = defaultMovementLimit
	}
	if filter.Limit > maxMovementLimit {
		filter.Limit = maxMovementLimit
	}
	return uc.movRepo.List(ctx, filter)
}
