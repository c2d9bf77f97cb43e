package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// WarehouseUseCase CRUD de bodegas.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// CreateWarehouseInput entrada para crear una bodega.
type CreateWarehouseInput struct {
	Name    string
	Type    string
	Address string
}

// Create valida y crea la bodega.
func (uc *WarehouseUseCase) Create(ctx context.Context, in CreateWarehouseInput) (*entity.Warehouse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validation("name", "es obligatorio")
	}
	whType := in.Type
	if whType == "" {
		whType = entity.WarehouseTypeStorage
	}
	if whType != entity.WarehouseTypeStore && whType != entity.WarehouseTypeStorage {
		return nil, domain.Validation("type", "debe ser store o storage")
	}

	now := time.Now()
	warehouse := &entity.Warehouse{
		Name:      name,
		Type:      whType,
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// GetByID devuelve la bodega o ErrNotFound.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return warehouse, nil
}

// List lista todas las bodegas.
func (uc *WarehouseUseCase) List(ctx context.Context) ([]*entity.Warehouse, error) {
	return uc.repo.List(ctx)
}
