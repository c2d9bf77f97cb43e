package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos. El motor de movimientos solo los lee.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// CreateProductInput entrada para crear un producto.
type CreateProductInput struct {
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	MinStock    int64
}

// Create valida y crea el producto. SKU único.
func (uc *ProductUseCase) Create(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" {
		return nil, domain.Validation("sku", "es obligatorio")
	}
	if name == "" {
		return nil, domain.Validation("name", "es obligatorio")
	}
	if in.Price.IsNegative() {
		return nil, domain.Validation("price", "no puede ser negativo")
	}
	if in.MinStock < 0 {
		return nil, domain.Validation("min_stock", "no puede ser negativo")
	}

	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		SKU:         sku,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		MinStock:    in.MinStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID devuelve el producto o ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
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
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(ctx, limit, offset)
}

// UpdateProductInput campos editables de un producto.
type UpdateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	MinStock    int64
}

// Update modifica nombre, descripción, precio y umbral de stock bajo.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in UpdateProductInput) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Price.IsNegative() {
		return nil, domain.Validation("price", "no puede ser negativo")
	}
	if in.MinStock < 0 {
		return nil, domain.Validation("min_stock", "no puede ser negativo")
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		product.Name = name
	}
	product.Description = strings.TrimSpace(in.Description)
	product.Price = in.Price
	product.MinStock = in.MinStock
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}
