package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una bodega, o nil si no existe.
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID int64) (*entity.StockEntry, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock_entries WHERE product_id = $1 AND warehouse_id = $2`
	var s entity.StockEntry
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE), o nil
// si no existe. El bloqueo se sostiene hasta el commit/rollback de la tx.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID int64) (*entity.StockEntry, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock_entries WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.StockEntry
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// EnsureRow garantiza que exista la fila (cantidad 0) sin tocar una existente.
func (r *StockRepo) EnsureRow(ctx context.Context, productID, warehouseID int64) error {
	query := `
		INSERT INTO stock_entries (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, productID, warehouseID); err != nil {
		return fmt.Errorf("ensure stock row: %w", err)
	}
	return nil
}

// AddQuantity suma delta en un solo statement. El upsert aditivo toma el
// bloqueo de fila en el índice único: dos incrementos concurrentes sobre una
// fila inexistente no pierden actualizaciones.
func (r *StockRepo) AddQuantity(ctx context.Context, productID, warehouseID, delta int64) (int64, error) {
	query := `
		INSERT INTO stock_entries (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = stock_entries.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING quantity`
	var quantity int64
	if err := r.q.QueryRow(ctx, query, productID, warehouseID, delta).Scan(&quantity); err != nil {
		return 0, fmt.Errorf("add stock quantity: %w", err)
	}
	return quantity, nil
}

// SetQuantity fija la cantidad de una fila existente (previamente bloqueada).
func (r *StockRepo) SetQuantity(ctx context.Context, productID, warehouseID, quantity int64) error {
	query := `
		UPDATE stock_entries SET quantity = $3, updated_at = now()
		WHERE product_id = $1 AND warehouse_id = $2`
	tag, err := r.q.Exec(ctx, query, productID, warehouseID, quantity)
	if err != nil {
		return fmt.Errorf("set stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set stock quantity: fila inexistente (producto %d, bodega %d)", productID, warehouseID)
	}
	return nil
}

// List consulta cantidades actuales con filtros opcionales.
func (r *StockRepo) List(ctx context.Context, productID, warehouseID *int64) ([]*entity.StockEntry, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock_entries WHERE 1=1`
	args := []any{}
	pos := 1
	if productID != nil {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, *productID)
		pos++
	}
	if warehouseID != nil {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, *warehouseID)
		pos++
	}
	query += " ORDER BY warehouse_id, product_id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		var s entity.StockEntry
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
