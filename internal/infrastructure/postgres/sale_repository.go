package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y sus ítems; asigna los IDs.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale, items []*entity.SaleItem) error {
	query := `
		INSERT INTO sales (reference, cashier_id, warehouse_id, total, discount, payment_type, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.Reference, s.CashierID, s.WarehouseID, s.Total, s.Discount, s.PaymentType, s.Status, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (sale_id, product_id, quantity, unit_price, discount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	for _, item := range items {
		item.SaleID = s.ID
		if err := r.q.QueryRow(ctx, itemQuery,
			item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Discount,
		).Scan(&item.ID); err != nil {
			return fmt.Errorf("create sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta por ID, o nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	query := `
		SELECT id, reference, cashier_id, warehouse_id, total, discount, payment_type, status, created_at
		FROM sales WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get sale")
}

// GetForUpdate obtiene la venta bloqueando su fila (SELECT FOR UPDATE), o nil
// si no existe. Serializa devoluciones concurrentes sobre la misma venta.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	query := `
		SELECT id, reference, cashier_id, warehouse_id, total, discount, payment_type, status, created_at
		FROM sales WHERE id = $1
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get sale for update")
}

// ListItems lista los ítems de una venta.
func (r *SaleRepo) ListItems(ctx context.Context, saleID int64) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, discount
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var item entity.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.Discount); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la venta (única mutación permitida).
func (r *SaleRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE sales SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update sale status: venta %d inexistente", id)
	}
	return nil
}

func (r *SaleRepo) scanOne(row pgx.Row, op string) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.Reference, &s.CashierID, &s.WarehouseID, &s.Total, &s.Discount, &s.PaymentType, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
