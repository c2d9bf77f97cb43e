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

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del kardex sobre PostgreSQL (usable con pool o tx).
// La tabla movements es append-only: no hay UPDATE ni DELETE aquí.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento y asigna su ID.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (product_id, type, warehouse_from, warehouse_to, quantity, reason, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	reason := (*string)(nil)
	if m.Reason != "" {
		reason = &m.Reason
	}
	reference := (*string)(nil)
	if m.Reference != "" {
		reference = &m.Reference
	}
	err := r.q.QueryRow(ctx, query,
		m.ProductID, m.Type, m.WarehouseFromID, m.WarehouseToID,
		m.Quantity, reason, reference, m.CreatedBy, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID, o nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	query := `
		SELECT id, product_id, type, warehouse_from, warehouse_to, quantity, reason, reference, created_by, created_at
		FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List lista movimientos filtrados, del más reciente al más antiguo. El filtro
// de bodega coincide contra origen o destino.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	query := `
		SELECT id, product_id, type, warehouse_from, warehouse_to, quantity, reason, reference, created_by, created_at
		FROM movements WHERE 1=1`
	args := []any{}
	pos := 1
	if f.ProductID != nil {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, *f.ProductID)
		pos++
	}
	if f.WarehouseID != nil {
		query += fmt.Sprintf(" AND (warehouse_from = $%d OR warehouse_to = $%d)", pos, pos)
		args = append(args, *f.WarehouseID)
		pos++
	}
	if f.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, *f.Type)
		pos++
	}
	if f.DateFrom != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *f.DateFrom)
		pos++
	}
	if f.DateTo != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *f.DateTo)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// scanMovement mapea una fila (Row o Rows) a la entidad.
func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var reason, reference *string
	if err := row.Scan(&m.ID, &m.ProductID, &m.Type, &m.WarehouseFromID, &m.WarehouseToID,
		&m.Quantity, &reason, &reference, &m.CreatedBy, &m.CreatedAt); err != nil {
		return nil, err
	}
	if reason != nil {
		m.Reason = *reason
	}
	if reference != nil {
		m.Reference = *reference
	}
	return &m, nil
}
