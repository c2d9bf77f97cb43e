package inventory_test

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria para los tests del motor de movimientos.
// memTxRunner emula la transacción: clona el estado antes de fn y lo restaura
// si fn retorna error, igual que un Rollback real.
// ──────────────────────────────────────────────────────────────────────────────

type stockKey struct {
	productID   int64
	warehouseID int64
}

type memStore struct {
	products      map[int64]*entity.Product
	warehouses    map[int64]bool
	stock         map[stockKey]int64
	movements     []*entity.Movement
	notifications []*entity.Notification
	users         []*entity.User
	nextMovement  int64
	nextNotif     int64
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[int64]*entity.Product),
		warehouses: make(map[int64]bool),
		stock:      make(map[stockKey]int64),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, ok := range s.warehouses {
		c.warehouses[id] = ok
	}
	for k, q := range s.stock {
		c.stock[k] = q
	}
	c.movements = append([]*entity.Movement(nil), s.movements...)
	c.notifications = append([]*entity.Notification(nil), s.notifications...)
	c.users = append([]*entity.User(nil), s.users...)
	c.nextMovement = s.nextMovement
	c.nextNotif = s.nextNotif
	return c
}

func (s *memStore) restore(from *memStore) {
	s.products = from.products
	s.warehouses = from.warehouses
	s.stock = from.stock
	s.movements = from.movements
	s.notifications = from.notifications
	s.users = from.users
	s.nextMovement = from.nextMovement
	s.nextNotif = from.nextNotif
}

// ─── StockRepository ─────────────────────────────────────────────────────────

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) Get(_ context.Context, productID, warehouseID int64) (*entity.StockEntry, error) {
	q, ok := r.s.stock[stockKey{productID, warehouseID}]
	if !ok {
		return nil, nil
	}
	return &entity.StockEntry{ProductID: productID, WarehouseID: warehouseID, Quantity: q}, nil
}

func (r *memStockRepo) GetForUpdate(ctx context.Context, productID, warehouseID int64) (*entity.StockEntry, error) {
	return r.Get(ctx, productID, warehouseID)
}

func (r *memStockRepo) EnsureRow(_ context.Context, productID, warehouseID int64) error {
	k := stockKey{productID, warehouseID}
	if _, ok := r.s.stock[k]; !ok {
		r.s.stock[k] = 0
	}
	return nil
}

func (r *memStockRepo) AddQuantity(_ context.Context, productID, warehouseID, delta int64) (int64, error) {
	k := stockKey{productID, warehouseID}
	r.s.stock[k] += delta
	return r.s.stock[k], nil
}

func (r *memStockRepo) SetQuantity(_ context.Context, productID, warehouseID, quantity int64) error {
	k := stockKey{productID, warehouseID}
	if _, ok := r.s.stock[k]; !ok {
		return domain.ErrStockEntryNotFound
	}
	r.s.stock[k] = quantity
	return nil
}

func (r *memStockRepo) List(_ context.Context, productID, warehouseID *int64) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	for k, q := range r.s.stock {
		if productID != nil && k.productID != *productID {
			continue
		}
		if warehouseID != nil && k.warehouseID != *warehouseID {
			continue
		}
		out = append(out, &entity.StockEntry{ProductID: k.productID, WarehouseID: k.warehouseID, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].WarehouseID < out[j].WarehouseID
	})
	return out, nil
}

// ─── MovementRepository ──────────────────────────────────────────────────────

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.nextMovement++
	m.ID = r.s.nextMovement
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id int64) (*entity.Movement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

// List replica el contrato del repositorio real: más reciente primero,
// WarehouseID contra origen o destino, rango [DateFrom, DateTo], offset/limit.
func (r *memMovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	skipped := 0
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if filter.ProductID != nil && m.ProductID != *filter.ProductID {
			continue
		}
		if filter.Type != nil && m.Type != *filter.Type {
			continue
		}
		if filter.WarehouseID != nil {
			fromMatches := m.WarehouseFromID != nil && *m.WarehouseFromID == *filter.WarehouseID
			toMatches := m.WarehouseToID != nil && *m.WarehouseToID == *filter.WarehouseID
			if !fromMatches && !toMatches {
				continue
			}
		}
		if filter.DateFrom != nil && m.CreatedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && m.CreatedAt.After(*filter.DateTo) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

// ─── ProductRepository ───────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

// ─── WarehouseRepository ─────────────────────────────────────────────────────

type memWarehouseRepo struct{ s *memStore }

func (r *memWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.warehouses[w.ID] = true
	return nil
}

func (r *memWarehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	if !r.s.warehouses[id] {
		return nil, nil
	}
	return &entity.Warehouse{ID: id, Name: "bodega", Type: entity.WarehouseTypeStorage}, nil
}

func (r *memWarehouseRepo) List(_ context.Context) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for id := range r.s.warehouses {
		out = append(out, &entity.Warehouse{ID: id})
	}
	return out, nil
}

func (r *memWarehouseRepo) Exists(_ context.Context, id int64) (bool, error) {
	return r.s.warehouses[id], nil
}

// ─── UserRepository ──────────────────────────────────────────────────────────

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.s.users = append(r.s.users, &cp)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) ListIDsByRoles(_ context.Context, roles []string) ([]int64, error) {
	var out []int64
	for _, u := range r.s.users {
		if u.Status != "active" {
			continue
		}
		for _, role := range roles {
			if u.Role == role {
				out = append(out, u.ID)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// ─── NotificationRepository ──────────────────────────────────────────────────

type memNotificationRepo struct{ s *memStore }

func (r *memNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.s.nextNotif++
	n.ID = r.s.nextNotif
	cp := *n
	r.s.notifications = append(r.s.notifications, &cp)
	return nil
}

func (r *memNotificationRepo) ListByUser(_ context.Context, userID int64, unreadOnly bool, _, _ int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range r.s.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Status != entity.NotificationStatusNew {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memNotificationRepo) MarkRead(_ context.Context, id, userID int64, readAt time.Time) (bool, error) {
	for _, n := range r.s.notifications {
		if n.ID == id && n.UserID == userID {
			n.Status = entity.NotificationStatusRead
			n.ReadAt = &readAt
			return true, nil
		}
	}
	return false, nil
}

// ─── TxRunner ────────────────────────────────────────────────────────────────

type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	snapshot := t.s.clone()
	err := fn(
		&memMovementRepo{t.s},
		&memStockRepo{t.s},
		&memProductRepo{t.s},
		&memWarehouseRepo{t.s},
		&memUserRepo{t.s},
		&memNotificationRepo{t.s},
	)
	if err != nil {
		t.s.restore(snapshot)
		return err
	}
	return nil
}
