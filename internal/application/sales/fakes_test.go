package sales_test

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria para los tests de venta/devolución. memSaleTxRunner emula
// la transacción: clona el estado antes de fn y lo restaura si fn retorna
// error, igual que un Rollback real.
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
	sales         map[int64]*entity.Sale
	saleItems     map[int64][]*entity.SaleItem
	nextMovement  int64
	nextNotif     int64
	nextSale      int64
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[int64]*entity.Product),
		warehouses: make(map[int64]bool),
		stock:      make(map[stockKey]int64),
		sales:      make(map[int64]*entity.Sale),
		saleItems:  make(map[int64][]*entity.SaleItem),
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
	for id, sale := range s.sales {
		cp := *sale
		c.sales[id] = &cp
	}
	for id, items := range s.saleItems {
		c.saleItems[id] = append([]*entity.SaleItem(nil), items...)
	}
	c.movements = append([]*entity.Movement(nil), s.movements...)
	c.notifications = append([]*entity.Notification(nil), s.notifications...)
	c.users = append([]*entity.User(nil), s.users...)
	c.nextMovement = s.nextMovement
	c.nextNotif = s.nextNotif
	c.nextSale = s.nextSale
	return c
}

func (s *memStore) restore(from *memStore) { *s = *from }

// ─── Repositorios mínimos sobre memStore ─────────────────────────────────────

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

func (r *memStockRepo) List(_ context.Context, _, _ *int64) ([]*entity.StockEntry, error) {
	return nil, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.nextMovement++
	m.ID = r.s.nextMovement
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, _ int64) (*entity.Movement, error) {
	return nil, nil
}

func (r *memMovementRepo) List(_ context.Context, _ repository.MovementFilter) ([]*entity.Movement, error) {
	return nil, nil
}

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

func (r *memProductRepo) GetBySKU(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }

type memWarehouseRepo struct{ s *memStore }

func (r *memWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.warehouses[w.ID] = true
	return nil
}

func (r *memWarehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	if !r.s.warehouses[id] {
		return nil, nil
	}
	return &entity.Warehouse{ID: id, Name: "bodega"}, nil
}

func (r *memWarehouseRepo) List(_ context.Context) ([]*entity.Warehouse, error) { return nil, nil }

func (r *memWarehouseRepo) Exists(_ context.Context, id int64) (bool, error) {
	return r.s.warehouses[id], nil
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, _ *entity.User) error { return nil }

func (r *memUserRepo) GetByID(_ context.Context, _ int64) (*entity.User, error) { return nil, nil }

func (r *memUserRepo) GetByEmail(_ context.Context, _ string) (*entity.User, error) {
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
	return out, nil
}

type memNotificationRepo struct{ s *memStore }

func (r *memNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.s.nextNotif++
	n.ID = r.s.nextNotif
	cp := *n
	r.s.notifications = append(r.s.notifications, &cp)
	return nil
}

func (r *memNotificationRepo) ListByUser(_ context.Context, _ int64, _ bool, _, _ int) ([]*entity.Notification, error) {
	return nil, nil
}

func (r *memNotificationRepo) MarkRead(_ context.Context, _, _ int64, _ time.Time) (bool, error) {
	return false, nil
}

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(_ context.Context, sale *entity.Sale, items []*entity.SaleItem) error {
	r.s.nextSale++
	sale.ID = r.s.nextSale
	cp := *sale
	r.s.sales[sale.ID] = &cp
	for i, item := range items {
		item.ID = int64(i + 1)
		item.SaleID = sale.ID
		ci := *item
		r.s.saleItems[sale.ID] = append(r.s.saleItems[sale.ID], &ci)
	}
	return nil
}

func (r *memSaleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r *memSaleRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *memSaleRepo) ListItems(_ context.Context, saleID int64) ([]*entity.SaleItem, error) {
	return append([]*entity.SaleItem(nil), r.s.saleItems[saleID]...), nil
}

func (r *memSaleRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	sale, ok := r.s.sales[id]
	if !ok {
		return domain.ErrSaleNotFound
	}
	sale.Status = status
	return nil
}

// ─── SaleTxRunner ────────────────────────────────────────────────────────────

type memSaleTxRunner struct{ s *memStore }

func (t *memSaleTxRunner) RunSale(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	saleRepo repository.SaleRepository,
) error) error {
	snapshot := t.s.clone()
	err := fn(
		&memMovementRepo{t.s},
		&memStockRepo{t.s},
		&memProductRepo{t.s},
		&memWarehouseRepo{t.s},
		&memUserRepo{t.s},
		&memNotificationRepo{t.s},
		&memSaleRepo{t.s},
	)
	if err != nil {
		t.s.restore(snapshot)
		return err
	}
	return nil
}
