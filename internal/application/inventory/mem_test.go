package inventory_test

import (
	"context"
	"sort"
	"sync"

	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/entity"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/event"
	"github.com/d2much2/WarehouseTracker-1-sub000/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes. memTxRunner serializes transactions with a mutex and
// restores a snapshot on error, so the rollback and row-lock semantics the
// recorder relies on hold in tests without a database.
// ──────────────────────────────────────────────────────────────────────────────

type levelKey struct {
	productID   string
	warehouseID string
}

type memStore struct {
	mu        sync.Mutex
	levels    map[levelKey]entity.InventoryLevel
	movements []entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{levels: make(map[levelKey]entity.InventoryLevel)}
}

func (s *memStore) snapshot() (map[levelKey]entity.InventoryLevel, []entity.StockMovement) {
	levels := make(map[levelKey]entity.InventoryLevel, len(s.levels))
	for k, v := range s.levels {
		levels[k] = v
	}
	movements := make([]entity.StockMovement, len(s.movements))
	copy(movements, s.movements)
	return levels, movements
}

func (s *memStore) quantity(productID, warehouseID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.levels[levelKey{productID, warehouseID}].Quantity
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

type memTxRunner struct {
	store      *memStore
	products   *memProductRepo
	warehouses *memWarehouseRepo
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	levelRepo repository.InventoryLevelRepository,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	levels, movements := r.store.snapshot()
	err := fn(&memLevelRepo{store: r.store}, &memMovementRepo{store: r.store}, r.products, r.warehouses)
	if err != nil {
		r.store.levels = levels
		r.store.movements = movements
	}
	return err
}

type memLevelRepo struct {
	store *memStore
}

func (r *memLevelRepo) Get(_ context.Context, productID, warehouseID string) (*entity.InventoryLevel, error) {
	lvl, ok := r.store.levels[levelKey{productID, warehouseID}]
	if !ok {
		return &entity.InventoryLevel{ProductID: productID, WarehouseID: warehouseID}, nil
	}
	out := lvl
	return &out, nil
}

// GetForUpdate materializes absent rows at quantity 0 like the PostgreSQL
// repository, so rollback restores the pre-transaction absence.
func (r *memLevelRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.InventoryLevel, error) {
	k := levelKey{productID, warehouseID}
	if _, ok := r.store.levels[k]; !ok {
		r.store.levels[k] = entity.InventoryLevel{ProductID: productID, WarehouseID: warehouseID}
	}
	return r.Get(ctx, productID, warehouseID)
}

func (r *memLevelRepo) Upsert(_ context.Context, level *entity.InventoryLevel) error {
	if level.Quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	r.store.levels[levelKey{level.ProductID, level.WarehouseID}] = *level
	return nil
}

func (r *memLevelRepo) ListByProduct(_ context.Context, productID string) ([]*entity.InventoryLevel, error) {
	var out []*entity.InventoryLevel
	for k, v := range r.store.levels {
		if k.productID == productID {
			lvl := v
			out = append(out, &lvl)
		}
	}
	return out, nil
}

func (r *memLevelRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.InventoryLevel, error) {
	var out []*entity.InventoryLevel
	for k, v := range r.store.levels {
		if k.warehouseID == warehouseID {
			lvl := v
			out = append(out, &lvl)
		}
	}
	return out, nil
}

func (r *memLevelRepo) ListLowStock(context.Context) ([]repository.LowStockRow, error) {
	return nil, nil
}

func (r *memLevelRepo) SumQuantities(context.Context) (int64, error) {
	var total int64
	for _, v := range r.store.levels {
		total += v.Quantity
	}
	return total, nil
}

func (r *memLevelRepo) DeleteAll(context.Context) error {
	r.store.levels = make(map[levelKey]entity.InventoryLevel)
	return nil
}

type memMovementRepo struct {
	store *memStore
}

func (r *memMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.store.movements = append(r.store.movements, *m)
	return nil
}

func (r *memMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		m := r.store.movements[i]
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.WarehouseID != "" && m.WarehouseID != f.WarehouseID && m.TargetWarehouseID != f.WarehouseID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		out = append(out, &m)
	}
	return out, nil
}

func (r *memMovementRepo) ListChronological(context.Context) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, len(r.store.movements))
	for i := range r.store.movements {
		m := r.store.movements[i]
		out[i] = &m
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type memProductRepo struct {
	mu       sync.Mutex
	products map[string]entity.Product
}

func newMemProductRepo(products ...entity.Product) *memProductRepo {
	r := &memProductRepo{products: make(map[string]entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memProductRepo) List(context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

type memWarehouseRepo struct {
	mu         sync.Mutex
	warehouses map[string]entity.Warehouse
}

func newMemWarehouseRepo(warehouses ...entity.Warehouse) *memWarehouseRepo {
	r := &memWarehouseRepo{warehouses: make(map[string]entity.Warehouse)}
	for _, w := range warehouses {
		r.warehouses[w.ID] = w
	}
	return r
}

func (r *memWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warehouses[w.ID] = *w
	return nil
}

func (r *memWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *memWarehouseRepo) List(context.Context) ([]*entity.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range r.warehouses {
		cp := w
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.warehouses[w.ID]; !ok {
		return domain.ErrNotFound
	}
	r.warehouses[w.ID] = *w
	return nil
}

func (r *memWarehouseRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.warehouses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.warehouses, id)
	return nil
}

func (r *memWarehouseRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, w := range r.warehouses {
		if w.Status == status {
			n++
		}
	}
	return n, nil
}

// captureNotifier collects published events for assertions.
type captureNotifier struct {
	mu     sync.Mutex
	events []event.ChangeEvent
}

func (n *captureNotifier) Publish(ev event.ChangeEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *captureNotifier) byType(eventType string) []event.ChangeEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []event.ChangeEvent
	for _, ev := range n.events {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}
