package service

import (
	"context"
	"sync"
	"time"

	"tindapos/internal/dto"
	"tindapos/internal/model"
	"tindapos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ─── product repository stub ─────────────────────────────────────────────────

type stubProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*model.Product
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func newStubProductRepo(products ...*model.Product) *stubProductRepo {
	r := &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku && p.IsActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(context.Context, dto.ProductFilter) ([]model.Product, int64, error) {
	return nil, 0, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		p.IsActive = false
	}
	return nil
}

func (r *stubProductRepo) ListLowStock(context.Context) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Product
	for _, p := range r.products {
		if p.IsActive && p.StockQuantity <= p.LowStockThreshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockQuantity += delta
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

func (r *stubProductRepo) stock(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].StockQuantity
}

// ─── category repository stub ────────────────────────────────────────────────

type stubCategoryRepo struct {
	mu         sync.Mutex
	categories []*model.Category
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories = append(r.categories, c)
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) List(context.Context) ([]model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

// ─── inventory ledger stub ───────────────────────────────────────────────────

type stubLedgerRepo struct {
	mu      sync.Mutex
	entries []*model.InventoryLog
}

var _ repository.InventoryLogRepository = (*stubLedgerRepo)(nil)

func (r *stubLedgerRepo) CreateTx(_ *gorm.DB, entry *model.InventoryLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubLedgerRepo) List(context.Context, repository.InventoryLogFilter) ([]model.InventoryLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.InventoryLog, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *stubLedgerRepo) ListByProduct(_ context.Context, productID uuid.UUID, _ int) ([]model.InventoryLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.InventoryLog
	for _, e := range r.entries {
		if e.ProductID == productID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubLedgerRepo) byProduct(productID uuid.UUID) []*model.InventoryLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.InventoryLog
	for _, e := range r.entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out
}

// ─── sale repository stub ────────────────────────────────────────────────────

type stubSaleRepo struct {
	mu       sync.Mutex
	sales    map[uuid.UUID]*model.Sale
	counters map[string]int
}

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{
		sales:    make(map[uuid.UUID]*model.Sale),
		counters: make(map[string]int),
	}
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSaleRepo) List(context.Context, dto.SaleFilter) ([]model.Sale, int64, error) {
	return nil, 0, nil
}

func (r *stubSaleRepo) Summary(context.Context, time.Time, time.Time) (*repository.SummaryRow, []repository.TopProductRow, error) {
	return &repository.SummaryRow{}, nil, nil
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, sale *model.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	sale.CreatedAt = time.Now()
	cp := *sale
	r.sales[sale.ID] = &cp
	return nil
}

func (r *stubSaleRepo) MarkVoidedTx(_ *gorm.DB, id uuid.UUID, notes string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok || s.Status != model.SaleCompleted {
		return false, nil
	}
	s.Status = model.SaleVoided
	s.Notes = &notes
	return true, nil
}

func (r *stubSaleRepo) NextSaleSeqTx(_ *gorm.DB, day string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[day]++
	return r.counters[day], nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

// ─── user repository stub ────────────────────────────────────────────────────

type stubUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newStubUserRepo(users ...*model.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

// ─── recording event sink ────────────────────────────────────────────────────

type sinkEvent struct {
	Level   string
	Module  string
	Action  string
	Message string
	ActorID *uuid.UUID
	Meta    map[string]interface{}
}

type recordingSink struct {
	mu     sync.Mutex
	events []sinkEvent
}

func (s *recordingSink) Emit(_ context.Context, level, module, action, message string, actorID *uuid.UUID, meta map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, sinkEvent{level, module, action, message, actorID, meta})
}

func (s *recordingSink) byAction(action string) []sinkEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []sinkEvent
	for _, e := range s.events {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

// ─── recording receipt dispatcher ────────────────────────────────────────────

type recordingDispatcher struct {
	mu   sync.Mutex
	jobs []ReceiptJob
}

func (d *recordingDispatcher) Dispatch(_ context.Context, job ReceiptJob) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.jobs = append(d.jobs, job)
}
