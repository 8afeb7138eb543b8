package service

import (
	"context"
	"sort"
	"time"

	"sellerhub/internal/dto"
	"sellerhub/internal/model"
	"sellerhub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubStoreRepo is an in-memory StoreRepository for testing.
type stubStoreRepo struct {
	stores map[uuid.UUID]*model.Store
	err    error // injected failure for all reads
}

func newStubStoreRepo() *stubStoreRepo {
	return &stubStoreRepo{stores: make(map[uuid.UUID]*model.Store)}
}

func (r *stubStoreRepo) Create(_ context.Context, s *model.Store) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Active = true
	r.stores[s.ID] = s
	return nil
}

func (r *stubStoreRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Store, error) {
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.stores[id]
	if !ok || !s.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubStoreRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*model.Store, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, s := range r.stores {
		if s.UserID == userID && s.Active {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubStoreRepo) Update(_ context.Context, s *model.Store) error {
	r.stores[s.ID] = s
	return nil
}

func (r *stubStoreRepo) ListExpiringPlans(_ context.Context, until time.Time) ([]model.Store, error) {
	if r.err != nil {
		return nil, r.err
	}
	now := time.Now()
	var out []model.Store
	for _, s := range r.stores {
		if s.Active && s.PlanExpiresAt != nil && s.PlanExpiresAt.After(now) && !s.PlanExpiresAt.After(until) {
			out = append(out, *s)
		}
	}
	return out, nil
}

var _ repository.StoreRepository = (*stubStoreRepo)(nil)

// stubProductRepo is an in-memory ProductRepository for testing.
type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	err      error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = time.Now()
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) List(_ context.Context, storeID uuid.UUID, filter dto.ProductFilter) ([]model.Product, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	var out []model.Product
	for _, p := range r.products {
		if p.StoreID != storeID {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && p.Status != filter.Status {
			continue
		}
		if filter.Status == "" && p.Status == model.ProductArchived {
			continue
		}
		if filter.Category != "" && (p.Category == nil || *p.Category != filter.Category) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) ListByStore(_ context.Context, storeID uuid.UUID) ([]model.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.Product
	for _, p := range r.products {
		if p.StoreID == storeID && p.Status != model.ProductArchived {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	p.UpdatedAt = time.Now()
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) Archive(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = model.ProductArchived
	return nil
}

func (r *stubProductRepo) AdjustQuantity(_ context.Context, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Quantity += delta
	if p.Quantity < 0 {
		p.Quantity = 0
	}
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubSaleRepo is an in-memory SaleRepository for testing. ListByStore
// mirrors the SQL contract: day-granular inclusive bounds, ascending by date.
type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
	err   error
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) Create(_ context.Context, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSaleRepo) List(_ context.Context, storeID uuid.UUID, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	var out []model.Sale
	for _, s := range r.sales {
		if s.StoreID != storeID {
			continue
		}
		day := s.SaleDate.Format("2006-01-02")
		if filter.From != "" && day < filter.From {
			continue
		}
		if filter.To != "" && day > filter.To {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) ListByStore(_ context.Context, storeID uuid.UUID, from, to *time.Time) ([]model.Sale, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.Sale
	for _, s := range r.sales {
		if s.StoreID != storeID {
			continue
		}
		day := s.SaleDate.Format("2006-01-02")
		if from != nil && day < from.Format("2006-01-02") {
			continue
		}
		if to != nil && day > to.Format("2006-01-02") {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.Before(out[j].SaleDate) })
	return out, nil
}

func (r *stubSaleRepo) Update(_ context.Context, s *model.Sale) error {
	clone := *s
	r.sales[s.ID] = &clone
	return nil
}

func (r *stubSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// stubReviewRepo is an in-memory ReviewRepository for testing.
type stubReviewRepo struct {
	reviews []model.Review
	err     error
}

func newStubReviewRepo() *stubReviewRepo { return &stubReviewRepo{} }

func (r *stubReviewRepo) Create(_ context.Context, rv *model.Review) error {
	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now()
	}
	r.reviews = append(r.reviews, *rv)
	return nil
}

func (r *stubReviewRepo) ListRecent(_ context.Context, storeID uuid.UUID, limit int) ([]model.Review, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []model.Review
	for _, rv := range r.reviews {
		if rv.StoreID == storeID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ repository.ReviewRepository = (*stubReviewRepo)(nil)

// stubUserRepo is an in-memory UserRepository for testing.
type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Active {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = false
	}
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)
