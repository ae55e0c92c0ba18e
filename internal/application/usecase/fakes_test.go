package usecase

import (
	"context"
	"sync"

	"github.com/jhoicas/ventas-ledger/internal/domain"
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type fakeProductRepo struct {
	items      map[string]*entity.Product
	referenced map[string]bool
	lastFilter repository.ProductFilter
}

func newFakeProductRepo(list ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{items: map[string]*entity.Product{}, referenced: map[string]bool{}}
	for _, p := range list {
		r.items[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id string, qty decimal.Decimal) error {
	r.items[id].StockQuantity = r.items[id].StockQuantity.Sub(qty)
	return nil
}

func (r *fakeProductRepo) IncrementStock(_ context.Context, id string, qty decimal.Decimal) error {
	r.items[id].StockQuantity = r.items[id].StockQuantity.Add(qty)
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.lastFilter = f
	out := make([]*entity.Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) IsReferenced(_ context.Context, id string) (bool, error) {
	return r.referenced[id], nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type fakeCategoryRepo struct {
	items    map[string]*entity.Category
	products map[string]int
}

func newFakeCategoryRepo(list ...*entity.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{items: map[string]*entity.Category{}, products: map[string]int{}}
	for _, c := range list {
		r.items[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.items[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	return r.items[id], nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.items[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) List(context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) CountProducts(_ context.Context, id string) (int, error) {
	return r.products[id], nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type fakeCustomerRepo struct {
	items    map[string]*entity.Customer
	withSale map[string]bool
}

func newFakeCustomerRepo(list ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{items: map[string]*entity.Customer{}, withSale: map[string]bool{}}
	for _, c := range list {
		r.items[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.items[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return r.items[id], nil
}

func (r *fakeCustomerRepo) List(context.Context, string, int, int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.items[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) HasSales(_ context.Context, id string) (bool, error) {
	return r.withSale[id], nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type fakeExpenseRepo struct {
	items      map[string]*entity.Expense
	lastFilter repository.ExpenseFilter
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{items: map[string]*entity.Expense{}}
}

func (r *fakeExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	r.items[e.ID] = e
	return nil
}

func (r *fakeExpenseRepo) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	return r.items[id], nil
}

func (r *fakeExpenseRepo) Update(_ context.Context, e *entity.Expense) error {
	r.items[e.ID] = e
	return nil
}

func (r *fakeExpenseRepo) List(_ context.Context, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	r.lastFilter = f
	out := make([]*entity.Expense, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeExpenseRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

// countingCache cuenta las invalidaciones.
type countingCache struct {
	mu  sync.Mutex
	n   int
	err error
}

func (c *countingCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return c.err
}

func (c *countingCache) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

type fakeUserRepo struct {
	items  map[string]*entity.User
	active map[string]bool
}

func newFakeUserRepo(list ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{items: map[string]*entity.User{}, active: map[string]bool{}}
	for _, u := range list {
		r.items[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, x := range r.items {
		if x.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.items {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.items))
	for _, u := range r.items {
		if !u.IsSystem {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeUserRepo) HasActivity(_ context.Context, id string) (bool, error) {
	return r.active[id], nil
}
