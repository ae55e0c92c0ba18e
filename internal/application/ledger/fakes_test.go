package ledger

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/jhoicas/ventas-ledger/internal/domain"
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// memStore almacén en memoria. RunLedger serializa las transacciones (como los
// bloqueos de fila) y restaura una copia si fn falla.
type memStore struct {
	mu        sync.Mutex
	products  map[string]entity.Product
	customers map[string]entity.Customer
	sales     map[string]entity.Sale
	items     []entity.SaleItem
	payments  []entity.Payment

	commitErr error
}

func newMemStore() *memStore {
	return &memStore{
		products:  map[string]entity.Product{},
		customers: map[string]entity.Customer{},
		sales:     map[string]entity.Sale{},
	}
}

type snapshot struct {
	products  map[string]entity.Product
	customers map[string]entity.Customer
	sales     map[string]entity.Sale
	items     []entity.SaleItem
	payments  []entity.Payment
}

func (s *memStore) snapshot() snapshot {
	cp := snapshot{
		products:  make(map[string]entity.Product, len(s.products)),
		customers: make(map[string]entity.Customer, len(s.customers)),
		sales:     make(map[string]entity.Sale, len(s.sales)),
		items:     append([]entity.SaleItem(nil), s.items...),
		payments:  append([]entity.Payment(nil), s.payments...),
	}
	for k, v := range s.products {
		cp.products[k] = v
	}
	for k, v := range s.customers {
		cp.customers[k] = v
	}
	for k, v := range s.sales {
		cp.sales[k] = v
	}
	return cp
}

func (s *memStore) restore(cp snapshot) {
	s.products, s.customers, s.sales = cp.products, cp.customers, cp.sales
	s.items, s.payments = cp.items, cp.payments
}

func (s *memStore) RunLedger(ctx context.Context, fn func(
	repository.ProductRepository,
	repository.CustomerRepository,
	repository.SaleRepository,
	repository.PaymentRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.snapshot()
	r := &memRepos{s: s}
	if err := fn(r.products(), r.customers(), r.sales(), r.payments()); err != nil {
		s.restore(cp)
		return err
	}
	if s.commitErr != nil {
		s.restore(cp)
		return domain.TransactionFailure(s.commitErr)
	}
	return nil
}

// Lecturas fuera de transacción.
func (s *memStore) readRepos() *memRepos {
	return &memRepos{s: s, locking: true}
}

// memRepos implementa los puertos sobre memStore. locking=true toma el mutex en cada
// llamada (uso fuera de RunLedger).
type memRepos struct {
	s       *memStore
	locking bool
}

func (r *memRepos) lock() func() {
	if r.locking {
		r.s.mu.Lock()
		return r.s.mu.Unlock
	}
	return func() {}
}

type (
	memProducts  struct{ *memRepos }
	memCustomers struct{ *memRepos }
	memSales     struct{ *memRepos }
	memPayments  struct{ *memRepos }
)

func (r *memRepos) products() memProducts   { return memProducts{r} }
func (r *memRepos) customers() memCustomers { return memCustomers{r} }
func (r *memRepos) sales() memSales         { return memSales{r} }
func (r *memRepos) payments() memPayments   { return memPayments{r} }

// ── productos ───────────────────────────────────────────────────────────────

func (r memProducts) Create(_ context.Context, p *entity.Product) error {
	defer r.lock()()
	r.s.products[p.ID] = *p
	return nil
}

func (r memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.lock()()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r memProducts) Update(_ context.Context, p *entity.Product) error {
	defer r.lock()()
	r.s.products[p.ID] = *p
	return nil
}

func (r memProducts) DecrementStock(_ context.Context, id string, qty decimal.Decimal) error {
	defer r.lock()()
	p := r.s.products[id]
	if p.StockQuantity.LessThan(qty) {
		return errors.New("stock negativo")
	}
	p.StockQuantity = p.StockQuantity.Sub(qty)
	r.s.products[id] = p
	return nil
}

func (r memProducts) IncrementStock(_ context.Context, id string, qty decimal.Decimal) error {
	defer r.lock()()
	p := r.s.products[id]
	p.StockQuantity = p.StockQuantity.Add(qty)
	r.s.products[id] = p
	return nil
}

func (r memProducts) List(context.Context, repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}

func (r memProducts) IsReferenced(_ context.Context, id string) (bool, error) {
	defer r.lock()()
	for _, it := range r.s.items {
		if it.ProductID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r memProducts) Delete(_ context.Context, id string) error {
	defer r.lock()()
	delete(r.s.products, id)
	return nil
}

// ── clientes ────────────────────────────────────────────────────────────────

func (r memCustomers) Create(_ context.Context, c *entity.Customer) error {
	defer r.lock()()
	r.s.customers[c.ID] = *c
	return nil
}

func (r memCustomers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	defer r.lock()()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r memCustomers) List(context.Context, string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}

func (r memCustomers) Update(ctx context.Context, c *entity.Customer) error { return r.Create(ctx, c) }

func (r memCustomers) HasSales(_ context.Context, id string) (bool, error) {
	defer r.lock()()
	for _, s := range r.s.sales {
		if s.CustomerID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r memCustomers) Delete(_ context.Context, id string) error {
	defer r.lock()()
	delete(r.s.customers, id)
	return nil
}

// ── ventas ──────────────────────────────────────────────────────────────────

func (r memSales) paid(id string) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range r.s.payments {
		if p.SaleID == id {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}

func (r memSales) read(s entity.Sale) *entity.Sale {
	s.PaymentsTotal = r.paid(s.ID)
	return &s
}

func (r memSales) Create(_ context.Context, s *entity.Sale) error {
	defer r.lock()()
	cp := *s
	cp.PaymentsTotal = decimal.Zero
	r.s.sales[s.ID] = cp
	return nil
}

func (r memSales) CreateItem(_ context.Context, it *entity.SaleItem) error {
	defer r.lock()()
	r.s.items = append(r.s.items, *it)
	return nil
}

func (r memSales) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	defer r.lock()()
	s, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return r.read(s), nil
}

func (r memSales) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r memSales) byCustomer(customerID string, onlyOpen bool, newestFirst bool) []*entity.Sale {
	var out []*entity.Sale
	for _, s := range r.s.sales {
		if s.CustomerID != customerID || (onlyOpen && !s.IsOpen()) {
			continue
		}
		out = append(out, r.read(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SaleDate.Equal(out[j].SaleDate) {
			return out[i].ID < out[j].ID
		}
		if newestFirst {
			return out[i].SaleDate.After(out[j].SaleDate)
		}
		return out[i].SaleDate.Before(out[j].SaleDate)
	})
	return out
}

func (r memSales) ListOpenByCustomerForUpdate(_ context.Context, customerID string) ([]*entity.Sale, error) {
	defer r.lock()()
	return r.byCustomer(customerID, true, false), nil
}

func (r memSales) ListOpenByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error) {
	return r.ListOpenByCustomerForUpdate(ctx, customerID)
}

func (r memSales) UpdatePaymentStatus(_ context.Context, id, status string) error {
	defer r.lock()()
	s := r.s.sales[id]
	s.PaymentStatus = status
	r.s.sales[id] = s
	return nil
}

func (r memSales) ListItems(_ context.Context, saleID string) ([]*entity.SaleItem, error) {
	defer r.lock()()
	var out []*entity.SaleItem
	for _, it := range r.s.items {
		if it.SaleID == saleID {
			it := it
			out = append(out, &it)
		}
	}
	return out, nil
}

func (r memSales) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, int, error) {
	defer r.lock()()
	var out []*entity.Sale
	for _, s := range r.s.sales {
		if f.UserID != "" && s.UserID != f.UserID {
			continue
		}
		if f.CustomerID != "" && s.CustomerID != f.CustomerID {
			continue
		}
		out = append(out, r.read(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	total := len(out)
	if f.Offset < len(out) {
		out = out[f.Offset:]
	} else {
		out = nil
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (r memSales) ListByCustomer(_ context.Context, customerID string) ([]*entity.Sale, error) {
	defer r.lock()()
	return r.byCustomer(customerID, false, true), nil
}

func (r memSales) CustomerDebt(_ context.Context, customerID string) (decimal.Decimal, error) {
	defer r.lock()()
	total, paid := decimal.Zero, decimal.Zero
	for _, s := range r.s.sales {
		if s.CustomerID != customerID || s.PaymentStatus == entity.PaymentStatusPaid {
			continue
		}
		total = total.Add(s.TotalAmount)
		paid = paid.Add(r.paid(s.ID))
	}
	return decimal.Max(decimal.Zero, total.Sub(paid)), nil
}

// ── pagos ───────────────────────────────────────────────────────────────────

func (r memPayments) Create(_ context.Context, p *entity.Payment) error {
	defer r.lock()()
	r.s.payments = append(r.s.payments, *p)
	return nil
}

func (r memPayments) ListBySale(_ context.Context, saleID string) ([]*entity.Payment, error) {
	defer r.lock()()
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.SaleID == saleID {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r memPayments) SumBySale(_ context.Context, saleID string) (decimal.Decimal, error) {
	defer r.lock()()
	return memSales{r.memRepos}.paid(saleID), nil
}

var (
	_ repository.ProductRepository  = memProducts{}
	_ repository.CustomerRepository = memCustomers{}
	_ repository.SaleRepository     = memSales{}
	_ repository.PaymentRepository  = memPayments{}
	_ TxRunner                      = (*memStore)(nil)
)
