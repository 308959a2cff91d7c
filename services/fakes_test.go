package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/devcom-labs/devcom-store/models"
	"github.com/devcom-labs/devcom-store/utils"
)

// In-memory fakes implementing the store and collaborator ports. They are
// safe for concurrent use so the concurrency tests exercise real
// interleavings.

type fakeCatalog struct {
	mu       sync.Mutex
	products map[uint]models.Product
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[uint]models.Product{}}
}

func (f *fakeCatalog) put(p models.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[p.ID] = p
}

func (f *fakeCatalog) GetProduct(_ context.Context, id uint) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok || !p.IsActive {
		return nil, nil
	}
	return &p, nil
}

type fakeAddresses struct {
	addresses map[uint]models.Address
}

func newFakeAddresses() *fakeAddresses {
	return &fakeAddresses{addresses: map[uint]models.Address{}}
}

func (f *fakeAddresses) GetAddress(_ context.Context, id, ownerID uint) (*models.Address, error) {
	a, ok := f.addresses[id]
	if !ok || a.UserID != ownerID {
		return nil, nil
	}
	return &a, nil
}

type fakeCartStore struct {
	mu     sync.Mutex
	nextID uint
	carts  map[uint]*models.Cart // keyed by user id
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[uint]*models.Cart{}}
}

func (f *fakeCartStore) copyOf(cart *models.Cart) *models.Cart {
	cp := *cart
	cp.Items = append([]models.CartItem(nil), cart.Items...)
	if cart.CouponID != nil {
		id := *cart.CouponID
		cp.CouponID = &id
	}
	return &cp
}

func (f *fakeCartStore) byCartID(cartID uint) *models.Cart {
	for _, cart := range f.carts {
		if cart.ID == cartID {
			return cart
		}
	}
	return nil
}

func (f *fakeCartStore) GetByUser(_ context.Context, userID uint) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[userID]
	if !ok {
		return nil, nil
	}
	return f.copyOf(cart), nil
}

func (f *fakeCartStore) GetOrCreate(_ context.Context, userID uint) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cart, ok := f.carts[userID]; ok {
		return f.copyOf(cart), nil
	}
	f.nextID++
	cart := &models.Cart{ID: f.nextID, UserID: userID}
	f.carts[userID] = cart
	return f.copyOf(cart), nil
}

func (f *fakeCartStore) UpsertItem(_ context.Context, cartID, productID uint, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart := f.byCartID(cartID)
	if cart == nil {
		return fmt.Errorf("cart %d not found", cartID)
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += qty
			return nil
		}
	}
	cart.Items = append(cart.Items, models.CartItem{CartID: cartID, ProductID: productID, Quantity: qty})
	return nil
}

func (f *fakeCartStore) RemoveItem(_ context.Context, cartID, productID uint, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart := f.byCartID(cartID)
	if cart == nil {
		return fmt.Errorf("cart %d not found", cartID)
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			if qty >= cart.Items[i].Quantity {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			} else {
				cart.Items[i].Quantity -= qty
			}
			return nil
		}
	}
	return nil
}

func (f *fakeCartStore) ClearItems(_ context.Context, cartID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cart := f.byCartID(cartID); cart != nil {
		cart.Items = nil
	}
	return nil
}

func (f *fakeCartStore) AttachCoupon(_ context.Context, cartID, couponID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cart := f.byCartID(cartID); cart != nil {
		id := couponID
		cart.CouponID = &id
	}
	return nil
}

func (f *fakeCartStore) DetachCoupon(_ context.Context, cartID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cart := f.byCartID(cartID); cart != nil {
		cart.CouponID = nil
	}
	return nil
}

type fakeCouponStore struct {
	mu      sync.Mutex
	nextID  uint
	coupons map[uint]models.Coupon
}

func newFakeCouponStore() *fakeCouponStore {
	return &fakeCouponStore{coupons: map[uint]models.Coupon{}}
}

func (f *fakeCouponStore) put(c models.Coupon) models.Coupon {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == 0 {
		f.nextID++
		c.ID = f.nextID
	}
	f.coupons[c.ID] = c
	return c
}

func (f *fakeCouponStore) Create(_ context.Context, coupon *models.Coupon) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	coupon.ID = f.nextID
	f.coupons[coupon.ID] = *coupon
	return nil
}

func (f *fakeCouponStore) Save(_ context.Context, coupon *models.Coupon) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.coupons[coupon.ID] = *coupon
	return nil
}

func (f *fakeCouponStore) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.coupons, id)
	return nil
}

func (f *fakeCouponStore) GetByID(_ context.Context, id uint) (*models.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.coupons[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeCouponStore) GetByCode(_ context.Context, code string) (*models.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.coupons {
		if c.Code == code {
			coupon := c
			return &coupon, nil
		}
	}
	return nil, nil
}

func (f *fakeCouponStore) ExistsForOwner(_ context.Context, ownerID uint, name, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.coupons {
		if c.OwnerID == ownerID && (c.Name == name || c.Code == code) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCouponStore) ListActive(_ context.Context) ([]models.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Coupon
	for _, c := range f.coupons {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCouponStore) List(_ context.Context, page, limit int) ([]models.Coupon, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Coupon
	for _, c := range f.coupons {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

type fakeOrderStore struct {
	mu        sync.Mutex
	nextID    uint
	orders    map[uint]*models.Order
	createErr error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[uint]*models.Order{}}
}

func (f *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	order.ID = f.nextID
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, id uint) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *order
	return &cp, nil
}

func (f *fakeOrderStore) GetBySessionID(_ context.Context, sessionID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, order := range f.orders {
		if order.PaymentSessionID == sessionID {
			cp := *order
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderStore) ListByUser(_ context.Context, userID uint, page, limit int) ([]models.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderStore) List(_ context.Context, status string, page, limit int) ([]models.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, order := range f.orders {
		if status == "" || order.Status == status {
			out = append(out, *order)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderStore) MarkPaid(_ context.Context, orderID uint, paymentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return fmt.Errorf("order %d not found", orderID)
	}
	order.IsPaymentDone = true
	order.PaymentID = paymentID
	return nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, orderID uint, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return fmt.Errorf("order %d not found", orderID)
	}
	order.Status = status
	return nil
}

type fakeStock struct {
	mu       sync.Mutex
	stock    map[uint]int
	releases int
}

func newFakeStock() *fakeStock {
	return &fakeStock{stock: map[uint]int{}}
}

func (f *fakeStock) Reserve(_ context.Context, items []models.OrderItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range items {
		if f.stock[item.ProductID] < item.Quantity {
			return utils.BadRequestError("does not have enough stock", map[string]interface{}{
				"product_id": item.ProductID,
			})
		}
	}
	for _, item := range items {
		f.stock[item.ProductID] -= item.Quantity
	}
	return nil
}

func (f *fakeStock) Release(_ context.Context, items []models.OrderItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range items {
		f.stock[item.ProductID] += item.Quantity
	}
	f.releases++
	return nil
}

func (f *fakeStock) level(productID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stock[productID]
}

type fakeGateway struct {
	mu       sync.Mutex
	err      error
	calls    int
	sessions []PaymentSession
}

func (f *fakeGateway) CreateSession(_ context.Context, amountMinorUnits int64, currency, receipt string) (*PaymentSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	session := PaymentSession{
		ID:       fmt.Sprintf("sess_%d", f.calls),
		Amount:   amountMinorUnits,
		Currency: currency,
		Receipt:  receipt,
	}
	f.sessions = append(f.sessions, session)
	return &session, nil
}
