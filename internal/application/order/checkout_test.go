package order

import (
	"context"
	"errors"
	"testing"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/party"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// =========================================
// 内存fixture:替换mysql/redis实现,聚焦用例编排逻辑
// =========================================

type fakeBookRepo struct {
	books map[uint]*book.Book
	// failDecrementID 模拟并发竞争:预检通过后该书的扣减失败
	failDecrementID uint
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	m := make(map[uint]*book.Book)
	for _, b := range books {
		m[b.ID] = b
	}
	return &fakeBookRepo{books: m}
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error {
	r.books[b.ID] = b
	return nil
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error {
	r.books[b.ID] = b
	return nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error {
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) Search(ctx context.Context, params book.SearchParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookRepo) DecrementStock(ctx context.Context, id uint, quantity int) error {
	if id == r.failDecrementID {
		return book.ErrInsufficientStock
	}
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.Quantity-quantity < 0 {
		return book.ErrInsufficientStock
	}
	b.Quantity -= quantity
	return nil
}

func (r *fakeBookRepo) DecrementStockUnchecked(ctx context.Context, id uint, quantity int) error {
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.Quantity -= quantity
	return nil
}

// snapshot/restore 供事务fixture回滚用
func (r *fakeBookRepo) snapshot() map[uint]book.Book {
	s := make(map[uint]book.Book, len(r.books))
	for id, b := range r.books {
		s[id] = *b
	}
	return s
}

func (r *fakeBookRepo) restore(s map[uint]book.Book) {
	r.books = make(map[uint]*book.Book, len(s))
	for id, b := range s {
		copied := b
		r.books[id] = &copied
	}
}

type fakeOrderRepo struct {
	orders []*order.Order
	nextID uint
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	if len(o.Items) == 0 {
		return order.ErrInvalidOrderItems
	}
	r.nextID++
	o.ID = r.nextID
	r.orders = append(r.orders, o)
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListSummaries(ctx context.Context, params order.ListParams) ([]*order.Summary, int64, error) {
	return nil, 0, nil
}

func (r *fakeOrderRepo) ListItems(ctx context.Context, orderID uint) ([]*order.ItemView, error) {
	return nil, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uint, status order.Status) error {
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id uint) error {
	return nil
}

// fakeTxManager 模拟事务语义:fn失败时恢复两个仓储的快照
type fakeTxManager struct {
	bookRepo  *fakeBookRepo
	orderRepo *fakeOrderRepo
}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	bookSnap := m.bookRepo.snapshot()
	orderSnap := make([]*order.Order, len(m.orderRepo.orders))
	copy(orderSnap, m.orderRepo.orders)
	nextID := m.orderRepo.nextID

	if err := fn(ctx); err != nil {
		m.bookRepo.restore(bookSnap)
		m.orderRepo.orders = orderSnap
		m.orderRepo.nextID = nextID
		return err
	}
	return nil
}

type fakeCartStore struct {
	carts   map[string]*cart.Cart
	cleared []string
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[string]*cart.Cart)}
}

func (s *fakeCartStore) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if c, ok := s.carts[sessionID]; ok {
		return c, nil
	}
	return cart.New(), nil
}

func (s *fakeCartStore) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	s.carts[sessionID] = c
	return nil
}

func (s *fakeCartStore) Clear(ctx context.Context, sessionID string) error {
	delete(s.carts, sessionID)
	s.cleared = append(s.cleared, sessionID)
	return nil
}

type fakePartyService struct {
	client *party.Client
	calls  int
}

func (s *fakePartyService) FindOrCreateClientForUser(ctx context.Context, userID uint, login string) (*party.Client, error) {
	s.calls++
	return s.client, nil
}

type fakeEventPublisher struct {
	events []OrderCreatedEvent
}

func (p *fakeEventPublisher) PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) {
	p.events = append(p.events, event)
}

// =========================================
// 结算用例测试
// =========================================

type checkoutFixture struct {
	uc        *CheckoutUseCase
	bookRepo  *fakeBookRepo
	orderRepo *fakeOrderRepo
	cartStore *fakeCartStore
	partySvc  *fakePartyService
	events    *fakeEventPublisher
}

func newCheckoutFixture(books ...*book.Book) *checkoutFixture {
	bookRepo := newFakeBookRepo(books...)
	orderRepo := &fakeOrderRepo{}
	cartStore := newFakeCartStore()
	userID := uint(42)
	partySvc := &fakePartyService{client: &party.Client{ID: 7, FullName: "zhang", UserID: &userID}}
	events := &fakeEventPublisher{}
	tx := &fakeTxManager{bookRepo: bookRepo, orderRepo: orderRepo}

	return &checkoutFixture{
		uc:        NewCheckoutUseCase(orderRepo, bookRepo, cartStore, partySvc, tx, events),
		bookRepo:  bookRepo,
		orderRepo: orderRepo,
		cartStore: cartStore,
		partySvc:  partySvc,
		events:    events,
	}
}

func (f *checkoutFixture) fillCart(t *testing.T, sessionID string, entries ...cart.Entry) {
	c := cart.New()
	c.Entries = append(c.Entries, entries...)
	if err := f.cartStore.Save(context.Background(), sessionID, c); err != nil {
		t.Fatalf("准备购物车失败: %v", err)
	}
}

// TestCheckout_Success 测试正常结算
func TestCheckout_Success(t *testing.T) {
	f := newCheckoutFixture(
		&book.Book{ID: 1, Title: "Go语言实战", Price: 99.00, Quantity: 10},
		&book.Book{ID: 2, Title: "领域驱动设计", Price: 35.00, Quantity: 3},
	)
	// 购物车里是加购时刻的快照价(59.80),目录价已涨到99.00
	f.fillCart(t, "s1",
		cart.Entry{BookID: 1, Title: "Go语言实战", Price: 59.80, Quantity: 2},
		cart.Entry{BookID: 2, Title: "领域驱动设计", Price: 35.00, Quantity: 1},
	)

	resp, err := f.uc.Execute(context.Background(), CheckoutRequest{
		UserID: 42, Login: "zhang", SessionID: "s1",
	})
	if err != nil {
		t.Fatalf("结算失败: %v", err)
	}

	// 订单总额按快照价计算,不受目录改价影响
	if resp.Total != 154.60 {
		t.Errorf("期望总额154.60，实际%f", resp.Total)
	}
	if resp.Status != "new" {
		t.Errorf("期望状态new，实际%s", resp.Status)
	}
	if resp.ItemCount != 2 {
		t.Errorf("期望2个条目，实际%d", resp.ItemCount)
	}

	// 订单归属解析出的客户档案
	o, err := f.orderRepo.FindByID(context.Background(), resp.OrderID)
	if err != nil {
		t.Fatalf("订单未落库: %v", err)
	}
	if o.ClientID != 7 {
		t.Errorf("期望ClientID=7，实际%d", o.ClientID)
	}

	// 库存已扣减
	if b := f.bookRepo.books[1]; b.Quantity != 8 {
		t.Errorf("期望图书1库存8，实际%d", b.Quantity)
	}
	if b := f.bookRepo.books[2]; b.Quantity != 2 {
		t.Errorf("期望图书2库存2，实际%d", b.Quantity)
	}

	// 购物车已清空
	if len(f.cartStore.cleared) != 1 || f.cartStore.cleared[0] != "s1" {
		t.Errorf("期望清空会话s1的购物车，实际%v", f.cartStore.cleared)
	}

	// 订单事件已发布
	if len(f.events.events) != 1 {
		t.Fatalf("期望发布1个事件，实际%d个", len(f.events.events))
	}
	if f.events.events[0].Source != "checkout" {
		t.Errorf("期望事件来源checkout，实际%s", f.events.events[0].Source)
	}
}

// TestCheckout_EmptyCart 测试空购物车结算
func TestCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.uc.Execute(context.Background(), CheckoutRequest{
		UserID: 42, Login: "zhang", SessionID: "s1",
	})
	if !errors.Is(err, order.ErrEmptyCart) {
		t.Errorf("期望ErrEmptyCart，实际%v", err)
	}
	if len(f.orderRepo.orders) != 0 {
		t.Error("空车结算不应创建订单")
	}
}

// TestCheckout_BookRemoved 测试车内图书已被下架
func TestCheckout_BookRemoved(t *testing.T) {
	f := newCheckoutFixture(
		&book.Book{ID: 1, Title: "Go语言实战", Price: 59.80, Quantity: 10},
	)
	f.fillCart(t, "s1",
		cart.Entry{BookID: 1, Title: "Go语言实战", Price: 59.80, Quantity: 1},
		cart.Entry{BookID: 99, Title: "已删除的书", Price: 10.00, Quantity: 1},
	)

	_, err := f.uc.Execute(context.Background(), CheckoutRequest{
		UserID: 42, Login: "zhang", SessionID: "s1",
	})
	if !apperrors.IsCode(err, apperrors.ErrCodeBookNotFound) {
		t.Errorf("期望图书不存在错误，实际%v", err)
	}

	// 预检失败:不落单、不扣库存、不清车
	if len(f.orderRepo.orders) != 0 {
		t.Error("预检失败不应创建订单")
	}
	if f.bookRepo.books[1].Quantity != 10 {
		t.Errorf("预检失败不应扣减库存，实际%d", f.bookRepo.books[1].Quantity)
	}
	if len(f.cartStore.cleared) != 0 {
		t.Error("预检失败不应清空购物车")
	}
}

// TestCheckout_InsufficientStock 测试库存不足
func TestCheckout_InsufficientStock(t *testing.T) {
	f := newCheckoutFixture(
		&book.Book{ID: 1, Title: "Go语言实战", Price: 59.80, Quantity: 2},
	)
	f.fillCart(t, "s1",
		cart.Entry{BookID: 1, Title: "Go语言实战", Price: 59.80, Quantity: 3},
	)

	_, err := f.uc.Execute(context.Background(), CheckoutRequest{
		UserID: 42, Login: "zhang", SessionID: "s1",
	})
	if !apperrors.IsCode(err, apperrors.ErrCodeInsufficientStock) {
		t.Errorf("期望库存不足错误，实际%v", err)
	}
	if len(f.orderRepo.orders) != 0 {
		t.Error("库存不足不应创建订单")
	}
}

// TestCheckout_TxRollback 测试事务回滚
// 预检通过后扣减仍可能因并发竞争失败,此时订单与已扣库存必须整体回滚
func TestCheckout_TxRollback(t *testing.T) {
	f := newCheckoutFixture(
		&book.Book{ID: 1, Title: "Go语言实战", Price: 59.80, Quantity: 10},
		&book.Book{ID: 2, Title: "领域驱动设计", Price: 35.00, Quantity: 3},
	)
	// 图书2的扣减在事务内失败(模拟被并发请求买光)
	f.bookRepo.failDecrementID = 2

	f.fillCart(t, "s1",
		cart.Entry{BookID: 1, Title: "Go语言实战", Price: 59.80, Quantity: 2},
		cart.Entry{BookID: 2, Title: "领域驱动设计", Price: 35.00, Quantity: 1},
	)

	_, err := f.uc.Execute(context.Background(), CheckoutRequest{
		UserID: 42, Login: "zhang", SessionID: "s1",
	})
	if !apperrors.IsCode(err, apperrors.ErrCodeInsufficientStock) {
		t.Errorf("期望库存不足错误，实际%v", err)
	}

	// 整体回滚:订单不存在、图书1已扣的库存恢复
	if len(f.orderRepo.orders) != 0 {
		t.Error("事务失败后不应存在订单")
	}
	if f.bookRepo.books[1].Quantity != 10 {
		t.Errorf("期望图书1库存回滚到10，实际%d", f.bookRepo.books[1].Quantity)
	}

	// 购物车保留,事件不发布
	if len(f.cartStore.cleared) != 0 {
		t.Error("事务失败不应清空购物车")
	}
	if len(f.events.events) != 0 {
		t.Error("事务失败不应发布事件")
	}
}
