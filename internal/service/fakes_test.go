package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/alimikegami/apparel-store/internal/domain"
	"github.com/alimikegami/apparel-store/internal/dto"
	"github.com/alimikegami/apparel-store/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errInjected = errors.New("injected failure")

// memStore implements every repository plus Transactor. Transactions are serialized
// and roll the whole store back when fn fails. Values are copied in and out so callers
// never share slices with the store.
type memStore struct {
	trxMu sync.Mutex
	mu    sync.Mutex

	products   map[primitive.ObjectID]domain.Product
	categories map[primitive.ObjectID]domain.Category
	reviews    map[primitive.ObjectID]domain.Review
	orders     map[primitive.ObjectID]domain.Order
	counters   map[string]int64
	users      map[primitive.ObjectID]domain.User

	failures map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		products:   map[primitive.ObjectID]domain.Product{},
		categories: map[primitive.ObjectID]domain.Category{},
		reviews:    map[primitive.ObjectID]domain.Review{},
		orders:     map[primitive.ObjectID]domain.Order{},
		counters:   map[string]int64{},
		users:      map[primitive.ObjectID]domain.User{},
		failures:   map[string]error{},
	}
}

func (m *memStore) failOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op] = err
}

// fail must be called with mu held.
func (m *memStore) fail(op string) error {
	return m.failures[op]
}

type memSnapshot struct {
	products   map[primitive.ObjectID]domain.Product
	categories map[primitive.ObjectID]domain.Category
	reviews    map[primitive.ObjectID]domain.Review
	orders     map[primitive.ObjectID]domain.Order
	counters   map[string]int64
	users      map[primitive.ObjectID]domain.User
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (m *memStore) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.trxMu.Lock()
	defer m.trxMu.Unlock()

	m.mu.Lock()
	snap := memSnapshot{
		products:   cloneMap(m.products),
		categories: cloneMap(m.categories),
		reviews:    cloneMap(m.reviews),
		orders:     cloneMap(m.orders),
		counters:   cloneMap(m.counters),
		users:      cloneMap(m.users),
	}
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.products = snap.products
		m.categories = snap.categories
		m.reviews = snap.reviews
		m.orders = snap.orders
		m.counters = snap.counters
		m.users = snap.users
		m.mu.Unlock()
		return err
	}

	return nil
}

func copyVariants(set domain.VariantSet) domain.VariantSet {
	out, err := domain.NewVariantSet(set.List())
	if err != nil {
		panic(err)
	}
	return out
}

func copyProduct(p domain.Product) domain.Product {
	p.Variants = copyVariants(p.Variants)
	return p
}

func copyReview(r domain.Review) domain.Review {
	r.Images = append([]string{}, r.Images...)
	return r
}

func copyOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderItem{}, o.Items...)
	return o
}

// products

func (m *memStore) AddProduct(ctx context.Context, data domain.Product) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("AddProduct"); err != nil {
		return primitive.NilObjectID, err
	}
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	m.products[data.ID] = copyProduct(data)
	return data.ID, nil
}

func (m *memStore) GetProducts(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetProducts"); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, copyProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (m *memStore) GetProductsByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]domain.Product, error) {
	all, err := m.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Product{}
	for _, p := range all {
		if p.Category == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Product{}
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, copyProduct(p))
		}
	}
	return out, nil
}

func (m *memStore) GetProductByID(ctx context.Context, id primitive.ObjectID) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetProductByID"); err != nil {
		return domain.Product{}, err
	}
	p, ok := m.products[id]
	if !ok {
		return domain.Product{}, errs.ErrProductNotFound
	}
	return copyProduct(p), nil
}

func (m *memStore) UpdateProduct(ctx context.Context, data domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateProduct"); err != nil {
		return err
	}
	current, ok := m.products[data.ID]
	if !ok {
		return errs.ErrProductNotFound
	}
	data.AverageRating = current.AverageRating
	data.ReviewCount = current.ReviewCount
	data.CreatedAt = current.CreatedAt
	m.products[data.ID] = copyProduct(data)
	return nil
}

func (m *memStore) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DeleteProduct"); err != nil {
		return err
	}
	if _, ok := m.products[id]; !ok {
		return errs.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

// AdjustVariantStock mirrors the guarded $inc: a decrease only matches while stock
// covers it.
func (m *memStore) AdjustVariantStock(ctx context.Context, id primitive.ObjectID, color string, size domain.Size, delta int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("AdjustVariantStock"); err != nil {
		return false, err
	}
	p, ok := m.products[id]
	if !ok {
		return false, nil
	}
	variants := p.Variants.List()
	for i := range variants {
		if variants[i].Color != color {
			continue
		}
		if delta < 0 && variants[i].Inventory.Get(size) < -delta {
			return false, nil
		}
		variants[i].Inventory.Add(size, delta)
		set, err := domain.NewVariantSet(variants)
		if err != nil {
			return false, err
		}
		p.Variants = set
		m.products[id] = p
		return true, nil
	}
	return false, nil
}

func (m *memStore) SetProductRating(ctx context.Context, id primitive.ObjectID, average float64, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SetProductRating"); err != nil {
		return err
	}
	if p, ok := m.products[id]; ok {
		p.AverageRating = average
		p.ReviewCount = count
		m.products[id] = p
	}
	return nil
}

// categories

func (m *memStore) AddCategory(ctx context.Context, data domain.Category) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("AddCategory"); err != nil {
		return primitive.NilObjectID, err
	}
	for _, c := range m.categories {
		if c.Name == data.Name {
			return primitive.NilObjectID, errs.ErrDuplicateName
		}
	}
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	m.categories[data.ID] = data
	return data.ID, nil
}

func (m *memStore) GetCategories(ctx context.Context) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) GetCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Category{}
	for _, id := range ids {
		if c, ok := m.categories[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) GetCategoryByID(ctx context.Context, id primitive.ObjectID) (domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return domain.Category{}, errs.ErrCategoryNotFound
	}
	return c, nil
}

func (m *memStore) UpdateCategory(ctx context.Context, data domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateCategory"); err != nil {
		return err
	}
	if _, ok := m.categories[data.ID]; !ok {
		return errs.ErrCategoryNotFound
	}
	for id, c := range m.categories {
		if id != data.ID && c.Name == data.Name {
			return errs.ErrDuplicateName
		}
	}
	m.categories[data.ID] = data
	return nil
}

func (m *memStore) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return errs.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

// reviews

func (m *memStore) AddReview(ctx context.Context, data domain.Review) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("AddReview"); err != nil {
		return primitive.NilObjectID, err
	}
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	m.reviews[data.ID] = copyReview(data)
	return data.ID, nil
}

func (m *memStore) GetReviewsByProductID(ctx context.Context, productID primitive.ObjectID) ([]domain.Review, error) {
	return m.GetReviewsByProductIDs(ctx, []primitive.ObjectID{productID})
}

func (m *memStore) GetReviewsByProductIDs(ctx context.Context, productIDs []primitive.ObjectID) ([]domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetReviews"); err != nil {
		return nil, err
	}
	wanted := map[primitive.ObjectID]bool{}
	for _, id := range productIDs {
		wanted[id] = true
	}
	out := []domain.Review{}
	for _, r := range m.reviews {
		if wanted[r.ProductID] {
			out = append(out, copyReview(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) GetReviewByID(ctx context.Context, id primitive.ObjectID) (domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return domain.Review{}, errs.ErrReviewNotFound
	}
	return copyReview(r), nil
}

func (m *memStore) UpdateReview(ctx context.Context, data domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateReview"); err != nil {
		return err
	}
	if _, ok := m.reviews[data.ID]; !ok {
		return errs.ErrReviewNotFound
	}
	m.reviews[data.ID] = copyReview(data)
	return nil
}

func (m *memStore) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return errs.ErrReviewNotFound
	}
	delete(m.reviews, id)
	return nil
}

func (m *memStore) DeleteReviewsByProductID(ctx context.Context, productID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DeleteReviewsByProductID"); err != nil {
		return err
	}
	for id, r := range m.reviews {
		if r.ProductID == productID {
			delete(m.reviews, id)
		}
	}
	return nil
}

// orders

func (m *memStore) AddOrder(ctx context.Context, data domain.Order) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("AddOrder"); err != nil {
		return primitive.NilObjectID, err
	}
	for _, o := range m.orders {
		if o.OrderNo == data.OrderNo {
			return primitive.NilObjectID, errors.New("E11000 duplicate key error: orderNo")
		}
	}
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	m.orders[data.ID] = copyOrder(data)
	return data.ID, nil
}

func (m *memStore) sortedOrders(keep func(domain.Order) bool) []domain.Order {
	out := []domain.Order{}
	for _, o := range m.orders {
		if keep(o) {
			out = append(out, copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNo > out[j].OrderNo })
	return out
}

func (m *memStore) GetOrders(ctx context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedOrders(func(domain.Order) bool { return true }), nil
}

func (m *memStore) GetOrderByID(ctx context.Context, id primitive.ObjectID) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.Order{}, errs.ErrOrderNotFound
	}
	return copyOrder(o), nil
}

func (m *memStore) GetOrdersByContactNumber(ctx context.Context, contactNumber string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedOrders(func(o domain.Order) bool { return o.ContactNumber == contactNumber }), nil
}

func (m *memStore) GetOrderByTracking(ctx context.Context, orderNo int64, contactNumber string, email string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.OrderNo == orderNo && o.ContactNumber == contactNumber && o.Email == email {
			return copyOrder(o), nil
		}
	}
	return domain.Order{}, errs.ErrOrderDetailsNotFound
}

func (m *memStore) GetOrderStatusSummary(ctx context.Context, orderNo int64, contactNumber string) (domain.OrderStatusSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.OrderNo == orderNo && o.ContactNumber == contactNumber {
			return domain.OrderStatusSummary{
				OrderNo:      o.OrderNo,
				CustomerName: o.CustomerName,
				TotalAmount:  o.TotalAmount,
				Status:       o.Status,
				CreatedAt:    o.CreatedAt,
			}, nil
		}
	}
	return domain.OrderStatusSummary{}, errs.ErrOrderDetailsNotFound
}

func (m *memStore) GetMaxOrderNo(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var max int64
	for _, o := range m.orders {
		if o.OrderNo > max {
			max = o.OrderNo
		}
	}
	return max, nil
}

func (m *memStore) UpdateOrder(ctx context.Context, data domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateOrder"); err != nil {
		return err
	}
	if _, ok := m.orders[data.ID]; !ok {
		return errs.ErrOrderNotFound
	}
	m.orders[data.ID] = copyOrder(data)
	return nil
}

func (m *memStore) DeleteOrder(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("DeleteOrder"); err != nil {
		return err
	}
	if _, ok := m.orders[id]; !ok {
		return errs.ErrOrderNotFound
	}
	delete(m.orders, id)
	return nil
}

// counters

func (m *memStore) NextSequence(ctx context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("NextSequence"); err != nil {
		return 0, err
	}
	m.counters[name]++
	return m.counters[name], nil
}

func (m *memStore) EnsureSequenceAtLeast(ctx context.Context, name string, floor int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counters[name] < floor {
		m.counters[name] = floor
	}
	return nil
}

// users

func (m *memStore) AddUser(ctx context.Context, data domain.User) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == data.Email {
			return primitive.NilObjectID, errs.ErrUserAlreadyExists
		}
	}
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	m.users[data.ID] = data
	return data.ID, nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, nil
}

func (m *memStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, errs.ErrAccountNotFound
	}
	return u, nil
}

func (m *memStore) GetUsers(ctx context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m *memStore) UpdateUserPassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return errs.ErrAccountNotFound
	}
	u.HashedPassword = hashedPassword
	m.users[id] = u
	return nil
}

// seeding helpers

func (m *memStore) seedProduct(name string, category primitive.ObjectID, variants ...domain.Variant) domain.Product {
	set, err := domain.NewVariantSet(variants)
	if err != nil {
		panic(err)
	}
	p := domain.Product{ID: primitive.NewObjectID(), Name: name, Price: 10, Category: category, Variants: set}
	m.mu.Lock()
	m.products[p.ID] = p
	m.mu.Unlock()
	return p
}

func (m *memStore) stock(productID primitive.ObjectID, color string, size domain.Size) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.products[productID].Variants.Find(color)
	if !ok {
		return -1
	}
	return v.Inventory.Get(size)
}

func (m *memStore) product(id primitive.ObjectID) domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyProduct(m.products[id])
}

func (m *memStore) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

// fakeStorage keeps uploaded objects in memory.
type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string]dto.FileUpload
	deleted   []string
	uploadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]dto.FileUpload{}}
}

func (s *fakeStorage) Upload(ctx context.Context, key string, file dto.FileUpload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.objects[key] = file
	return s.PublicURL(key), nil
}

func (s *fakeStorage) DeleteByKey(ctx context.Context, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	_, ok := s.objects[key]
	delete(s.objects, key)
	return ok
}

func (s *fakeStorage) PublicURL(key string) string {
	return "https://bucket.s3.us-east-1.amazonaws.com/" + key
}

func (s *fakeStorage) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.objects))
	for k := range s.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s *fakeStorage) has(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[strings.TrimPrefix(url, "https://bucket.s3.us-east-1.amazonaws.com/")]
	return ok
}

type publishedEvent struct {
	eventType string
	key       string
	data      interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, eventType string, key string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{eventType: eventType, key: key, data: data})
	return p.err
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.eventType)
	}
	return out
}

type fakeNotifier struct {
	mu     sync.Mutex
	orders []domain.Order
	err    error
}

func (n *fakeNotifier) NotifyOrderPlaced(ctx context.Context, order domain.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, order)
	return n.err
}

// blockingNotifier holds the send until release is closed and reports the context
// state it saw.
type blockingNotifier struct {
	release chan struct{}
	seen    chan error
}

func (n *blockingNotifier) NotifyOrderPlaced(ctx context.Context, order domain.Order) error {
	<-n.release
	n.seen <- ctx.Err()
	return nil
}

func imageFile(field, name string) dto.FileUpload {
	return dto.FileUpload{
		FieldName:   field,
		FileName:    name,
		ContentType: "image/png",
		Size:        4,
		Content:     []byte("\x89PNG"),
	}
}

func strPtr(s string) *string { return &s }
