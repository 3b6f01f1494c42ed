package user_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"clickstore_back_end/internal/models"
	"clickstore_back_end/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

const testEmail = "client@clickstore.tn"

// identityStub remplace AuthRequired dans les tests
func identityStub(email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("email", email)
	}
}

// mockUserStore reproduit la sémantique snapshot + version du store Scylla.
type mockUserStore struct {
	users    map[string]models.User
	carts    map[string][]models.CartItem
	versions map[string]int64
	saveErr  error
	// afterGetCart permet de simuler une écriture concurrente entre la
	// lecture du snapshot et son écriture
	afterGetCart func()
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{
		users:    map[string]models.User{testEmail: {Email: testEmail, Role: "customer"}},
		carts:    map[string][]models.CartItem{},
		versions: map[string]int64{testEmail: 0},
	}
}

func (m *mockUserStore) Create(ctx context.Context, u models.User) (bool, error) {
	if _, exists := m.users[u.Email]; exists {
		return false, nil
	}
	m.users[u.Email] = u
	m.versions[u.Email] = 0
	return true, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *mockUserStore) GetCart(ctx context.Context, email string) ([]models.CartItem, int64, error) {
	if _, ok := m.users[email]; !ok {
		return nil, 0, repository.ErrNotFound
	}
	cart := make([]models.CartItem, len(m.carts[email]))
	copy(cart, m.carts[email])
	version := m.versions[email]
	if m.afterGetCart != nil {
		m.afterGetCart()
	}
	return cart, version, nil
}

func (m *mockUserStore) SaveCart(ctx context.Context, email string, items []models.CartItem, expectedVersion int64) (bool, error) {
	if m.saveErr != nil {
		return false, m.saveErr
	}
	if m.versions[email] != expectedVersion {
		return false, nil
	}
	if items == nil {
		delete(m.carts, email)
	} else {
		cart := make([]models.CartItem, len(items))
		copy(cart, items)
		m.carts[email] = cart
	}
	m.versions[email] = expectedVersion + 1
	return true, nil
}

type mockProductStore struct {
	products map[gocql.UUID]models.Product
}

func newMockProductStore(products ...models.Product) *mockProductStore {
	m := &mockProductStore{products: map[gocql.UUID]models.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductStore) List(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductStore) GetByID(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *mockProductStore) Create(ctx context.Context, p models.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockProductStore) Update(ctx context.Context, p models.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockProductStore) Delete(ctx context.Context, id gocql.UUID) error {
	delete(m.products, id)
	return nil
}

func (m *mockProductStore) SetAvailability(ctx context.Context, id gocql.UUID, available bool) error {
	p, ok := m.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.IsAvailable = available
	m.products[id] = p
	return nil
}

type mockOrderStore struct {
	claims    map[string]gocql.UUID
	orders    []models.Order
	createErr error
}

func newMockOrderStore() *mockOrderStore {
	return &mockOrderStore{claims: map[string]gocql.UUID{}}
}

func (m *mockOrderStore) ClaimCheckout(ctx context.Context, key string, orderID gocql.UUID) (bool, gocql.UUID, error) {
	if existing, ok := m.claims[key]; ok {
		return false, existing, nil
	}
	m.claims[key] = orderID
	return true, orderID, nil
}

func (m *mockOrderStore) ReleaseCheckout(ctx context.Context, key string) error {
	delete(m.claims, key)
	return nil
}

func (m *mockOrderStore) Create(ctx context.Context, o models.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.orders = append(m.orders, o)
	return nil
}

func (m *mockOrderStore) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		if o.Email == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	return m.orders, nil
}

// failingNotifier simule un canal de notification en panne.
type failingNotifier struct {
	calls int
}

func (n *failingNotifier) SendOrderNotification(email string, cart []models.CartItem, total float64) error {
	n.calls++
	return errors.New("smtp indisponible")
}

type recordingNotifier struct {
	email string
	cart  []models.CartItem
	total float64
	calls int
}

func (n *recordingNotifier) SendOrderNotification(email string, cart []models.CartItem, total float64) error {
	n.calls++
	n.email = email
	n.cart = cart
	n.total = total
	return nil
}

func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal: %v", err))
	}
	return string(data)
}
