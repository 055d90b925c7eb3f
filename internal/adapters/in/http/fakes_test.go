package http_test

import (
	"context"
	"sync"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// In-memory stores standing in for Postgres so handler tests run without a
// database. Repositories honor the same error contract as the real adapters.

type memoryOrderStore struct {
	mu     sync.Mutex
	orders map[string]*order.Order
}

func newMemoryOrderStore() *memoryOrderStore {
	return &memoryOrderStore{orders: make(map[string]*order.Order)}
}

type memoryOrderRepo struct {
	store *memoryOrderStore
}

func (r memoryOrderRepo) Add(_ context.Context, aggregate *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (r memoryOrderRepo) Update(_ context.Context, aggregate *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := aggregate.ID().String()
	if _, ok := r.store.orders[key]; !ok {
		return errs.NewObjectNotFoundError("order_id", key)
	}

	r.store.orders[key] = aggregate
	return nil
}

func (r memoryOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order_id", id.String())
	}

	return order.RestoreOrder(
		stored.ID(), stored.OwnerID(), stored.Items(), stored.TotalAmount(),
		stored.Status(), stored.CreatedAt(), stored.UpdatedAt(),
	)
}

type memoryOrderUoW struct {
	repo memoryOrderRepo
}

func (memoryOrderUoW) Begin(_ context.Context) error    { return nil }
func (memoryOrderUoW) Commit(_ context.Context) error   { return nil }
func (memoryOrderUoW) Rollback(_ context.Context) error { return nil }

func (u memoryOrderUoW) OrderRepository() ports.OrderRepository { return u.repo }

type memoryOrderUoWFactory struct {
	store *memoryOrderStore
}

func (f memoryOrderUoWFactory) Create() commands.OrderUoW {
	return memoryOrderUoW{repo: memoryOrderRepo{store: f.store}}
}

type memoryUserStore struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[string]*user.User)}
}

type memoryUserRepo struct {
	store *memoryUserStore
}

func (r memoryUserRepo) Add(_ context.Context, aggregate *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email() == aggregate.Email() {
			return errs.NewObjectAlreadyExistsError("email", aggregate.Email())
		}
	}

	r.store.users[aggregate.ID().String()] = aggregate
	return nil
}

func (r memoryUserRepo) Update(_ context.Context, aggregate *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := aggregate.ID().String()
	if _, ok := r.store.users[key]; !ok {
		return errs.NewObjectNotFoundError("user_id", key)
	}

	r.store.users[key] = aggregate
	return nil
}

func (r memoryUserRepo) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.users[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("user_id", id.String())
	}
	return stored, nil
}

func (r memoryUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, stored := range r.store.users {
		if stored.Email() == email {
			return stored, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("email", email)
}

type memoryUserUoW struct {
	repo memoryUserRepo
}

func (memoryUserUoW) Begin(_ context.Context) error    { return nil }
func (memoryUserUoW) Commit(_ context.Context) error   { return nil }
func (memoryUserUoW) Rollback(_ context.Context) error { return nil }

func (u memoryUserUoW) UserRepository() ports.UserRepository { return u.repo }

type memoryUserUoWFactory struct {
	store *memoryUserStore
}

func (f memoryUserUoWFactory) Create() commands.UserUoW {
	return memoryUserUoW{repo: memoryUserRepo{store: f.store}}
}
