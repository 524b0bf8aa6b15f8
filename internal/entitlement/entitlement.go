package entitlement

import (
	"context"
	"errors"
	"strings"
	"sync"

	"list-blitz/internal/db"
	"list-blitz/internal/prompts"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrMissingCustomer = errors.New("customer id is required")

// Repo records which products a customer owns.
type Repo interface {
	OwnedProducts(ctx context.Context, customerID string) (map[string]struct{}, error)
	Grant(ctx context.Context, customerID, productID string) error
}

// Service decides whether a prompt pack is locked for a customer.
type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// IsLocked reports whether the pack needs a purchase the customer has not made.
// Free packs are never locked.
func (s *Service) IsLocked(ctx context.Context, customerID string, pack prompts.Pack) (bool, error) {
	if pack.Free() {
		return false, nil
	}
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return true, nil
	}
	owned, err := s.repo.OwnedProducts(ctx, customerID)
	if err != nil {
		return true, err
	}
	_, ok := owned[pack.ProductID]
	return !ok, nil
}

func (s *Service) Grant(ctx context.Context, customerID, productID string) error {
	customerID = strings.TrimSpace(customerID)
	productID = strings.TrimSpace(productID)
	if customerID == "" || productID == "" {
		return ErrMissingCustomer
	}
	return s.repo.Grant(ctx, customerID, productID)
}

type MemoryRepo struct {
	mu    sync.RWMutex
	owned map[string]map[string]struct{}
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{owned: make(map[string]map[string]struct{})}
}

func (r *MemoryRepo) OwnedProducts(ctx context.Context, customerID string) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]struct{}, len(r.owned[customerID]))
	for product := range r.owned[customerID] {
		out[product] = struct{}{}
	}
	return out, nil
}

func (r *MemoryRepo) Grant(ctx context.Context, customerID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	products, ok := r.owned[customerID]
	if !ok {
		products = make(map[string]struct{})
		r.owned[customerID] = products
	}
	products[productID] = struct{}{}
	return nil
}

type GormRepo struct {
	conn *gorm.DB
}

func NewGormRepo(conn *gorm.DB) *GormRepo {
	return &GormRepo{conn: conn}
}

func (r *GormRepo) OwnedProducts(ctx context.Context, customerID string) (map[string]struct{}, error) {
	var rows []db.Entitlement
	if err := r.conn.WithContext(ctx).Where("customer_id = ?", customerID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		out[row.ProductID] = struct{}{}
	}
	return out, nil
}

// Grant is idempotent; a duplicate grant is not an error.
func (r *GormRepo) Grant(ctx context.Context, customerID, productID string) error {
	row := db.Entitlement{CustomerID: customerID, ProductID: productID}
	err := r.conn.WithContext(ctx).Create(&row).Error
	if isUniqueViolation(err) {
		return nil
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
