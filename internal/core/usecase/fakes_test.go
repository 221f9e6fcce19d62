package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"marketplace-service/internal/core/domain"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryStorage - PropertyStoragePort в памяти, фильтрует тем же предикатом, что и SQL.
type memoryStorage struct {
	mu         sync.Mutex
	items      map[uuid.UUID]domain.Property
	lastLimit  int
	lastFilter domain.SearchFilter
	err        error
}

func newMemoryStorage(props ...domain.Property) *memoryStorage {
	s := &memoryStorage{items: make(map[uuid.UUID]domain.Property)}
	for _, p := range props {
		s.items[p.ID] = p
	}
	return s
}

func (s *memoryStorage) FindWithFilters(_ context.Context, filter domain.SearchFilter, limit int) ([]domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLimit = limit
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}

	result := make([]domain.Property, 0)
	for _, p := range s.items {
		if filter.Matches(p) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID.String() > result[j].ID.String()
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *memoryStorage) GetByID(_ context.Context, id uuid.UUID) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.items[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	return &p, nil
}

func (s *memoryStorage) Create(_ context.Context, p *domain.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.items[p.ID] = *p
	return nil
}

func (s *memoryStorage) Update(_ context.Context, id uuid.UUID, changes domain.PropertyChanges) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return domain.ErrPropertyNotFound
	}
	s.items[id] = p.Apply(changes)
	return nil
}

func (s *memoryStorage) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(s.items, id)
	return nil
}

type memoryUsers struct {
	byEmail map[string]*domain.User
	findErr error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: make(map[string]*domain.User)}
}

func (r *memoryUsers) Create(_ context.Context, u *domain.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailInUse
	}
	r.byEmail[u.Email] = u
	return nil
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.byEmail[email], nil
}

func (r *memoryUsers) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

type stubTokens struct{}

func (stubTokens) GenerateToken(_ context.Context, user *domain.User, _ time.Duration) (string, error) {
	return "token-" + user.ID.String(), nil
}

func (stubTokens) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.Claims{UserID: uuid.New()}, nil
}

type favKey struct{ user, property uuid.UUID }

type memoryFavorites struct {
	set     map[favKey]time.Time
	storage *memoryStorage
}

func newMemoryFavorites(storage *memoryStorage) *memoryFavorites {
	return &memoryFavorites{set: make(map[favKey]time.Time), storage: storage}
}

func (f *memoryFavorites) Add(_ context.Context, userID, propertyID uuid.UUID) error {
	k := favKey{userID, propertyID}
	if _, ok := f.set[k]; ok {
		return domain.ErrAlreadyFavorited
	}
	f.set[k] = time.Now()
	return nil
}

func (f *memoryFavorites) Remove(_ context.Context, userID, propertyID uuid.UUID) error {
	k := favKey{userID, propertyID}
	if _, ok := f.set[k]; !ok {
		return domain.ErrFavoriteNotFound
	}
	delete(f.set, k)
	return nil
}

func (f *memoryFavorites) Exists(_ context.Context, userID, propertyID uuid.UUID) (bool, error) {
	_, ok := f.set[favKey{userID, propertyID}]
	return ok, nil
}

func (f *memoryFavorites) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteProperty, error) {
	out := make([]domain.FavoriteProperty, 0)
	for k, at := range f.set {
		if k.user != userID {
			continue
		}
		p, err := f.storage.GetByID(ctx, k.property)
		if err != nil || !p.IsActive() {
			continue
		}
		out = append(out, domain.FavoriteProperty{Property: *p, FavoritedAt: at})
	}
	return out, nil
}

type memoryInquiries struct {
	created []domain.Inquiry
}

func (r *memoryInquiries) Create(_ context.Context, i *domain.Inquiry) error {
	r.created = append(r.created, *i)
	return nil
}

func (r *memoryInquiries) ListBySeller(_ context.Context, sellerID uuid.UUID) ([]domain.ReceivedInquiry, error) {
	out := make([]domain.ReceivedInquiry, 0)
	for _, i := range r.created {
		if i.SellerID == sellerID {
			out = append(out, domain.ReceivedInquiry{Inquiry: i})
		}
	}
	return out, nil
}

func (r *memoryInquiries) ListByBuyer(_ context.Context, buyerID uuid.UUID) ([]domain.SentInquiry, error) {
	out := make([]domain.SentInquiry, 0)
	for _, i := range r.created {
		if i.BuyerID == buyerID {
			out = append(out, domain.SentInquiry{Inquiry: i})
		}
	}
	return out, nil
}

type recordingPublisher struct {
	listed   []domain.PropertyListedEvent
	inquired []domain.InquiryCreatedEvent
	err      error
}

func (p *recordingPublisher) PublishPropertyListed(_ context.Context, e domain.PropertyListedEvent) error {
	p.listed = append(p.listed, e)
	return p.err
}

func (p *recordingPublisher) PublishInquiryCreated(_ context.Context, e domain.InquiryCreatedEvent) error {
	p.inquired = append(p.inquired, e)
	return p.err
}

// mapCache - EstimateCachePort поверх map с JSON, как у Redis-адаптера.
type mapCache struct {
	data map[string][]byte
	gets int
	sets int
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.gets++
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string, interface{}) (bool, error) {
	return false, errors.New("connection refused")
}

func (brokenCache) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("connection refused")
}

type stubCompletion struct {
	reply        string
	err          error
	systemPrompt string
}

func (s *stubCompletion) Complete(_ context.Context, systemPrompt, _ string) (string, error) {
	s.systemPrompt = systemPrompt
	return s.reply, s.err
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
