package rest

import (
	"context"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"marketplace-service/internal/core/port/usecases_port"
	"marketplace-service/internal/core/usecase"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type noopLogger struct{}

func (noopLogger) Info(string, port.Fields)                 {}
func (noopLogger) Warn(string, port.Fields)                 {}
func (noopLogger) Error(string, error, port.Fields)         {}
func (noopLogger) Debug(string, port.Fields)                {}
func (l noopLogger) WithFields(port.Fields) port.LoggerPort { return l }

// Каждый порт use case подменяется функцией.

type searchFn func(domain.SearchFilter) ([]domain.Property, error)

func (f searchFn) Execute(_ context.Context, filter domain.SearchFilter) ([]domain.Property, error) {
	return f(filter)
}

type listFn func(domain.SearchFilter, int) ([]domain.Property, error)

func (f listFn) Execute(_ context.Context, filter domain.SearchFilter, limit int) ([]domain.Property, error) {
	return f(filter, limit)
}

type getFn func(uuid.UUID) (*domain.Property, error)

func (f getFn) Execute(_ context.Context, id uuid.UUID) (*domain.Property, error) { return f(id) }

type listSellerFn func(uuid.UUID) ([]domain.Property, error)

func (f listSellerFn) Execute(_ context.Context, id uuid.UUID) ([]domain.Property, error) { return f(id) }

type createFn func(uuid.UUID, domain.PropertyInput) (*domain.Property, error)

func (f createFn) Execute(_ context.Context, sellerID uuid.UUID, in domain.PropertyInput) (*domain.Property, error) {
	return f(sellerID, in)
}

type updateFn func(*domain.Claims, uuid.UUID, domain.PropertyChanges) error

func (f updateFn) Execute(_ context.Context, actor *domain.Claims, id uuid.UUID, changes domain.PropertyChanges) error {
	return f(actor, id, changes)
}

type deleteFn func(*domain.Claims, uuid.UUID) error

func (f deleteFn) Execute(_ context.Context, actor *domain.Claims, id uuid.UUID) error { return f(actor, id) }

type purgeFn func(uuid.UUID) error

func (f purgeFn) Execute(_ context.Context, id uuid.UUID) error { return f(id) }

type registerFn func(domain.Registration) (*domain.User, string, error)

func (f registerFn) Execute(_ context.Context, reg domain.Registration) (*domain.User, string, error) {
	return f(reg)
}

type loginFn func(string, string) (*domain.User, string, error)

func (f loginFn) Execute(_ context.Context, email, password string) (*domain.User, string, error) {
	return f(email, password)
}

type profileFn func(uuid.UUID) (*domain.User, error)

func (f profileFn) Execute(_ context.Context, id uuid.UUID) (*domain.User, error) { return f(id) }

type tokenFn func(string) (*domain.Claims, error)

func (f tokenFn) Execute(_ context.Context, token string) (*domain.Claims, error) { return f(token) }

type favoriteFn func(uuid.UUID, uuid.UUID) error

func (f favoriteFn) Execute(_ context.Context, userID, propertyID uuid.UUID) error {
	return f(userID, propertyID)
}

type favoritesFn func(uuid.UUID) ([]domain.FavoriteProperty, error)

func (f favoritesFn) Execute(_ context.Context, userID uuid.UUID) ([]domain.FavoriteProperty, error) {
	return f(userID)
}

type checkFavoriteFn func(uuid.UUID, uuid.UUID) (bool, error)

func (f checkFavoriteFn) Execute(_ context.Context, userID, propertyID uuid.UUID) (bool, error) {
	return f(userID, propertyID)
}

type createInquiryFn func(uuid.UUID, uuid.UUID, string) (*domain.Inquiry, error)

func (f createInquiryFn) Execute(_ context.Context, buyerID, propertyID uuid.UUID, message string) (*domain.Inquiry, error) {
	return f(buyerID, propertyID, message)
}

type receivedFn func(uuid.UUID) ([]domain.ReceivedInquiry, error)

func (f receivedFn) Execute(_ context.Context, id uuid.UUID) ([]domain.ReceivedInquiry, error) { return f(id) }

type sentFn func(uuid.UUID) ([]domain.SentInquiry, error)

func (f sentFn) Execute(_ context.Context, id uuid.UUID) ([]domain.SentInquiry, error) { return f(id) }

type statsFn func() (*domain.MarketplaceStats, error)

func (f statsFn) Execute(context.Context) (*domain.MarketplaceStats, error) { return f() }

// Пользователи, которых знает фейковая проверка токена
var (
	buyerClaims  = &domain.Claims{UserID: uuid.New(), Email: "buyer@example.com", UserType: domain.UserTypeBuyer}
	sellerClaims = &domain.Claims{UserID: uuid.New(), Email: "seller@example.com", UserType: domain.UserTypeSeller}
	adminClaims  = &domain.Claims{UserID: uuid.New(), Email: "admin@example.com", UserType: domain.UserTypeAdmin}
)

func fakeValidateToken(token string) (*domain.Claims, error) {
	switch token {
	case "buyer-token":
		return buyerClaims, nil
	case "seller-token":
		return sellerClaims, nil
	case "admin-token":
		return adminClaims, nil
	}
	return nil, domain.ErrTokenInvalid
}

// testPorts - набор портов для роутера; тест переопределяет только нужные.
type testPorts struct {
	search        searchFn
	list          listFn
	get           getFn
	listSeller    listSellerFn
	create        createFn
	update        updateFn
	delete        deleteFn
	purge         purgeFn
	register      registerFn
	login         loginFn
	profile       profileFn
	addFavorite   favoriteFn
	removeFav     favoriteFn
	favorites     favoritesFn
	checkFavorite checkFavoriteFn
	createInquiry createInquiryFn
	received      receivedFn
	sent          sentFn
	stats         statsFn
	chat          usecases_port.AssistantChatUseCasePort
}

func defaultPorts() *testPorts {
	p := &testPorts{}
	p.search = func(domain.SearchFilter) ([]domain.Property, error) { return []domain.Property{}, nil }
	p.list = func(domain.SearchFilter, int) ([]domain.Property, error) { return []domain.Property{}, nil }
	p.get = func(uuid.UUID) (*domain.Property, error) { return nil, domain.ErrPropertyNotFound }
	p.listSeller = func(uuid.UUID) ([]domain.Property, error) { return []domain.Property{}, nil }
	p.create = func(sellerID uuid.UUID, in domain.PropertyInput) (*domain.Property, error) {
		return domain.NewProperty(sellerID, in)
	}
	p.update = func(*domain.Claims, uuid.UUID, domain.PropertyChanges) error { return nil }
	p.delete = func(*domain.Claims, uuid.UUID) error { return nil }
	p.purge = func(uuid.UUID) error { return nil }

	p.register = func(domain.Registration) (*domain.User, string, error) { return nil, "", domain.ErrEmailInUse }
	p.login = func(string, string) (*domain.User, string, error) { return nil, "", domain.ErrInvalidCredentials }
	p.profile = func(uuid.UUID) (*domain.User, error) { return nil, domain.ErrUserNotFound }

	p.addFavorite = func(uuid.UUID, uuid.UUID) error { return nil }
	p.removeFav = func(uuid.UUID, uuid.UUID) error { return nil }
	p.favorites = func(uuid.UUID) ([]domain.FavoriteProperty, error) { return []domain.FavoriteProperty{}, nil }
	p.checkFavorite = func(uuid.UUID, uuid.UUID) (bool, error) { return false, nil }

	p.createInquiry = func(uuid.UUID, uuid.UUID, string) (*domain.Inquiry, error) { return nil, domain.ErrPropertyNotFound }
	p.received = func(uuid.UUID) ([]domain.ReceivedInquiry, error) { return []domain.ReceivedInquiry{}, nil }
	p.sent = func(uuid.UUID) ([]domain.SentInquiry, error) { return []domain.SentInquiry{}, nil }

	p.stats = func() (*domain.MarketplaceStats, error) { return &domain.MarketplaceStats{}, nil }
	p.chat = usecase.NewAssistantChatUseCase(nil, nil)
	return p
}

func (p *testPorts) router() http.Handler {
	clock := func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	const prefix = "/uploads/properties"

	handlers := Handlers{
		Auth:       NewAuthHandlers(p.register, p.login, p.profile),
		Properties: NewPropertyHandlers(p.search, p.list, p.get, p.listSeller, p.create, p.update, p.delete, prefix),
		Favorites:  NewFavoritesHandlers(p.addFavorite, p.removeFav, p.favorites, p.checkFavorite, prefix),
		Inquiries:  NewInquiryHandlers(p.createInquiry, p.received, p.sent),
		Estimates: NewEstimateHandlers(
			usecase.NewEstimateValueUseCase(nil, nil, 0, clock),
			usecase.NewEstimateLoanUseCase(nil, 0),
		),
		Assistant: NewAssistantHandlers(p.chat),
		Admin:     NewAdminHandlers(p.list, p.purge, p.stats, prefix),
	}
	return NewRouter(handlers, NewAuthMiddleware(tokenFn(fakeValidateToken)), []string{"http://localhost:3000"}, noopLogger{})
}

// do выполняет запрос через роутер; token может быть пустым.
func (p *testPorts) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	p.router().ServeHTTP(rec, req)
	return rec
}
