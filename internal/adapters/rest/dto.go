package rest

import (
	"encoding/json"
	"marketplace-service/internal/core/domain"
	"strings"
	"time"
)

// --- Auth ---

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	UserType string `json:"user_type" validate:"required,oneof=buyer seller"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		UserType:  u.UserType,
		CreatedAt: u.CreatedAt,
	}
}

// --- Properties ---

// CreatePropertyRequest - тело POST /api/properties, уже прошедшее JSON-схему.
// images - массив имен файлов или строка через запятую.
type CreatePropertyRequest struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        float64         `json:"price"`
	PropertyType string          `json:"property_type"`
	ListingType  string          `json:"listing_type"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	ZipCode      string          `json:"zip_code"`
	Bedrooms     *int            `json:"bedrooms"`
	Bathrooms    *int            `json:"bathrooms"`
	AreaSqft     *int            `json:"area_sqft"`
	YearBuilt    *int            `json:"year_built"`
	Parking      int             `json:"parking"`
	Images       json.RawMessage `json:"images"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
}

func (req CreatePropertyRequest) toDomain() (domain.PropertyInput, error) {
	images, err := decodeImages(req.Images)
	if err != nil {
		return domain.PropertyInput{}, err
	}
	in := domain.PropertyInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		PropertyType: req.PropertyType,
		ListingType:  req.ListingType,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		AreaSqft:     req.AreaSqft,
		YearBuilt:    req.YearBuilt,
		Parking:      req.Parking,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}
	if images != nil {
		in.Images = *images
	}
	return in, nil
}

// UpdatePropertyRequest - частичное обновление, отсутствующие поля не меняются.
type UpdatePropertyRequest struct {
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	Price        *float64        `json:"price"`
	PropertyType *string         `json:"property_type"`
	ListingType  *string         `json:"listing_type"`
	Address      *string         `json:"address"`
	City         *string         `json:"city"`
	State        *string         `json:"state"`
	ZipCode      *string         `json:"zip_code"`
	Bedrooms     *int            `json:"bedrooms"`
	Bathrooms    *int            `json:"bathrooms"`
	AreaSqft     *int            `json:"area_sqft"`
	YearBuilt    *int            `json:"year_built"`
	Parking      *int            `json:"parking"`
	Images       json.RawMessage `json:"images"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	Status       *string         `json:"status"`
}

func (req UpdatePropertyRequest) toDomain() (domain.PropertyChanges, error) {
	images, err := decodeImages(req.Images)
	if err != nil {
		return domain.PropertyChanges{}, err
	}
	return domain.PropertyChanges{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		PropertyType: req.PropertyType,
		ListingType:  req.ListingType,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		AreaSqft:     req.AreaSqft,
		YearBuilt:    req.YearBuilt,
		Parking:      req.Parking,
		Images:       images,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Status:       req.Status,
	}, nil
}

// decodeImages возвращает nil, если поле не передано.
func decodeImages(raw json.RawMessage) (*[]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		refs := domain.ParseImageRefs(joined)
		return &refs, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, domain.ErrInvalidPropertyInput
	}
	refs := make([]string, 0, len(list))
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			refs = append(refs, item)
		}
	}
	return &refs, nil
}

type PropertyResponse struct {
	ID           string    `json:"id"`
	SellerID     string    `json:"seller_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	PropertyType string    `json:"property_type"`
	ListingType  string    `json:"listing_type"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      string    `json:"zip_code"`
	Bedrooms     *int      `json:"bedrooms"`
	Bathrooms    *int      `json:"bathrooms"`
	AreaSqft     *int      `json:"area_sqft"`
	YearBuilt    *int      `json:"year_built"`
	Parking      int       `json:"parking"`
	Images       []string  `json:"images"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	Geohash      string    `json:"geohash,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`

	SellerName  string `json:"seller_name,omitempty"`
	SellerEmail string `json:"seller_email,omitempty"`
	SellerPhone string `json:"seller_phone,omitempty"`

	FavoritedAt *time.Time `json:"favorited_at,omitempty"`
}

func toPropertyResponse(p *domain.Property, imagePrefix string) PropertyResponse {
	return PropertyResponse{
		ID:           p.ID.String(),
		SellerID:     p.SellerID.String(),
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		PropertyType: p.PropertyType,
		ListingType:  p.ListingType,
		Address:      p.Address,
		City:         p.City,
		State:        p.State,
		ZipCode:      p.ZipCode,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		AreaSqft:     p.AreaSqft,
		YearBuilt:    p.YearBuilt,
		Parking:      p.Parking,
		Images:       domain.ResolveImageURLs(imagePrefix, p.Images),
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		Geohash:      p.Geohash,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		SellerName:   p.Seller.Name,
		SellerEmail:  p.Seller.Email,
		SellerPhone:  p.Seller.Phone,
	}
}

func toPropertyResponses(props []domain.Property, imagePrefix string) []PropertyResponse {
	out := make([]PropertyResponse, len(props))
	for i := range props {
		out[i] = toPropertyResponse(&props[i], imagePrefix)
	}
	return out
}

type PropertyListResponse struct {
	Properties []PropertyResponse `json:"properties"`
}

type SearchResponse struct {
	Count      int                `json:"count"`
	Properties []PropertyResponse `json:"properties"`
}

type PropertyDetailsResponse struct {
	Property PropertyResponse `json:"property"`
}

type CreatePropertyResponse struct {
	Message    string `json:"message"`
	PropertyID string `json:"property_id"`
}

// --- Favorites ---

type FavoriteCheckResponse struct {
	IsFavorited bool `json:"is_favorited"`
}

// --- Inquiries ---

type CreateInquiryRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
	Message    string `json:"message" validate:"required"`
}

type CreateInquiryResponse struct {
	Message   string `json:"message"`
	InquiryID string `json:"inquiry_id"`
}

type InquiryResponse struct {
	ID              string    `json:"id"`
	PropertyID      string    `json:"property_id"`
	BuyerID         string    `json:"buyer_id"`
	SellerID        string    `json:"seller_id"`
	Message         string    `json:"message"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	PropertyTitle   string    `json:"property_title"`
	PropertyAddress string    `json:"property_address"`

	// Для продавца
	BuyerName  string `json:"buyer_name,omitempty"`
	BuyerEmail string `json:"buyer_email,omitempty"`
	BuyerPhone string `json:"buyer_phone,omitempty"`

	// Для покупателя
	PropertyPrice *float64 `json:"property_price,omitempty"`
	SellerName    string   `json:"seller_name,omitempty"`
}

type InquiryListResponse struct {
	Inquiries []InquiryResponse `json:"inquiries"`
}

func baseInquiryResponse(i domain.Inquiry, title, address string) InquiryResponse {
	return InquiryResponse{
		ID:              i.ID.String(),
		PropertyID:      i.PropertyID.String(),
		BuyerID:         i.BuyerID.String(),
		SellerID:        i.SellerID.String(),
		Message:         i.Message,
		Status:          i.Status,
		CreatedAt:       i.CreatedAt,
		PropertyTitle:   title,
		PropertyAddress: address,
	}
}

// --- Valuation ---

type ValuationRequest struct {
	PropertyID   string `json:"property_id" validate:"omitempty,uuid"`
	PropertyType string `json:"property_type"`
	AreaSqft     int    `json:"area_sqft"`
	Bedrooms     int    `json:"bedrooms"`
	Bathrooms    int    `json:"bathrooms"`
	Parking      int    `json:"parking"`
	YearBuilt    int    `json:"year_built"`
	City         string `json:"city"`
}

// LoanRequest - отсутствующие параметры берутся по умолчанию.
type LoanRequest struct {
	PropertyPrice      *float64 `json:"property_price"`
	DownPaymentPercent *float64 `json:"down_payment_percent"`
	InterestRate       *float64 `json:"interest_rate"`
	LoanTermYears      *float64 `json:"loan_term_years"`
}

func (req LoanRequest) toDomain() domain.LoanInput {
	in := domain.LoanInput{
		DownPaymentPercent: domain.DefaultDownPaymentPercent,
		InterestRate:       domain.DefaultInterestRate,
		LoanTermYears:      domain.DefaultLoanTermYears,
	}
	if req.PropertyPrice != nil {
		in.PropertyPrice = *req.PropertyPrice
	}
	if req.DownPaymentPercent != nil {
		in.DownPaymentPercent = *req.DownPaymentPercent
	}
	if req.InterestRate != nil {
		in.InterestRate = *req.InterestRate
	}
	if req.LoanTermYears != nil {
		in.LoanTermYears = *req.LoanTermYears
	}
	return in
}

type LoanResponse struct {
	domain.LoanEstimate
	AffordabilityTips []string `json:"affordability_tips"`
}

// --- Assistant ---

type ChatRequest struct {
	Message    string `json:"message"`
	PropertyID string `json:"property_id" validate:"omitempty,uuid"`
}

type ChatResponse struct {
	Response string `json:"response"`
	Source   string `json:"source"`
}

// --- Admin ---

type StatsResponse struct {
	Users            int64 `json:"users"`
	Properties       int64 `json:"properties"`
	ActiveProperties int64 `json:"active_properties"`
	Favorites        int64 `json:"favorites"`
	Inquiries        int64 `json:"inquiries"`
}
