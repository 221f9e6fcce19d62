package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Типы пользователей
const (
	UserTypeBuyer  = "buyer"
	UserTypeSeller = "seller"
	UserTypeAdmin  = "admin"
)

const MinPasswordLength = 6

// User - основная доменная сущность
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	UserType     string
	CreatedAt    time.Time
}

// Claims - это данные, которые мы "зашиваем" в JWT токен.
type Claims struct {
	UserID   uuid.UUID
	Email    string
	UserType string
}

// CanManage - владелец объявления или администратор.
func (c *Claims) CanManage(p *Property) bool {
	return c.UserType == UserTypeAdmin || p.SellerID == c.UserID
}

// Registration - данные формы регистрации.
type Registration struct {
	Email    string
	Password string
	Name     string
	Phone    string
	UserType string
}

// NewUser создает нового пользователя. Хэширование пароля происходит здесь.
// Администратора через регистрацию создать нельзя.
func NewUser(reg Registration) (*User, error) {
	if reg.UserType != UserTypeBuyer && reg.UserType != UserTypeSeller {
		return nil, fmt.Errorf("%w: user_type must be 'buyer' or 'seller'", ErrInvalidUserInput)
	}
	if len(reg.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidUserInput, MinPasswordLength)
	}
	if strings.TrimSpace(reg.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidUserInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(reg.Email)),
		PasswordHash: string(hashedPassword),
		Name:         strings.TrimSpace(reg.Name),
		Phone:        reg.Phone,
		UserType:     reg.UserType,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// CheckPassword сравнивает предоставленный пароль с хэшем, хранящимся у пользователя.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

func (u *User) Claims() *Claims {
	return &Claims{UserID: u.ID, Email: u.Email, UserType: u.UserType}
}
