package domain

import (
	"time"

	"github.com/google/uuid"
)

// Favorite - пара (пользователь, объявление), уникальна.
type Favorite struct {
	UserID     uuid.UUID
	PropertyID uuid.UUID
	CreatedAt  time.Time
}

// FavoriteProperty - объявление из избранного вместе с датой добавления.
type FavoriteProperty struct {
	Property    Property
	FavoritedAt time.Time
}
