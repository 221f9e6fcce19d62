package domain

import "errors"

// Ошибки, которые use cases возвращают наружу. REST-слой мапит их на HTTP-коды через errors.Is.
var (
	ErrPropertyNotFound     = errors.New("property not found")
	ErrInvalidPropertyInput = errors.New("invalid property data")
	ErrNoFieldsToUpdate     = errors.New("no valid fields to update")
	ErrInvalidFilter        = errors.New("invalid filter value")

	ErrInvalidLoanInput      = errors.New("invalid loan input")
	ErrInvalidValuationInput = errors.New("invalid valuation input")

	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidUserInput   = errors.New("invalid user data")
	ErrTokenInvalid       = errors.New("invalid jwt token")
	ErrForbidden          = errors.New("access denied")

	ErrAlreadyFavorited = errors.New("already in favorites")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrEmptyInquiry     = errors.New("inquiry message is required")
	ErrEmptyChatMessage = errors.New("message is required")
)
