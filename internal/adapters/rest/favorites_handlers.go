package rest

import (
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/port"
	"marketplace-service/internal/core/port/usecases_port"
	"net/http"
)

// FavoritesHandlers обслуживает /api/favorites
type FavoritesHandlers struct {
	addUC          usecases_port.AddToFavoritesUseCasePort
	removeUC       usecases_port.RemoveFromFavoritesUseCasePort
	getUC          usecases_port.GetUserFavoritesUseCasePort
	checkUC        usecases_port.CheckFavoriteUseCasePort
	imageURLPrefix string
}

func NewFavoritesHandlers(addUC usecases_port.AddToFavoritesUseCasePort,
	removeUC usecases_port.RemoveFromFavoritesUseCasePort,
	getUC usecases_port.GetUserFavoritesUseCasePort,
	checkUC usecases_port.CheckFavoriteUseCasePort,
	imageURLPrefix string) *FavoritesHandlers {
	return &FavoritesHandlers{
		addUC:          addUC,
		removeUC:       removeUC,
		getUC:          getUC,
		checkUC:        checkUC,
		imageURLPrefix: imageURLPrefix,
	}
}

// GetUserFavorites обрабатывает GET /api/favorites
func (h *FavoritesHandlers) GetUserFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetUserFavorites"})

	claims, ok := claimsFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	favorites, err := h.getUC.Execute(r.Context(), claims.UserID)
	if err != nil {
		writeUseCaseError(w, logger, err, "Database error")
		return
	}

	response := PropertyListResponse{Properties: make([]PropertyResponse, len(favorites))}
	for i := range favorites {
		item := toPropertyResponse(&favorites[i].Property, h.imageURLPrefix)
		favoritedAt := favorites[i].FavoritedAt
		item.FavoritedAt = &favoritedAt
		response.Properties[i] = item
	}

	logger.Info("Successfully retrieved user favorites", port.Fields{"count": len(favorites)})
	RespondWithJSON(w, http.StatusOK, response)
}

// AddToFavorites обрабатывает POST /api/favorites/{propertyID}
func (h *FavoritesHandlers) AddToFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AddToFavorites"})

	claims, ok := claimsFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}
	propertyID, ok := propertyIDParam(w, r, logger)
	if !ok {
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"property_id": propertyID})

	if err := h.addUC.Execute(r.Context(), claims.UserID, propertyID); err != nil {
		writeUseCaseError(w, handlerLogger, err, "Failed to add to favorites")
		return
	}

	handlerLogger.Info("Successfully added property to favorites", nil)
	RespondWithJSON(w, http.StatusOK, messageResponse{Message: "Added to favorites"})
}

// RemoveFromFavorites обрабатывает DELETE /api/favorites/{propertyID}
func (h *FavoritesHandlers) RemoveFromFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RemoveFromFavorites"})

	claims, ok := claimsFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}
	propertyID, ok := propertyIDParam(w, r, logger)
	if !ok {
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"property_id": propertyID})

	if err := h.removeUC.Execute(r.Context(), claims.UserID, propertyID); err != nil {
		writeUseCaseError(w, handlerLogger, err, "Failed to remove from favorites")
		return
	}

	handlerLogger.Info("Successfully removed property from favorites", nil)
	RespondWithJSON(w, http.StatusOK, messageResponse{Message: "Removed from favorites"})
}

// CheckFavorite обрабатывает GET /api/favorites/check/{propertyID}
func (h *FavoritesHandlers) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CheckFavorite"})

	claims, ok := claimsFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}
	propertyID, ok := propertyIDParam(w, r, logger)
	if !ok {
		return
	}

	favorited, err := h.checkUC.Execute(r.Context(), claims.UserID, propertyID)
	if err != nil {
		writeUseCaseError(w, logger, err, "Database error")
		return
	}

	RespondWithJSON(w, http.StatusOK, FavoriteCheckResponse{IsFavorited: favorited})
}
