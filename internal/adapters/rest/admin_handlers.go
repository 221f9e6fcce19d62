package rest

import (
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/port"
	"marketplace-service/internal/core/port/usecases_port"
	"net/http"
)

// AdminHandlers обслуживает /api/admin. Доступ только для user_type=admin.
type AdminHandlers struct {
	listUC         usecases_port.ListPropertiesUseCasePort
	purgeUC        usecases_port.PurgePropertyUseCasePort
	statsUC        usecases_port.GetStatsUseCasePort
	imageURLPrefix string
}

func NewAdminHandlers(listUC usecases_port.ListPropertiesUseCasePort,
	purgeUC usecases_port.PurgePropertyUseCasePort,
	statsUC usecases_port.GetStatsUseCasePort,
	imageURLPrefix string) *AdminHandlers {
	return &AdminHandlers{
		listUC:         listUC,
		purgeUC:        purgeUC,
		statsUC:        statsUC,
		imageURLPrefix: imageURLPrefix,
	}
}

// ListProperties обрабатывает GET /api/admin/properties. Без status - все статусы.
func (h *AdminHandlers) ListProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AdminListProperties"})

	query := r.URL.Query()
	filter, err := parseSearchFilter(query)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to fetch properties")
		return
	}
	if filter.Status, err = parseStatus(query); err != nil {
		writeUseCaseError(w, logger, err, "Failed to fetch properties")
		return
	}
	limit, err := parseLimit(query)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to fetch properties")
		return
	}

	properties, err := h.listUC.Execute(r.Context(), filter, limit)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to fetch properties")
		return
	}

	RespondWithJSON(w, http.StatusOK, PropertyListResponse{
		Properties: toPropertyResponses(properties, h.imageURLPrefix),
	})
}

// DeleteProperty обрабатывает DELETE /api/admin/properties/{propertyID}
func (h *AdminHandlers) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AdminDeleteProperty"})

	id, ok := propertyIDParam(w, r, logger)
	if !ok {
		return
	}

	if err := h.purgeUC.Execute(r.Context(), id); err != nil {
		writeUseCaseError(w, logger, err, "Failed to delete property")
		return
	}

	logger.Info("Property purged", port.Fields{"property_id": id})
	RespondWithJSON(w, http.StatusOK, messageResponse{Message: "Property deleted successfully"})
}

// Stats обрабатывает GET /api/admin/stats
func (h *AdminHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AdminStats"})

	stats, err := h.statsUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to fetch stats")
		return
	}

	RespondWithJSON(w, http.StatusOK, StatsResponse{
		Users:            stats.Users,
		Properties:       stats.Properties,
		ActiveProperties: stats.ActiveProperties,
		Favorites:        stats.Favorites,
		Inquiries:        stats.Inquiries,
	})
}
