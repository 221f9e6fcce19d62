package rest

import (
	"encoding/json"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/contracts"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"marketplace-service/internal/core/port/usecases_port"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Версия JSON-схем тел запросов
const requestSchemaVersion = "1.0.0"

// PropertyHandlers обслуживает /api/properties и /api/search
type PropertyHandlers struct {
	searchUC       usecases_port.SearchPropertiesUseCasePort
	listUC         usecases_port.ListPropertiesUseCasePort
	getUC          usecases_port.GetPropertyUseCasePort
	listSellerUC   usecases_port.ListSellerPropertiesUseCasePort
	createUC       usecases_port.CreatePropertyUseCasePort
	updateUC       usecases_port.UpdatePropertyUseCasePort
	deleteUC       usecases_port.DeletePropertyUseCasePort
	imageURLPrefix string
}

func NewPropertyHandlers(searchUC usecases_port.SearchPropertiesUseCasePort,
	listUC usecases_port.ListPropertiesUseCasePort,
	getUC usecases_port.GetPropertyUseCasePort,
	listSellerUC usecases_port.ListSellerPropertiesUseCasePort,
	createUC usecases_port.CreatePropertyUseCasePort,
	updateUC usecases_port.UpdatePropertyUseCasePort,
	deleteUC usecases_port.DeletePropertyUseCasePort,
	imageURLPrefix string) *PropertyHandlers {
	return &PropertyHandlers{
		searchUC:       searchUC,
		listUC:         listUC,
		getUC:          getUC,
		listSellerUC:   listSellerUC,
		createUC:       createUC,
		updateUC:       updateUC,
		deleteUC:       deleteUC,
		imageURLPrefix: imageURLPrefix,
	}
}

// Search обрабатывает GET /api/search
func (h *PropertyHandlers) Search(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Search"})

	filter, err := parseSearchFilter(r.URL.Query())
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to search properties")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"filters": filter})
	handlerLogger.Debug("Processing search request", nil)

	properties, err := h.searchUC.Execute(r.Context(), filter)
	if err != nil {
		writeUseCaseError(w, handlerLogger, err, "Database error")
		return
	}

	handlerLogger.Info("Search completed", port.Fields{"count": len(properties)})
	RespondWithJSON(w, http.StatusOK, SearchResponse{
		Count:      len(properties),
		Properties: toPropertyResponses(properties, h.imageURLPrefix),
	})
}

// List обрабатывает GET /api/properties. По умолчанию только активные объявления.
func (h *PropertyHandlers) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListProperties"})

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
	if filter.Status == "" {
		filter.Status = domain.StatusActive
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

// Get обрабатывает GET /api/properties/{propertyID}
func (h *PropertyHandlers) Get(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetProperty"})

	id, ok := propertyIDParam(w, r, logger)
	if !ok {
		return
	}

	property, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to fetch property")
		return
	}

	RespondWithJSON(w, http.StatusOK, PropertyDetailsResponse{
		Property: toPropertyResponse(property, h.imageURLPrefix),
	})
}

// MyProperties обрабатывает GET /api/properties/seller/my-properties
func (h *PropertyHandlers) MyProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "MyProperties"})

	claims, ok := claimsFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	properties, err := h.listSellerUC.Execute(r.Context(), claims.UserID)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to fetch properties")
		return
	}

	RespondWithJSON(w, http.StatusOK, PropertyListResponse{
		Properties: toPropertyResponses(properties, h.imageURLPrefix),
	})
}

// Create обрабатывает POST /api/properties
func (h *PropertyHandlers) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateProperty"})

	claims, ok := claimsFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	var req CreatePropertyRequest
	if !decodeWithSchema(w, r, logger, "PropertyCreateRequest", &req) {
		return
	}
	input, err := req.toDomain()
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to create property")
		return
	}

	property, err := h.createUC.Execute(r.Context(), claims.UserID, input)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to create property")
		return
	}

	logger.Info("Property created", port.Fields{"property_id": property.ID})
	RespondWithJSON(w, http.StatusCreated, CreatePropertyResponse{
		Message:    "Property created successfully",
		PropertyID: property.ID.String(),
	})
}

// Update обрабатывает PUT /api/properties/{propertyID}
func (h *PropertyHandlers) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateProperty"})

	claims, ok := claimsFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}
	id, ok := propertyIDParam(w, r, logger)
	if !ok {
		return
	}

	var req UpdatePropertyRequest
	if !decodeWithSchema(w, r, logger, "PropertyUpdateRequest", &req) {
		return
	}
	changes, err := req.toDomain()
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to update property")
		return
	}

	if err := h.updateUC.Execute(r.Context(), claims, id, changes); err != nil {
		writeUseCaseError(w, logger, err, "Failed to update property")
		return
	}

	RespondWithJSON(w, http.StatusOK, messageResponse{Message: "Property updated successfully"})
}

// Delete обрабатывает DELETE /api/properties/{propertyID}. Объявление только скрывается.
func (h *PropertyHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteProperty"})

	claims, ok := claimsFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}
	id, ok := propertyIDParam(w, r, logger)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(r.Context(), claims, id); err != nil {
		writeUseCaseError(w, logger, err, "Failed to delete property")
		return
	}

	RespondWithJSON(w, http.StatusOK, messageResponse{Message: "Property deleted successfully"})
}

// propertyIDParam читает {propertyID} из URL, при ошибке сам отвечает 400.
func propertyIDParam(w http.ResponseWriter, r *http.Request, logger port.LoggerPort) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "propertyID")
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("Invalid property id in URL", port.Fields{"provided_id": raw})
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return uuid.Nil, false
	}
	return id, true
}

// decodeWithSchema проверяет тело по JSON-схеме и разбирает его в dst.
func decodeWithSchema(w http.ResponseWriter, r *http.Request, logger port.LoggerPort, schemaName string, dst interface{}) bool {
	body, err := readBody(r)
	if err != nil {
		logger.Warn("Failed to read request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := contracts.ValidateRequest(schemaName, requestSchemaVersion, body); err != nil {
		logger.Warn("Request body failed schema validation", port.Fields{"schema": schemaName, "error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		logger.Warn("Failed to decode request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
