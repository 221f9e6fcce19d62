package rest

import (
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/port"
	"marketplace-service/internal/core/port/usecases_port"
	"net/http"

	"github.com/google/uuid"
)

// InquiryHandlers обслуживает /api/inquiries
type InquiryHandlers struct {
	createUC       usecases_port.CreateInquiryUseCasePort
	listReceivedUC usecases_port.ListReceivedInquiriesUseCasePort
	listSentUC     usecases_port.ListSentInquiriesUseCasePort
}

func NewInquiryHandlers(createUC usecases_port.CreateInquiryUseCasePort,
	listReceivedUC usecases_port.ListReceivedInquiriesUseCasePort,
	listSentUC usecases_port.ListSentInquiriesUseCasePort) *InquiryHandlers {
	return &InquiryHandlers{
		createUC:       createUC,
		listReceivedUC: listReceivedUC,
		listSentUC:     listSentUC,
	}
}

// Create обрабатывает POST /api/inquiries
func (h *InquiryHandlers) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateInquiry"})

	claims, ok := claimsFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	var req CreateInquiryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid inquiry request", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "property_id must be a valid id")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"property_id": propertyID})

	inquiry, err := h.createUC.Execute(r.Context(), claims.UserID, propertyID, req.Message)
	if err != nil {
		writeUseCaseError(w, handlerLogger, err, "Failed to send inquiry")
		return
	}

	handlerLogger.Info("Inquiry sent", port.Fields{"inquiry_id": inquiry.ID})
	RespondWithJSON(w, http.StatusCreated, CreateInquiryResponse{
		Message:   "Inquiry sent successfully",
		InquiryID: inquiry.ID.String(),
	})
}

// Received обрабатывает GET /api/inquiries/seller
func (h *InquiryHandlers) Received(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ReceivedInquiries"})

	claims, ok := claimsFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	inquiries, err := h.listReceivedUC.Execute(r.Context(), claims.UserID)
	if err != nil {
		writeUseCaseError(w, logger, err, "Database error")
		return
	}

	response := InquiryListResponse{Inquiries: make([]InquiryResponse, len(inquiries))}
	for i, inq := range inquiries {
		item := baseInquiryResponse(inq.Inquiry, inq.PropertyTitle, inq.PropertyAddress)
		item.BuyerName = inq.BuyerName
		item.BuyerEmail = inq.BuyerEmail
		item.BuyerPhone = inq.BuyerPhone
		response.Inquiries[i] = item
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// Sent обрабатывает GET /api/inquiries/buyer
func (h *InquiryHandlers) Sent(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SentInquiries"})

	claims, ok := claimsFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	inquiries, err := h.listSentUC.Execute(r.Context(), claims.UserID)
	if err != nil {
		writeUseCaseError(w, logger, err, "Database error")
		return
	}

	response := InquiryListResponse{Inquiries: make([]InquiryResponse, len(inquiries))}
	for i, inq := range inquiries {
		item := baseInquiryResponse(inq.Inquiry, inq.PropertyTitle, inq.PropertyAddress)
		price := inq.PropertyPrice
		item.PropertyPrice = &price
		item.SellerName = inq.SellerName
		response.Inquiries[i] = item
	}
	RespondWithJSON(w, http.StatusOK, response)
}
