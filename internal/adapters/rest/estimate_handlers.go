package rest

import (
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"marketplace-service/internal/core/port/usecases_port"
	"net/http"

	"github.com/google/uuid"
)

// EstimateHandlers обслуживает /api/valuation
type EstimateHandlers struct {
	valueUC usecases_port.EstimateValueUseCasePort
	loanUC  usecases_port.EstimateLoanUseCasePort
}

func NewEstimateHandlers(valueUC usecases_port.EstimateValueUseCasePort, loanUC usecases_port.EstimateLoanUseCasePort) *EstimateHandlers {
	return &EstimateHandlers{valueUC: valueUC, loanUC: loanUC}
}

// EstimateValue обрабатывает POST /api/valuation/property
func (h *EstimateHandlers) EstimateValue(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "EstimateValue"})

	var req ValuationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid valuation request", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	valuation := domain.ValuationRequest{
		Attributes: domain.ValuationAttributes{
			PropertyType: req.PropertyType,
			AreaSqft:     req.AreaSqft,
			Bedrooms:     req.Bedrooms,
			Bathrooms:    req.Bathrooms,
			Parking:      req.Parking,
			YearBuilt:    req.YearBuilt,
			City:         req.City,
		},
	}
	if req.PropertyID != "" {
		id, err := uuid.Parse(req.PropertyID)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "property_id must be a valid id")
			return
		}
		valuation.PropertyID = &id
	}

	result, err := h.valueUC.Execute(r.Context(), valuation)
	if err != nil {
		writeUseCaseError(w, logger, err, "Valuation error")
		return
	}

	RespondWithJSON(w, http.StatusOK, result)
}

// EstimateLoan обрабатывает POST /api/valuation/loan
func (h *EstimateHandlers) EstimateLoan(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "EstimateLoan"})

	var req LoanRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid loan request", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	estimate, err := h.loanUC.Execute(r.Context(), req.toDomain())
	if err != nil {
		writeUseCaseError(w, logger, err, "Loan estimation error")
		return
	}

	RespondWithJSON(w, http.StatusOK, LoanResponse{
		LoanEstimate:      *estimate,
		AffordabilityTips: domain.AffordabilityTips,
	})
}
