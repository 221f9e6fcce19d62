package rest

import (
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/port"
	"marketplace-service/internal/core/port/usecases_port"
	"net/http"

	"github.com/google/uuid"
)

// AssistantHandlers обслуживает /api/ai
type AssistantHandlers struct {
	chatUC usecases_port.AssistantChatUseCasePort
}

func NewAssistantHandlers(chatUC usecases_port.AssistantChatUseCasePort) *AssistantHandlers {
	return &AssistantHandlers{chatUC: chatUC}
}

// Chat обрабатывает POST /api/ai/chat
func (h *AssistantHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AssistantChat"})

	var req ChatRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid chat request", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var propertyID *uuid.UUID
	if req.PropertyID != "" {
		id, err := uuid.Parse(req.PropertyID)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "property_id must be a valid id")
			return
		}
		propertyID = &id
	}

	reply, err := h.chatUC.Execute(r.Context(), req.Message, propertyID)
	if err != nil {
		writeUseCaseError(w, logger, err, "AI service unavailable")
		return
	}

	logger.Info("Chat answered", port.Fields{"source": reply.Source})
	RespondWithJSON(w, http.StatusOK, ChatResponse{Response: reply.Reply, Source: reply.Source})
}
