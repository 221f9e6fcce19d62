package usecase

import (
	"context"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"strings"

	"github.com/google/uuid"
)

// AssistantChatUseCase отвечает на вопросы пользователя. Без подключенной модели
// отвечает заготовками, при ошибке модели - тоже заготовками, но с source=fallback.
type AssistantChatUseCase struct {
	completion port.ChatCompletionPort // nil - ключ API не настроен
	storage    port.PropertyStoragePort
}

func NewAssistantChatUseCase(completion port.ChatCompletionPort, storage port.PropertyStoragePort) *AssistantChatUseCase {
	return &AssistantChatUseCase{completion: completion, storage: storage}
}

func (uc *AssistantChatUseCase) Execute(ctx context.Context, message string, propertyID *uuid.UUID) (*domain.ChatReply, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "AssistantChat",
	})

	if strings.TrimSpace(message) == "" {
		return nil, domain.ErrEmptyChatMessage
	}

	if uc.completion == nil {
		return &domain.ChatReply{Reply: domain.CannedChatAnswer(message), Source: domain.ChatSourceMock}, nil
	}

	// Контекст объявления необязателен: если его не удалось загрузить, отвечаем без него
	var property *domain.Property
	if propertyID != nil {
		p, err := uc.storage.GetByID(ctx, *propertyID)
		if err != nil {
			ucLogger.Debug("Property context unavailable", port.Fields{"property_id": propertyID.String(), "error": err.Error()})
		} else {
			property = p
		}
	}

	reply, err := uc.completion.Complete(ctx, domain.BuildChatContext(property), message)
	if err != nil {
		ucLogger.Warn("Completion failed, falling back to canned answer", port.Fields{"error": err.Error()})
		return &domain.ChatReply{Reply: domain.CannedChatAnswer(message), Source: domain.ChatSourceFallback}, nil
	}

	ucLogger.Info("Completion answered", nil)
	return &domain.ChatReply{Reply: reply, Source: domain.ChatSourceOpenAI}, nil
}
