package port

import "context"

// ChatCompletionPort - внешняя языковая модель.
type ChatCompletionPort interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}
