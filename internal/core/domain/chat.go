package domain

import (
	"fmt"
	"strings"
)

// Источник ответа ассистента
const (
	ChatSourceOpenAI   = "openai"
	ChatSourceMock     = "mock"
	ChatSourceFallback = "fallback"
)

const assistantIntro = "You are a helpful real estate assistant for NexHome, a direct buyer-seller marketplace (no brokers). "

// ChatReply - ответ ассистента и то, откуда он взялся.
type ChatReply struct {
	Reply  string
	Source string
}

type cannedRule struct {
	keywords []string
	answer   string
}

// Порядок важен: срабатывает первое совпадение.
var cannedRules = []cannedRule{
	{[]string{"price", "cost"}, "Property prices vary based on location, size, and condition. Use our property valuation tool for accurate estimates."},
	{[]string{"loan", "mortgage"}, "Our loan estimation tool can help you calculate monthly payments. Generally, aim for a down payment of 20% and consider your credit score."},
	{[]string{"buy", "purchase"}, "To buy a property, create a buyer account, search for properties, and contact sellers directly through our platform. No brokers needed!"},
	{[]string{"sell", "list"}, "To sell your property, create a seller account, list your property with photos and details, and connect directly with interested buyers."},
	{[]string{"rent"}, "Browse rental properties, filter by your preferences, and contact landlords directly. All rentals are verified and broker-free."},
}

const assistantGuidance = "Provide helpful, accurate information about properties, buying, selling, and renting. Be concise and friendly."

const defaultCannedAnswer = "I can help you with property searches, pricing information, loan estimates, and general real estate questions. What would you like to know?"

// CannedChatAnswer подбирает заготовленный ответ по ключевым словам.
func CannedChatAnswer(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range cannedRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.answer
			}
		}
	}
	return defaultCannedAnswer
}

// BuildChatContext - системный промпт ассистента; при наличии объявления добавляет его краткое описание.
func BuildChatContext(p *Property) string {
	var sb strings.Builder
	sb.WriteString(assistantIntro)
	if p != nil {
		writePropertySummary(&sb, p)
	}
	sb.WriteString(assistantGuidance)
	return sb.String()
}

func writePropertySummary(sb *strings.Builder, p *Property) {
	fmt.Fprintf(sb, "The user is asking about property: %s at %s, %s, %s. Price: $%.0f. ",
		p.Title, p.Address, p.City, p.State, p.Price)
	if p.Bedrooms != nil {
		fmt.Fprintf(sb, "Bedrooms: %d. ", *p.Bedrooms)
	}
	if p.Bathrooms != nil {
		fmt.Fprintf(sb, "Bathrooms: %d. ", *p.Bathrooms)
	}
	if p.AreaSqft != nil {
		fmt.Fprintf(sb, "Area: %d sqft. ", *p.AreaSqft)
	}
	description := p.Description
	if description == "" {
		description = "No description available"
	}
	fmt.Fprintf(sb, "Description: %s. ", description)
}
