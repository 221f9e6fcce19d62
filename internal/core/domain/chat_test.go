package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCannedChatAnswer(t *testing.T) {
	assert.Contains(t, CannedChatAnswer("What does it COST?"), "valuation tool")
	assert.Contains(t, CannedChatAnswer("mortgage options"), "loan estimation tool")
	// "price" проверяется раньше, чем "loan"
	assert.Contains(t, CannedChatAnswer("loan price"), "valuation tool")
	assert.Contains(t, CannedChatAnswer("I want to purchase"), "buyer account")
	assert.Contains(t, CannedChatAnswer("how to sell"), "seller account")
	assert.Contains(t, CannedChatAnswer("looking to rent"), "rental properties")
	assert.Equal(t, defaultCannedAnswer, CannedChatAnswer("hello"))
}

func TestBuildChatContext(t *testing.T) {
	plain := BuildChatContext(nil)
	assert.Contains(t, plain, "NexHome")
	assert.NotContains(t, plain, "The user is asking about property")

	beds := 2
	withProperty := BuildChatContext(&Property{
		Title:    "Loft",
		Address:  "1 Main St",
		City:     "Brooklyn",
		State:    "NY",
		Price:    650000,
		Bedrooms: &beds,
	})
	assert.Contains(t, withProperty, "Loft at 1 Main St, Brooklyn, NY. Price: $650000.")
	assert.Contains(t, withProperty, "Bedrooms: 2.")
	assert.NotContains(t, withProperty, "Bathrooms")
	assert.Contains(t, withProperty, "No description available")
}
