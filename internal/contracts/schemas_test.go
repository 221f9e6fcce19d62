package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "PropertyListedEvent/1.0.0", generateKeyFromPath("events/property-listed/v1.json"))
	assert.Equal(t, "PropertyCreateRequest/2.0.0", generateKeyFromPath("requests/property-create/v2.json"))
	assert.Equal(t, "", generateKeyFromPath("events/v1.json"))
	assert.Equal(t, "", generateKeyFromPath("other/property-listed/v1.json"))
}

func TestAllSchemasRegistered(t *testing.T) {
	for _, key := range []string{
		"PropertyListedEvent/1.0.0",
		"InquiryCreatedEvent/1.0.0",
		"PropertyCreateRequest/1.0.0",
		"PropertyUpdateRequest/1.0.0",
	} {
		_, ok := compiledSchemas[key]
		assert.True(t, ok, key)
	}
}

func TestValidateRequest_PropertyCreate(t *testing.T) {
	valid := `{"title":"Loft","property_type":"Condo","listing_type":"sale","price":350000,
		"address":"1 Main St","city":"Brooklyn","state":"NY","bedrooms":2,"images":["a.jpg"]}`
	assert.NoError(t, ValidateRequest("PropertyCreateRequest", "1.0.0", []byte(valid)))

	missingCity := `{"title":"Loft","property_type":"Condo","listing_type":"sale","price":1,"address":"x","state":"NY"}`
	assert.Error(t, ValidateRequest("PropertyCreateRequest", "1.0.0", []byte(missingCity)))

	badListing := `{"title":"Loft","property_type":"Condo","listing_type":"lease","price":1,"address":"x","city":"y","state":"NY"}`
	assert.Error(t, ValidateRequest("PropertyCreateRequest", "1.0.0", []byte(badListing)))

	negativePrice := `{"title":"Loft","property_type":"Condo","listing_type":"rent","price":-5,"address":"x","city":"y","state":"NY"}`
	assert.Error(t, ValidateRequest("PropertyCreateRequest", "1.0.0", []byte(negativePrice)))
}

func TestValidateRequest_PropertyUpdate(t *testing.T) {
	assert.NoError(t, ValidateRequest("PropertyUpdateRequest", "1.0.0", []byte(`{"price":10,"status":"sold"}`)))
	assert.Error(t, ValidateRequest("PropertyUpdateRequest", "1.0.0", []byte(`{"status":"archived"}`)))
	assert.Error(t, ValidateRequest("PropertyUpdateRequest", "1.0.0", []byte(`not json`)))
}

func TestValidateEvent(t *testing.T) {
	body := `{"inquiry_id":"6f1c7e2a-4a43-4f8e-9d55-0c3c2f6b7a10","property_id":"0b0ad5c1-3f8e-4d2b-9b8f-7e2f0c1a2b3c",
		"buyer_id":"9e107d9d-372b-4d4f-8a6c-2a3b4c5d6e7f","seller_id":"1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f",
		"created_at":"2025-01-02T15:04:05Z"}`
	assert.NoError(t, ValidateEvent("InquiryCreatedEvent", "1.0.0", []byte(body)))
	assert.Error(t, ValidateEvent("InquiryCreatedEvent", "1.0.0", []byte(`{"inquiry_id":"nope"}`)))
	assert.Error(t, ValidateEvent("UnknownEvent", "1.0.0", []byte(`{}`)))
}
