package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseImageRefs(t *testing.T) {
	assert.Equal(t, []string{}, ParseImageRefs(""))
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, ParseImageRefs(`["a.jpg", " ", "b.jpg"]`))
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, ParseImageRefs(" a.jpg, ,b.jpg "))
	assert.Equal(t, []string{"single.png"}, ParseImageRefs("single.png"))
}

func TestEncodeImageRefs(t *testing.T) {
	assert.Equal(t, "[]", EncodeImageRefs(nil))

	encoded := EncodeImageRefs([]string{"a.jpg", "b,c.jpg"})
	assert.Equal(t, `["a.jpg","b,c.jpg"]`, encoded)
	assert.Equal(t, []string{"a.jpg", "b,c.jpg"}, ParseImageRefs(encoded))
}

func TestResolveImageURL(t *testing.T) {
	assert.Equal(t, "/uploads/properties/a.jpg", ResolveImageURL("/uploads/properties", "a.jpg"))
	assert.Equal(t, "/uploads/properties/a.jpg", ResolveImageURL("", "old/dir/a.jpg"))
	assert.Equal(t, "https://cdn.example.com/x.jpg", ResolveImageURL("/uploads", "https://cdn.example.com/x.jpg"))
	assert.Equal(t, "http://static.example.com/img/a.jpg", ResolveImageURL("http://static.example.com/img/", "a.jpg"))
	assert.Equal(t, "", ResolveImageURL("/uploads", ""))

	assert.Equal(t, []string{"/p/a.jpg", "/p/b.jpg"}, ResolveImageURLs("/p", []string{"a.jpg", "", "b.jpg"}))
}
