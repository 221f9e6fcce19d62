package domain

import (
	"encoding/json"
	"path"
	"strings"
)

// DefaultImagePrefix - путь, под которым раздаются загруженные фотографии.
const DefaultImagePrefix = "/uploads/properties"

// ParseImageRefs разбирает сохраненное поле images: JSON-массив или
// (старый формат) строка через запятую. Пустые элементы отбрасываются.
func ParseImageRefs(raw string) []string {
	raw = strings.TrimSpace(raw)
	refs := []string{}
	if raw == "" {
		return refs
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		list = strings.Split(raw, ",")
	}
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			refs = append(refs, item)
		}
	}
	return refs
}

// EncodeImageRefs сериализует список в JSON-массив для хранения.
func EncodeImageRefs(refs []string) string {
	if refs == nil {
		refs = []string{}
	}
	data, err := json.Marshal(refs)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// ResolveImageURL: абсолютные ссылки возвращаются как есть, имена файлов
// превращаются в путь под prefix.
func ResolveImageURL(prefix, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	if prefix == "" {
		prefix = DefaultImagePrefix
	}
	if strings.HasPrefix(prefix, "http") {
		return strings.TrimRight(prefix, "/") + "/" + path.Base(ref)
	}
	return path.Join(prefix, path.Base(ref))
}

// ResolveImageURLs применяет ResolveImageURL к списку.
func ResolveImageURLs(prefix string, refs []string) []string {
	urls := make([]string, 0, len(refs))
	for _, ref := range refs {
		if u := ResolveImageURL(prefix, ref); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
