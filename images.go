package reel

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// ImageResolver picks the image to show for an entry with the fallback order
// device-matching image, any image, category default. Results are cached per
// entry and form factor until Flush.
type ImageResolver struct {
	cache *cache.Cache
}

// NewImageResolver creates a resolver whose cached results expire after ttl.
// A zero ttl caches without expiry.
func NewImageResolver(ttl time.Duration) *ImageResolver {
	exp := ttl
	if exp <= 0 {
		exp = cache.NoExpiration
	}
	return &ImageResolver{cache: cache.New(exp, 2*exp)}
}

// Resolve returns the image URL for e, or "" when nothing is available.
func (r *ImageResolver) Resolve(e Entry, ff FormFactor) string {
	if e.Category == nil {
		return ""
	}
	key := e.Key().String() + "|" + string(ff)
	if v, ok := r.cache.Get(key); ok {
		return v.(string)
	}
	url := resolveImage(e, ff)
	r.cache.Set(key, url, cache.DefaultExpiration)
	return url
}

// Flush drops every cached result. Called when the source snapshot changes.
func (r *ImageResolver) Flush() {
	r.cache.Flush()
}

func resolveImage(e Entry, ff FormFactor) string {
	if e.Kind == EntryCategory {
		if e.Category.Icon != "" {
			return e.Category.Icon
		}
		return e.Category.Background
	}
	for _, img := range e.Story.Images {
		if img.FormFactor == ff && img.URL != "" {
			return img.URL
		}
	}
	for _, img := range e.Story.Images {
		if img.URL != "" {
			return img.URL
		}
	}
	return e.Category.Background
}
