package memory

import (
	"time"

	"rockspec-notes/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// PreviewCache fronts the public preview lookup. Preview pages are read by
// anonymous visitors and never depend on caller identity, so a short TTL
// copy is safe; mutations invalidate eagerly.
type PreviewCache struct {
	cache *cache.Cache
}

func NewPreviewCache() *PreviewCache {
	// Default expiration of 1 minute, purge every 5 minutes.
	c := cache.New(1*time.Minute, 5*time.Minute)
	return &PreviewCache{
		cache: c,
	}
}

func (p *PreviewCache) Get(id uuid.UUID) (*entity.Note, bool) {
	if x, found := p.cache.Get(id.String()); found {
		return x.(*entity.Note), true
	}
	return nil, false
}

func (p *PreviewCache) Set(note *entity.Note) {
	p.cache.Set(note.Id.String(), note, cache.DefaultExpiration)
}

func (p *PreviewCache) Invalidate(id uuid.UUID) {
	p.cache.Delete(id.String())
}
