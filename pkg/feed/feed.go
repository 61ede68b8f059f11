// Package feed holds the client-side view of the post collection: a cached
// copy of whatever the backend last returned, a substring filter over it, and
// the locally tracked set of images hidden after deletion.
package feed

import (
	"context"
	"strings"
	"sync"

	"github.com/gofrs/uuid"

	"blogfront/pkg/models"
)

// Source fetches the post collection. *backend.Client satisfies it.
type Source interface {
	Posts(ctx context.Context) ([]models.Post, error)
}

type Collection struct {
	mu     sync.Mutex
	src    Source
	posts  []models.Post
	hidden map[uuid.UUID]struct{}
}

func New(src Source) *Collection {
	return &Collection{
		src:    src,
		hidden: make(map[uuid.UUID]struct{}),
	}
}

// Load refetches the full collection and replaces the cache. The backend
// returns oldest first; the list is reversed so newest posts render on top.
// That ordering is this client's policy, not a backend guarantee.
func (c *Collection) Load(ctx context.Context) error {
	posts, err := c.src.Posts(ctx)
	if err != nil {
		return err
	}

	for i, j := 0, len(posts)-1; i < j; i, j = i+1, j-1 {
		posts[i], posts[j] = posts[j], posts[i]
	}

	c.mu.Lock()
	c.posts = posts
	c.mu.Unlock()

	return nil
}

// Filter returns the cached posts whose title or content contains term,
// case-insensitively. An empty term returns the whole cache.
func (c *Collection) Filter(term string) []models.Post {
	c.mu.Lock()
	defer c.mu.Unlock()

	if term == "" {
		return append([]models.Post(nil), c.posts...)
	}

	needle := strings.ToLower(term)
	var matched []models.Post
	for _, p := range c.posts {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Content), needle) {
			matched = append(matched, p)
		}
	}

	return matched
}

// Post looks a post up in the cache.
func (c *Collection) Post(id uuid.UUID) (models.Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

// Comment looks a comment up in the cache along with its owning post.
func (c *Collection) Comment(id uuid.UUID) (models.Comment, models.Post, bool) {
	if id == uuid.Nil {
		return models.Comment{}, models.Post{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.posts {
		for _, cm := range p.Comments {
			if cm.ID == id {
				return cm, p, true
			}
		}
	}
	return models.Comment{}, models.Post{}, false
}

// Hide records an image as deleted so the gallery drops it immediately,
// whatever the cached collection still says.
func (c *Collection) Hide(imageID uuid.UUID) {
	c.mu.Lock()
	c.hidden[imageID] = struct{}{}
	c.mu.Unlock()
}

// Visible filters the hidden overlay out of a gallery's image IDs.
func (c *Collection) Visible(ids []uuid.UUID) []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := c.hidden[id]; !ok {
			visible = append(visible, id)
		}
	}
	return visible
}
