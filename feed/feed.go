// Package feed composes paginated, per-viewer views over ordered post lists.
// It owns no state of its own: it's a pure read-side combinator over the
// post and like stores.
package feed

import (
	"socialnet/domain"
)

// Composer builds Feed pages. It annotates each page with the like state of
// the viewing user, fetched through the like store.
type Composer struct {
	ls domain.LikeService
}

// NewComposer returns a Composer reading like state from the given service.
func NewComposer(ls domain.LikeService) *Composer {
	return &Composer{
		ls: ls,
	}
}

// Compose cuts one page out of the given ordered post list and annotates it
// for the viewer. Pages are 1-indexed and domain.FeedPageSize posts long;
// out-of-range page numbers clamp to the first or last valid page and never
// error. A nil viewer produces a nil LikedPostIDs (anonymous), a viewer who
// has liked nothing an empty slice; the two stay distinguishable.
func (c *Composer) Compose(posts []domain.Post, viewer *domain.User, page int) (*domain.Feed, error) {
	totalPages := (len(posts) + domain.FeedPageSize - 1) / domain.FeedPageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * domain.FeedPageSize
	end := start + domain.FeedPageSize
	if start > len(posts) {
		start = len(posts)
	}
	if end > len(posts) {
		end = len(posts)
	}

	pagePosts := posts[start:end]
	if pagePosts == nil {
		pagePosts = []domain.Post{}
	}

	feed := &domain.Feed{
		Posts: pagePosts,
		Pagination: domain.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			HasNext:     page < totalPages,
			HasPrevious: page > 1,
		},
	}

	if viewer != nil {
		likedIds, err := c.ls.LikedPostIDs(viewer.ID)
		if err != nil {
			return nil, err
		}
		feed.LikedPostIDs = likedIds
	}
	return feed, nil
}
