package domain

// FeedPageSize is the fixed number of posts per feed page.
const FeedPageSize = 10

// Pagination describes the position of a feed page within the full result.
// Pages are 1-indexed.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Feed is one page of posts prepared for a specific viewer. LikedPostIDs
// holds the ids of the posts on this page's underlying result set that the
// viewer has liked. It is nil for an anonymous viewer and an empty slice
// for an authenticated viewer who has liked nothing; the two serialize
// distinguishably as null and [].
type Feed struct {
	Posts        []Post     `json:"posts"`
	LikedPostIDs []int      `json:"liked_post_ids"`
	Pagination   Pagination `json:"pagination"`
}
