package feed

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/domain"
)

// fakeLikeService serves canned like state per user id.
type fakeLikeService struct {
	likes map[int][]int
}

func (f *fakeLikeService) Toggle(userId, postId int) (string, int, error) {
	return "", 0, fmt.Errorf("not implemented")
}

func (f *fakeLikeService) Count(postId int) (int, error) {
	return 0, nil
}

func (f *fakeLikeService) LikedPostIDs(userId int) ([]int, error) {
	if ids, ok := f.likes[userId]; ok {
		return ids, nil
	}
	return []int{}, nil
}

func makePosts(n int) []domain.Post {
	posts := make([]domain.Post, n)
	for i := range posts {
		posts[i] = domain.Post{ID: n - i, Content: fmt.Sprintf("post %d", n-i)}
	}
	return posts
}

func TestCompose_Pagination(t *testing.T) {
	c := NewComposer(&fakeLikeService{})
	posts := makePosts(25)

	tests := []struct {
		name        string
		page        int
		wantPage    int
		wantLen     int
		hasNext     bool
		hasPrevious bool
	}{
		{"first page", 1, 1, 10, true, false},
		{"middle page", 2, 2, 10, true, true},
		{"last page partial", 3, 3, 5, false, true},
		{"page zero clamps to first", 0, 1, 10, true, false},
		{"negative clamps to first", -3, 1, 10, true, false},
		{"beyond last clamps to last", 99, 3, 5, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := c.Compose(posts, nil, tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, f.Pagination.CurrentPage)
			assert.Equal(t, 3, f.Pagination.TotalPages)
			assert.Len(t, f.Posts, tt.wantLen)
			assert.Equal(t, tt.hasNext, f.Pagination.HasNext)
			assert.Equal(t, tt.hasPrevious, f.Pagination.HasPrevious)
		})
	}
}

func TestCompose_PreservesOrder(t *testing.T) {
	c := NewComposer(&fakeLikeService{})
	posts := makePosts(12)

	f, err := c.Compose(posts, nil, 2)
	require.NoError(t, err)
	require.Len(t, f.Posts, 2)
	assert.Equal(t, posts[10].ID, f.Posts[0].ID)
	assert.Equal(t, posts[11].ID, f.Posts[1].ID)
}

func TestCompose_EmptyPosts(t *testing.T) {
	c := NewComposer(&fakeLikeService{})

	f, err := c.Compose(nil, nil, 5)
	require.NoError(t, err)
	assert.Empty(t, f.Posts)
	assert.Equal(t, 1, f.Pagination.CurrentPage)
	assert.Equal(t, 1, f.Pagination.TotalPages)
	assert.False(t, f.Pagination.HasNext)
	assert.False(t, f.Pagination.HasPrevious)
}

func TestCompose_LikeAnnotation(t *testing.T) {
	ls := &fakeLikeService{likes: map[int][]int{7: {1, 3}}}
	c := NewComposer(ls)
	posts := makePosts(3)

	// Anonymous viewer: no like state at all.
	f, err := c.Compose(posts, nil, 1)
	require.NoError(t, err)
	assert.Nil(t, f.LikedPostIDs)

	// Authenticated viewer with likes.
	f, err = c.Compose(posts, &domain.User{ID: 7}, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 3}, f.LikedPostIDs)

	// Authenticated viewer without likes: empty but present.
	f, err = c.Compose(posts, &domain.User{ID: 8}, 1)
	require.NoError(t, err)
	require.NotNil(t, f.LikedPostIDs)
	assert.Empty(t, f.LikedPostIDs)
}

// The wire format must keep "anonymous" (null) and "no likes yet" ([])
// apart, since clients render the like buttons differently.
func TestFeed_LikedPostIDsSerialization(t *testing.T) {
	anonymous := domain.Feed{Posts: []domain.Post{}}
	data, err := json.Marshal(anonymous)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"liked_post_ids":null`)

	authenticated := domain.Feed{Posts: []domain.Post{}, LikedPostIDs: []int{}}
	data, err = json.Marshal(authenticated)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"liked_post_ids":[]`)
}
