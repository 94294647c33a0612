package crud

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/domain"
	"socialnet/errs"
)

func TestLikeService_ToggleTwiceRestoresCount(t *testing.T) {
	db := testDB(t)
	ls := NewLikeService(db)
	emi := testUser(t, db, "emi")
	abi := testUser(t, db, "abi")
	post := testPost(t, db, emi, "hello", time.Now())

	// Another user's like raises the baseline above zero, so the test
	// catches a toggle that wipes all likes instead of just its own.
	_, _, err := ls.Toggle(emi.ID, post.ID)
	require.NoError(t, err)
	baseline, err := ls.Count(post.ID)
	require.NoError(t, err)

	state, count, err := ls.Toggle(abi.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Liked, state)
	assert.Equal(t, baseline+1, count)

	state, count, err = ls.Toggle(abi.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Unliked, state)
	assert.Equal(t, baseline, count)

	count, err = ls.Count(post.ID)
	require.NoError(t, err)
	assert.Equal(t, baseline, count)
}

func TestLikeService_ToggleMissingPost(t *testing.T) {
	db := testDB(t)
	ls := NewLikeService(db)
	emi := testUser(t, db, "emi")

	_, _, err := ls.Toggle(emi.ID, 12345)
	require.Error(t, err)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestLikeService_LikedPostIDs(t *testing.T) {
	db := testDB(t)
	ls := NewLikeService(db)
	emi := testUser(t, db, "emi")
	abi := testUser(t, db, "abi")
	p1 := testPost(t, db, emi, "one", time.Now())
	p2 := testPost(t, db, emi, "two", time.Now())

	_, _, err := ls.Toggle(abi.ID, p1.ID)
	require.NoError(t, err)
	_, _, err = ls.Toggle(abi.ID, p2.ID)
	require.NoError(t, err)

	ids, err := ls.LikedPostIDs(abi.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{p1.ID, p2.ID}, ids)

	// A user with zero likes gets an empty slice, not nil. The feed layer
	// depends on this to keep "liked nothing" and "anonymous" apart.
	ids, err = ls.LikedPostIDs(emi.ID)
	require.NoError(t, err)
	require.NotNil(t, ids)
	assert.Empty(t, ids)
}
