package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"socialnet/crud"
	"socialnet/domain"
)

// testServer wires a full server against a fresh in-memory database.
// CSRF stays disabled, like in the dev setup.
type testServer struct {
	*Server
	db *gorm.DB
	us *crud.UserService
	ps *crud.PostService
	fs *crud.FollowService
	ls *crud.LikeService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		domain.User{},
		domain.Post{},
		domain.Follow{},
		domain.Like{},
	))

	services, err := crud.NewServices(
		db,
		crud.WithUser("test-hmac-key", "test-pepper"),
		crud.WithPost(),
		crud.WithFollow(),
		crud.WithLike(),
	)
	require.NoError(t, err)

	server := NewServer(
		ServerConfig{},
		services.User,
		services.Post,
		services.Follow,
		services.Like,
	)
	return &testServer{
		Server: server,
		db:     db,
		us:     services.User,
		ps:     services.Post,
		fs:     services.Follow,
		ls:     services.Like,
	}
}

// signUp registers a user through the user service and returns it with the
// plain remember token still set, ready to be put into a cookie.
func (ts *testServer) signUp(t *testing.T, username string) *domain.User {
	t.Helper()
	user := domain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	}
	require.NoError(t, ts.us.Create(&user))
	return &user
}

// do performs a request against the server, optionally authenticated as the
// given user, and returns the recorded response.
func (ts *testServer) do(t *testing.T, method, target string, body interface{}, as *domain.User) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if as != nil {
		req.AddCookie(&http.Cookie{Name: "remember_token", Value: as.Remember})
	}
	w := httptest.NewRecorder()
	ts.ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorded json response body into out.
func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
