package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"socialnet/domain"
	"socialnet/errs"
)

// registerPostRoutes is a helper for registering all Post and feed routes.
func (s *Server) registerPostRoutes(r *mux.Router) {
	// Create a new post.
	r.HandleFunc("/post", s.requireAuth(s.handleCreatePost)).Methods("POST")

	// Edit the content of an existing post.
	r.HandleFunc("/edit_post/{post_id:[0-9]+}", s.requireAuth(s.handleEditPost)).Methods("PUT")

	// Feed pages: all posts, a single profile, posts of followed users.
	r.HandleFunc("/", s.handleIndex).Methods("GET")
	r.HandleFunc("/profile/{user_id:[0-9]+}", s.handleProfile).Methods("GET")
	r.HandleFunc("/following", s.requireAuth(s.handleFollowing)).Methods("GET")
}

// handleCreatePost handles the route "POST /post".
// It reads the content from the json body and creates a new post owned by
// the authenticated user.
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}

	user := s.getUserFromContext(r)
	post := domain.Post{
		UserID:  user.ID,
		Content: req.Content,
	}
	if err := s.ps.Create(&post); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&post); err != nil {
		errs.LogError(r, err)
	}
}

// handleEditPost handles the route "PUT /edit_post/{post_id}".
// It replaces the content of a post. The creation timestamp stays untouched.
func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request) {
	postId, err := strconv.Atoi(mux.Vars(r)["post_id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}

	// Check that the post belongs to the authed user before touching it.
	post, err := s.ps.ByID(postId)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	user := s.getUserFromContext(r)
	if post.UserID != user.ID {
		errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "You are not allowed to edit this post."))
		return
	}

	if _, err := s.ps.Update(postId, req.Content); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(map[string]string{"message": "Post modified successfully"}); err != nil {
		errs.LogError(r, err)
	}
}

// handleIndex handles the route "GET /?page=N".
// It returns one page of the all-posts feed, annotated for the viewer.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := s.ps.All()
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	f, err := s.feed.Compose(posts, s.getUserFromContext(r), pageParam(r))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if err := json.NewEncoder(w).Encode(f); err != nil {
		errs.LogError(r, err)
	}
}

// handleProfile handles the route "GET /profile/{user_id}?page=N".
// It returns the profile user with follower counts, plus one page of their
// posts annotated for the viewer. For a logged-in viewer looking at someone
// else's profile, it also reports whether the viewer follows them.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userId, err := strconv.Atoi(mux.Vars(r)["user_id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	profileUser, err := s.us.ByID(userId)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if profileUser.FollowerCount, err = s.fs.CountFollowers(userId); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if profileUser.FollowingCount, err = s.fs.CountFollowing(userId); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	viewer := s.getUserFromContext(r)
	if viewer != nil && viewer.ID != userId {
		isFollowing := s.fs.IsFollowing(viewer.ID, userId)
		profileUser.IsFollowing = &isFollowing
	}

	posts, err := s.ps.ByUserID(userId)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	f, err := s.feed.Compose(posts, viewer, pageParam(r))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	response := struct {
		ProfileUser *domain.User `json:"profile_user"`
		*domain.Feed
	}{profileUser, f}
	if err := json.NewEncoder(w).Encode(&response); err != nil {
		errs.LogError(r, err)
	}
}

// handleFollowing handles the route "GET /following?page=N".
// It returns one page of posts made by users the authenticated user follows.
func (s *Server) handleFollowing(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r)

	posts, err := s.ps.ByFollowing(user.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	f, err := s.feed.Compose(posts, user, pageParam(r))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if err := json.NewEncoder(w).Encode(f); err != nil {
		errs.LogError(r, err)
	}
}
