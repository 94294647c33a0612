package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"socialnet/errs"
)

// registerLikeRoutes is a helper for registering all Like routes.
func (s *Server) registerLikeRoutes(r *mux.Router) {
	// Toggle the like state on a post.
	r.HandleFunc("/like_post/{post_id:[0-9]+}", s.requireAuth(s.handleLikePost)).Methods("POST")
}

// likeResponse is the wire shape of a like toggle result.
type likeResponse struct {
	Message    string `json:"message"`
	LikesCount int    `json:"likesCount"`
}

// handleLikePost handles the route "POST /like_post/{post_id}".
// It reads the post ID from the url and toggles the authenticated user's
// like on that post, returning the new state and the updated like count.
func (s *Server) handleLikePost(w http.ResponseWriter, r *http.Request) {
	postId, err := strconv.Atoi(mux.Vars(r)["post_id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	user := s.getUserFromContext(r)
	state, count, err := s.ls.Toggle(user.ID, postId)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(likeResponse{Message: state, LikesCount: count}); err != nil {
		errs.LogError(r, err)
	}
}
