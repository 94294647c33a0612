package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"socialnet/domain"
	"socialnet/errs"
)

// registerFollowRoutes is a helper for registering all Follow routes.
func (s *Server) registerFollowRoutes(r *mux.Router) {
	// Toggle the follow state towards another user.
	r.HandleFunc("/follow", s.requireAuth(s.handleFollow)).Methods("POST")
}

// handleFollow handles the route "POST /follow".
// It toggles the follow state of the authenticated user towards the user
// named in the json body. The body's "follow" field is still accepted for
// compatibility with older clients but the intended action is recomputed
// from the current relationship state, so a stale client can't create a
// follow it believes it is removing.
func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserToFollow int    `json:"user_to_follow"`
		Follow       string `json:"follow"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}

	user := s.getUserFromContext(r)
	follow := domain.Follow{
		FollowerID: user.ID,
		FollowedID: req.UserToFollow,
	}

	var message string
	if s.fs.IsFollowing(user.ID, req.UserToFollow) {
		if err := s.fs.Delete(&follow); err != nil {
			errs.ReturnError(w, r, err)
			return
		}
		message = "Unfollowing"
	} else {
		if err := s.fs.Create(&follow); err != nil {
			errs.ReturnError(w, r, err)
			return
		}
		message = "Following"
	}

	if err := json.NewEncoder(w).Encode(map[string]string{"message": message}); err != nil {
		errs.LogError(r, err)
	}
}
