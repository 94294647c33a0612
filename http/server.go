package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"

	"socialnet/auth"
	"socialnet/domain"
	"socialnet/errs"
	"socialnet/feed"
)

// Server provides the http functionality of this app, namely routing,
// request handling, and middleware. It resolves the requesting identity
// and performs authorization before handing things over to one of the
// stores or the feed composer.
type Server struct {
	router *mux.Router
	us     domain.UserService
	ps     domain.PostService
	fs     domain.FollowService
	ls     domain.LikeService
	feed   *feed.Composer
}

// ServerConfig carries the http-level configuration. An empty CSRFKey
// disables the CSRF middleware, which dev setups and tests rely on.
type ServerConfig struct {
	CSRFKey string
	Secure  bool
}

// NewServer returns a new instance of the server, registers all necessary
// routes and gives their handlers access to the app services passed in.
func NewServer(
	cfg ServerConfig,
	us domain.UserService,
	ps domain.PostService,
	fs domain.FollowService,
	ls domain.LikeService,
) *Server {

	// Construct a new Server with a gorilla router and the services passed in.
	s := &Server{
		router: mux.NewRouter(),
		us:     us,
		ps:     ps,
		fs:     fs,
		ls:     ls,
		feed:   feed.NewComposer(ls),
	}

	// Register routes of the auth system.
	s.registerAuthRoutes(s.router)

	// Register routes of the feed and toggle system.
	s.registerPostRoutes(s.router)
	s.registerFollowRoutes(s.router)
	s.registerLikeRoutes(s.router)

	// Set up middleware that needs to run on every request.
	if cfg.CSRFKey != "" {
		csrfMw := csrf.Protect([]byte(cfg.CSRFKey), csrf.Secure(cfg.Secure), csrf.Path("/"))
		s.router.Use(csrfMw)
	} else {
		slog.Warn("csrf protection disabled, no key configured")
	}
	s.router.Use(setContentTypeJSON, s.checkUser)
	return s
}

// ServeHTTP makes the server itself usable as an http.Handler,
// which the handler tests lean on.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// The setContentTypeJSON middleware sets the content type to "application/json".
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// The checkUser middleware resolves the requesting identity from the
// remember token cookie, if there is one, and stores the user in the
// request context. Requests without a valid cookie pass through anonymous.
func (s *Server) checkUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("remember_token")
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.us.ByRemember(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		r = r.WithContext(auth.SetUser(r.Context(), user))
		next.ServeHTTP(w, r)
	})
}

// requireAuth wraps a handler so it only runs for authenticated requests.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auth.GetUser(r.Context()) == nil {
			errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "You must be logged in to do that."))
			return
		}
		next(w, r)
	}
}

// getUserFromContext returns the authenticated user of the request, or nil.
func (s *Server) getUserFromContext(r *http.Request) *domain.User {
	return auth.GetUser(r.Context())
}

// pageParam reads the optional ?page= query parameter. Anything that isn't
// a number reads as page 1; out-of-range values are clamped later by the
// feed composer.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) error {
	addr := ":" + strconv.Itoa(port)
	slog.Info("server listening", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}
