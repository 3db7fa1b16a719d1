package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/klokku/backoffice/pkg/user"
	log "github.com/sirupsen/logrus"
)

const userIdHeader = "X-User-Id"

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {
	r.Use(requestLogger)
	r.Use(userFromHeader(deps.UserService))
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log.WithFields(log.Fields{
			"method": req.Method,
			"path":   req.URL.Path,
		}).Trace("request")
		next.ServeHTTP(w, req)
	})
}

// userFromHeader puts the user named by the X-User-Id header into the request context.
// API requests other than user creation and listing need a known user.
func userFromHeader(userService user.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			uid := req.Header.Get(userIdHeader)

			if uid == "" {
				if requiresUser(req) {
					http.Error(w, "missing "+userIdHeader+" header", http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, req)
				return
			}

			u, err := userService.GetUserByUid(ctx, uid)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					log.Debugf("user not found: %s", uid)
					http.Error(w, "user not found", http.StatusForbidden)
					return
				}
				log.Errorf("failed to get user: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			log.Tracef("user found: %s", u.Uid)
			next.ServeHTTP(w, req.WithContext(user.WithUser(ctx, u)))
		})
	}
}

func requiresUser(req *http.Request) bool {
	path := req.URL.Path
	if !strings.HasPrefix(path, "/api/") {
		return false
	}
	if path == "/api/user" || path == "/api/registration/steps" {
		return false
	}
	return true
}
