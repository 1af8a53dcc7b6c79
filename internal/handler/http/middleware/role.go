package middleware

import (
	"net/http"

	"github.com/palmhr/attendance-backend-go/internal/domain/user"
	"github.com/palmhr/attendance-backend-go/internal/handler/http/response"
	"github.com/palmhr/attendance-backend-go/internal/pkg/authctx"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := authctx.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if identity.Role != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SupervisorOnly gates the route surface; the per-transition policy checks in
// the services remain the authority on what a role may actually decide.
func SupervisorOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := authctx.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !identity.Role.IsSupervisor() {
			response.HandleError(w, user.ErrSupervisorRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
