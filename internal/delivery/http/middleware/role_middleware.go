package middleware

import (
	"net/http"

	"convenio-backend/internal/domain/entity"
	"convenio-backend/pkg/response"
)

// RequireRole creates a middleware that checks if the user holds any of
// the named roles. Roles are read from context (set by AuthMiddleware
// from JWT claims).
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roles, ok := GetRolesFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
		outer:
			for _, have := range roles {
				for _, want := range allowedRoles {
					if have == want {
						allowed = true
						break outer
					}
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireSystem guards gateway callbacks (payment confirmations) that
// only service accounts may hit. Admins pass too for manual replays.
func RequireSystem(next http.Handler) http.Handler {
	return RequireRole(entity.RoleSystem, entity.RoleAdmin)(next)
}

// RequireProfessional is a convenience middleware for professional endpoints
func RequireProfessional(next http.Handler) http.Handler {
	return RequireRole(entity.RoleProfessional)(next)
}

// RequireAdminOrProfessional allows clinic staff endpoints shared by both
func RequireAdminOrProfessional(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleProfessional)(next)
}

// RequireAffiliate is a convenience middleware for affiliate dashboards
func RequireAffiliate(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAffiliate, entity.RoleAdmin)(next)
}
