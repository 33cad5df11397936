package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pokerfloor/pokerfloor/internal/auth"
	"github.com/pokerfloor/pokerfloor/internal/httputil"
	"github.com/pokerfloor/pokerfloor/internal/model"
	"github.com/pokerfloor/pokerfloor/internal/store"
)

type ContextKey string

const UserKey ContextKey = "user"

// Authenticate verifies the bearer token and loads the user into the request
// context. Requests without a token pass through anonymously; handlers that
// need a user stack RequireStaff (or check GetUser) on top.
func Authenticate(userStore *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				httputil.Unauthorized(w, "Invalid or expired token")
				return
			}

			user, err := userStore.GetUser(r.Context(), claims.UserID)
			if err != nil {
				httputil.Unauthorized(w, "User not found")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff rejects requests unless the authenticated user is staff or
// admin. Casino-level assignment checks happen in the services, which know
// which casino a record belongs to.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r.Context())
		if user == nil {
			httputil.Unauthorized(w, "No token provided")
			return
		}
		if user.Role != model.RoleStaff && user.Role != model.RoleAdmin {
			httputil.Forbidden(w, "Staff access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects unauthenticated requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r.Context()) == nil {
			httputil.Unauthorized(w, "No token provided")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUser(ctx context.Context) *model.User {
	val := ctx.Value(UserKey)
	if val == nil {
		return nil
	}
	user, ok := val.(*model.User)
	if !ok {
		return nil
	}
	return user
}
