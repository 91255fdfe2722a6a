package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Khan-Yazdani04/devconnect-lite/logging"
	"github.com/Khan-Yazdani04/devconnect-lite/models"
	"github.com/Khan-Yazdani04/devconnect-lite/repositories"
	"github.com/Khan-Yazdani04/devconnect-lite/utils"
)

const accessTokenCookie = "accessToken"

// UserResolver looks up the account behind a verified token.
type UserResolver interface {
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type identityKey struct{}

// Authenticator verifies bearer tokens and attaches the caller's Identity to
// the request context.
type Authenticator struct {
	secret []byte
	users  UserResolver
}

func NewAuthenticator(secret string, users UserResolver) *Authenticator {
	return &Authenticator{secret: []byte(secret), users: users}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractToken(r)
		if tokenStr == "" {
			logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_TOKEN, Description: No access token for request to %s %s", r.Method, r.URL.Path)
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		claims, err := utils.ValidateToken(a.secret, tokenStr)
		if err != nil {
			logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Invalid token provided for request to %s %s: %v", r.Method, r.URL.Path, err)
			utils.RespondError(w, http.StatusUnauthorized, "Invalid access token")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			logging.Logger.Warnf("Event ID: JWT_AUTH_BAD_SUBJECT, Description: Token subject %q is not an object id", claims.UserID)
			utils.RespondError(w, http.StatusUnauthorized, "Invalid access token")
			return
		}

		user, err := a.users.FindUserByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, repositories.ErrStoreUnavailable) {
				logging.Logger.Errorf("Event ID: JWT_AUTH_STORE_UNAVAILABLE, Description: Could not resolve user %s: %v", userID.Hex(), err)
				utils.RespondError(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
				return
			}
			logging.Logger.Warnf("Event ID: JWT_AUTH_UNKNOWN_USER, Description: Token for user %s could not be resolved: %v", userID.Hex(), err)
			utils.RespondError(w, http.StatusUnauthorized, "Invalid access token")
			return
		}

		identity := models.Identity{ID: user.ID, Role: user.Role, Name: user.Name, Email: user.Email}
		logging.Logger.Debugf("Event ID: JWT_AUTH_SUCCESS, Description: Authenticated user %s for %s %s", identity.ID.Hex(), r.Method, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// extractToken reads the bearer token, falling back to the accessToken cookie.
func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); token != "" {
			return token
		}
	}
	if c, err := r.Cookie(accessTokenCookie); err == nil {
		return c.Value
	}
	return ""
}

func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(models.Identity)
	return identity, ok
}
