// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/domain/user"
	"github.com/your-org/delivery-backend/internal/pkg/auth"
)

// Context keys set by the auth middleware.
const (
	ctxKeyUserID  = "user_id"
	ctxKeyRole    = "user_role"
	ctxKeyStoreID = "user_store_id"
	ctxKeyClaims  = "token_claims"
)

// AuthMiddleware creates JWT authentication middleware. Requests without a
// valid access token are rejected.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		claims, ok := validateRequest(c, jwtManager)
		if !ok {
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the identity when a token is present but
// lets anonymous requests through as guests. Cart endpoints use this: a
// guest browses and fills a cart before ever logging in.
func OptionalAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.Next()
			return
		}

		if claims, err := jwtManager.ValidateAccessToken(tokenString); err == nil {
			setIdentity(c, claims)
		}

		c.Next()
	}
}

// RequireManager admits only roles allowed into the merchant back office.
func RequireManager() gin.HandlerFunc {
	return requireRole(func(r user.Role) bool { return r.CanManageStore() })
}

// RequireStaff admits roles that work the order and kitchen queues.
func RequireStaff() gin.HandlerFunc {
	return requireRole(func(r user.Role) bool { return r.CanWorkOrders() })
}

// RequireAdmin admits only platform administrators.
func RequireAdmin() gin.HandlerFunc {
	return requireRole(func(r user.Role) bool { return r == user.RoleAdmin })
}

func requireRole(allowed func(user.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get(ctxKeyRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		role, ok := roleValue.(user.Role)
		if !ok || !allowed(role) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func validateRequest(c *gin.Context, jwtManager *auth.JWTManager) (*auth.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authorization header required",
		})
		c.Abort()
		return nil, false
	}

	tokenString := auth.ExtractTokenFromHeader(authHeader)
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid authorization header format",
		})
		c.Abort()
		return nil, false
	}

	claims, err := jwtManager.ValidateAccessToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or expired token",
		})
		c.Abort()
		return nil, false
	}

	return claims, true
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set(ctxKeyUserID, claims.UserID)
	c.Set(ctxKeyRole, user.Role(claims.Role))
	if claims.StoreID != nil {
		c.Set(ctxKeyStoreID, *claims.StoreID)
	}
	c.Set(ctxKeyClaims, claims)
}

// GetUserIDFromContext returns the authenticated user's ID, if any.
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ctxKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// GetIdentityFromContext returns the cart persistence identity for the
// request: the user ID as a string, or "" for guests.
func GetIdentityFromContext(c *gin.Context) string {
	id, ok := GetUserIDFromContext(c)
	if !ok {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}

// GetRoleFromContext returns the authenticated user's role, if any.
func GetRoleFromContext(c *gin.Context) (user.Role, bool) {
	value, exists := c.Get(ctxKeyRole)
	if !exists {
		return "", false
	}
	role, ok := value.(user.Role)
	return role, ok
}

// GetStoreIDFromContext returns the store the merchant/staff user belongs
// to, if any.
func GetStoreIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ctxKeyStoreID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
