package middleware

import (
	"errors"
	"log"
	"net/http"
	"os"

	"soulconnect/utils"
	"soulconnect/web/db"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// TokenCookie is the session cookie name.
const TokenCookie = "token"

func parseToken(c *gin.Context) (jwt.MapClaims, error) {
	tokenString, err := c.Cookie(TokenCookie)
	if err != nil || tokenString == "" {
		return nil, errors.New("missing token")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	if email, _ := claims["email"].(string); email == "" {
		return nil, errors.New("token has no email")
	}
	return claims, nil
}

// attachIdentity records the caller's email and, for registered users,
// the user row. Token holders without a user row get member-level
// access; a store failure is reported so callers can abort instead of
// silently degrading an admin to member.
func attachIdentity(c *gin.Context, store *db.Store, claims jwt.MapClaims) error {
	email, _ := claims["email"].(string)
	c.Set("email", email)

	var user db.User
	err := store.DB.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		c.Set("user", user)
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return err
	}
	return nil
}

func abortStoreError(c *gin.Context, err error) {
	log.Println("Failed to load session user:", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
}

// RequireAuth rejects requests without a valid session cookie and puts
// the caller's email (and user row, when registered) into the context.
func RequireAuth(store *db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorised Access"})
			return
		}
		if err := attachIdentity(c, store, claims); err != nil {
			abortStoreError(c, err)
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid cookie is
// present but never rejects anonymous requests. Public listing routes
// use it so the per-record projection can still recognize owners and
// premium callers.
func OptionalAuth(store *db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := parseToken(c); err == nil {
			if err := attachIdentity(c, store, claims); err != nil {
				abortStoreError(c, err)
				return
			}
		}
		c.Next()
	}
}

// AdminAuth allows admins through, either by role on the session user or
// by the ADMIN_KEY header. The key path bootstraps the first admin and
// serves operator scripts.
func AdminAuth(store *db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := utils.AdminKey(); key != "" && c.GetHeader("X-Admin-Key") == key {
			c.Next()
			return
		}

		claims, err := parseToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorised Access"})
			return
		}
		if err := attachIdentity(c, store, claims); err != nil {
			abortStoreError(c, err)
			return
		}

		v, ok := c.Get("user")
		if !ok || v.(db.User).Role != db.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}
		c.Next()
	}
}

// CallerEmail returns the authenticated email, or "" for anonymous.
func CallerEmail(c *gin.Context) string {
	email, _ := c.Get("email")
	s, _ := email.(string)
	return s
}

// CallerUser returns the registered user attached by the auth
// middleware, if any.
func CallerUser(c *gin.Context) (db.User, bool) {
	v, ok := c.Get("user")
	if !ok {
		return db.User{}, false
	}
	user, ok := v.(db.User)
	return user, ok
}
