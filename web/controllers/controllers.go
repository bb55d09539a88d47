package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"soulconnect/web/db"
	"soulconnect/web/middleware"
	"soulconnect/web/visibility"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = time.Hour

// Controller bundles the handlers around the injected store capability.
type Controller struct {
	Store *db.Store
}

func New(store *db.Store) *Controller {
	return &Controller{Store: store}
}

func production() bool {
	return os.Getenv("GIN_MODE") == "release"
}

func signToken(email, username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":    email,
		"username": username,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("SECRET")))
}

func setTokenCookie(c *gin.Context, tokenString string) {
	// cross-site cookie in production (frontend on another origin),
	// strict in development
	if production() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(middleware.TokenCookie, tokenString, int(tokenTTL.Seconds()), "/", "", production(), true)
}

// IssueToken signs a 1-hour session token for the posted identity claims
// and sets it as an HTTP-only cookie.
func (ct *Controller) IssueToken(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Username string `json:"username"`
	}

	if err := c.BindJSON(&body); err != nil || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	tokenString, err := signToken(body.Email, body.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	setTokenCookie(c, tokenString)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout clears the session cookie. The token itself stays valid until
// its natural expiry; only the client-held copy is dropped.
func (ct *Controller) Logout(c *gin.Context) {
	if production() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", production(), true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Login verifies a locally registered password and issues the same
// session cookie as IssueToken.
func (ct *Controller) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	var user db.User
	if err := ct.Store.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	tokenString, err := signToken(user.Email, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	setTokenCookie(c, tokenString)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// caller builds the visibility caller for the current request plus, for
// premium callers, the set of biodata ids they hold approved access to.
func (ct *Controller) caller(c *gin.Context) (*visibility.Caller, map[int]bool) {
	email := middleware.CallerEmail(c)
	if email == "" {
		return nil, nil
	}

	caller := &visibility.Caller{Email: email}
	if user, ok := middleware.CallerUser(c); ok {
		caller.Role = user.Role
	}

	var approved map[int]bool
	if caller.Role == db.RolePremium {
		var err error
		approved, err = ct.Store.ApprovedBiodataIDs(email)
		if err != nil {
			// fail closed: the caller just sees redacted records
			log.Println("Failed to load approved biodata ids:", err)
			approved = nil
		}
	}
	return caller, approved
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
