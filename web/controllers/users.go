package controllers

import (
	"net/http"
	"strconv"

	"soulconnect/web/db"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser registers a user on first sign-in. Re-posting an existing
// email returns the stored record unchanged. The password is optional;
// federated sign-ins only carry email and username.
func (ct *Controller) CreateUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.BindJSON(&body); err != nil || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	user := db.User{Email: body.Email, Username: body.Username, Role: db.RoleMember}
	if body.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := ct.Store.DB.Where(db.User{Email: body.Email}).FirstOrCreate(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insertedId": user.ID, "user": user})
}

func (ct *Controller) ListUsers(c *gin.Context) {
	var users []db.User
	if err := ct.Store.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ct *Controller) GetUserByEmail(c *gin.Context) {
	var users []db.User
	if err := ct.Store.DB.Where("email = ?", c.Param("email")).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ct *Controller) GetUserByUsername(c *gin.Context) {
	var users []db.User
	if err := ct.Store.DB.Where("username = ?", c.Param("username")).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ct *Controller) setRole(c *gin.Context, role string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	result := ct.Store.DB.Model(&db.User{}).Where("id = ?", id).Update("role", role)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if result.RowsAffected == 0 {
		var n int64
		ct.Store.DB.Model(&db.User{}).Where("id = ?", id).Count(&n)
		if n == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		// role was already set; treat as success
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": result.RowsAffected})
}

// MakePremium force-upgrades a user's role. Normally the role upgrade
// happens through premium request approval; this is the direct admin
// path.
func (ct *Controller) MakePremium(c *gin.Context) {
	ct.setRole(c, db.RolePremium)
}

func (ct *Controller) MakeAdmin(c *gin.Context) {
	ct.setRole(c, db.RoleAdmin)
}
