package controllers

import (
	"net/http"
	"strconv"

	"soulconnect/web/db"
	"soulconnect/web/middleware"

	"github.com/gin-gonic/gin"
)

func (ct *Controller) AddFavorite(c *gin.Context) {
	var body db.Favorite
	if err := c.BindJSON(&body); err != nil || body.BiodataID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	body.ID = 0
	body.AddedBy = middleware.CallerEmail(c)

	if err := ct.Store.DB.Create(&body).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insertedId": body.ID})
}

func (ct *Controller) FavoritesByEmail(c *gin.Context) {
	email := c.Param("email")
	if middleware.CallerEmail(c) != email {
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return
	}

	var favorites []db.Favorite
	if err := ct.Store.DB.Where("added_by = ?", email).Find(&favorites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (ct *Controller) DeleteFavorite(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid favorite id"})
		return
	}

	var favorite db.Favorite
	if err := ct.Store.DB.First(&favorite, id).Error; err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Favorite not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorite"})
		}
		return
	}

	if middleware.CallerEmail(c) != favorite.AddedBy {
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return
	}

	if err := ct.Store.DB.Delete(&favorite).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": 1})
}
