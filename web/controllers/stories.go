package controllers

import (
	"log"
	"net/http"

	"soulconnect/web/db"

	"github.com/gin-gonic/gin"
)

func (ct *Controller) AddSuccessStory(c *gin.Context) {
	var body db.SuccessStory
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	body.ID = 0
	if err := ct.Store.DB.Create(&body).Error; err != nil {
		log.Println("Error adding success story:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Success story added successfully",
		"insertedId": body.ID,
	})
}

// ListSuccessStories returns all stories, oldest marriage first.
func (ct *Controller) ListSuccessStories(c *gin.Context) {
	var stories []db.SuccessStory
	if err := ct.Store.DB.Order("marriage_date asc").Find(&stories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch success stories"})
		return
	}
	c.JSON(http.StatusOK, stories)
}
