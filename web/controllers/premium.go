package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"soulconnect/utils"
	"soulconnect/web/db"
	"soulconnect/web/email"
	"soulconnect/web/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ensurePendingPayment creates the pending payment backing a contact
// request if one does not exist yet for this payer and biodata.
func ensurePendingPayment(tx *gorm.DB, payerEmail string, biodataID, amount int) (db.Payment, error) {
	payment := db.Payment{
		TransactionID: uuid.New().String(),
		PayerEmail:    payerEmail,
		BiodataID:     biodataID,
		Amount:        amount,
		Status:        db.StatusPending,
	}
	err := tx.Where(db.Payment{PayerEmail: payerEmail, BiodataID: biodataID}).
		FirstOrCreate(&payment).Error
	return payment, err
}

// CreatePremiumRequest opens the premium workflow for a biodata: a
// pending request plus its pending payment, created together.
func (ct *Controller) CreatePremiumRequest(c *gin.Context) {
	var body struct {
		BiodataID int    `json:"biodataId"`
		Name      string `json:"name"`
	}
	if err := c.BindJSON(&body); err != nil || body.BiodataID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	requester := middleware.CallerEmail(c)

	var request db.PremiumRequest
	err := ct.Store.DB.Transaction(func(tx *gorm.DB) error {
		var biodata db.Biodata
		if err := tx.Where("biodata_id = ?", body.BiodataID).First(&biodata).Error; err != nil {
			return err
		}

		request = db.PremiumRequest{
			BiodataID:      body.BiodataID,
			RequesterEmail: requester,
			Name:           body.Name,
			Status:         db.StatusPending,
		}
		if err := tx.Where(db.PremiumRequest{BiodataID: body.BiodataID, RequesterEmail: requester}).
			FirstOrCreate(&request).Error; err != nil {
			return err
		}

		_, err := ensurePendingPayment(tx, requester, body.BiodataID, utils.ContactFeeCents())
		return err
	})
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Biodata not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create premium request"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"insertedId": request.ID, "status": request.Status})
}

func (ct *Controller) ListPremiumRequests(c *gin.Context) {
	var requests []db.PremiumRequest
	if err := ct.Store.DB.Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch premium requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

// ApprovePremiumRequest runs the admin approval transaction. Approving
// an already-approved request is a no-op success.
func (ct *Controller) ApprovePremiumRequest(c *gin.Context) {
	biodataID, err := strconv.Atoi(c.Param("biodataId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid biodata id"})
		return
	}

	alreadyApproved, err := ct.Store.ApprovePremiumRequest(biodataID)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Premium request not found"})
		} else if errors.Is(err, db.ErrPaymentMissing) {
			c.JSON(http.StatusConflict, gin.H{"message": "Premium request has no backing payment"})
		} else {
			log.Println("Error approving premium request:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		}
		return
	}

	if !alreadyApproved {
		var request db.PremiumRequest
		if err := ct.Store.DB.Where("biodata_id = ?", biodataID).First(&request).Error; err == nil {
			go func(to string, id int) {
				if err := email.SendPremiumApprovedEmail(to, id); err != nil {
					log.Println("Failed to send approval email:", err)
				}
			}(request.RequesterEmail, biodataID)
		}
	}

	c.JSON(http.StatusOK, gin.H{"modifiedCount": 1, "alreadyApproved": alreadyApproved})
}
