package controllers

import (
	"log"
	"net/http"
	"os"

	"soulconnect/utils"
	"soulconnect/web/db"
	"soulconnect/web/middleware"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"gorm.io/gorm"
)

// CreatePayment records a pending payment for contact-detail access.
func (ct *Controller) CreatePayment(c *gin.Context) {
	var body struct {
		BiodataID int `json:"biodataId"`
		Amount    int `json:"amount"` // in cents
	}
	if err := c.BindJSON(&body); err != nil || body.BiodataID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}
	if body.Amount <= 0 {
		body.Amount = utils.ContactFeeCents()
	}

	payer := middleware.CallerEmail(c)

	var payment db.Payment
	err := ct.Store.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		payment, err = ensurePendingPayment(tx, payer, body.BiodataID, body.Amount)
		if err != nil {
			return err
		}
		if payment.Status == db.StatusPending && payment.Amount != body.Amount {
			payment.Amount = body.Amount
			return tx.Save(&payment).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insertedId": payment.ID, "transactionId": payment.TransactionID})
}

func (ct *Controller) ListPayments(c *gin.Context) {
	var payments []db.Payment
	if err := ct.Store.DB.Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// PaymentsByEmail lists the caller's own contact requests.
func (ct *Controller) PaymentsByEmail(c *gin.Context) {
	emailParam := c.Param("email")
	if middleware.CallerEmail(c) != emailParam {
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return
	}

	var payments []db.Payment
	if err := ct.Store.DB.Where("payer_email = ?", emailParam).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// DeletePayment removes a payment record by transaction id. Only the
// payer or an admin may delete, and only pending payments; approved ones
// are part of the ledger trail.
func (ct *Controller) DeletePayment(c *gin.Context) {
	transactionID := c.Param("id")

	var payment db.Payment
	if err := ct.Store.DB.Where("transaction_id = ?", transactionID).First(&payment).Error; err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment"})
		}
		return
	}

	user, _ := middleware.CallerUser(c)
	if middleware.CallerEmail(c) != payment.PayerEmail && user.Role != db.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return
	}
	if payment.Status == db.StatusApproved {
		c.JSON(http.StatusForbidden, gin.H{"message": "approved payments cannot be deleted"})
		return
	}

	if err := ct.Store.DB.Delete(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": 1})
}

// ConfirmPayment marks a payment approved after the external charge
// succeeded. Confirming twice is a no-op.
func (ct *Controller) ConfirmPayment(c *gin.Context) {
	transactionID := c.Param("id")

	var payment db.Payment
	if err := ct.Store.DB.Where("transaction_id = ?", transactionID).First(&payment).Error; err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		}
		return
	}

	if payment.Status != db.StatusApproved {
		if err := ct.Store.DB.Model(&payment).Update("status", db.StatusApproved).Error; err != nil {
			log.Println("Error updating payment status:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": 1})
}

// AddConfirmedPayment appends a ledger entry. Entries carrying a
// transaction id are deduplicated on it, so re-posting the same
// confirmation leaves a single row.
func (ct *Controller) AddConfirmedPayment(c *gin.Context) {
	var body struct {
		TransactionID string `json:"transactionId"`
		PaidAmount    int    `json:"paidAmount"`
		PayerEmail    string `json:"payerEmail"`
		BiodataID     int    `json:"biodataId"`
	}
	if err := c.BindJSON(&body); err != nil || body.PaidAmount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	entry := db.ConfirmedPayment{
		TransactionID: body.TransactionID,
		PaidAmount:    body.PaidAmount,
		PayerEmail:    body.PayerEmail,
		BiodataID:     body.BiodataID,
	}

	var err error
	if body.TransactionID != "" {
		err = ct.Store.DB.Where(db.ConfirmedPayment{TransactionID: body.TransactionID}).
			FirstOrCreate(&entry).Error
	} else {
		err = ct.Store.DB.Create(&entry).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insertedId": entry.ID})
}

// GetTotalRevenue sums the ledger; 0 when empty.
func (ct *Controller) GetTotalRevenue(c *gin.Context) {
	total, err := ct.Store.TotalRevenue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error calculating total revenue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalRevenue": total})
}

// CreatePaymentIntent asks Stripe for a charge intent and returns its
// client secret, or a QR code of it with ?qr=1.
func (ct *Controller) CreatePaymentIntent(c *gin.Context) {
	var body struct {
		Price float64 `json:"price"`
	}
	if err := c.BindJSON(&body); err != nil || body.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	stripe.Key = os.Getenv("SK_STRIPE")
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(body.Price * 100)),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		log.Println("Error creating payment intent:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}

	if c.Query("qr") == "1" {
		png, err := qrcode.Encode(pi.ClientSecret, qrcode.Medium, 256)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
			return
		}
		c.Data(http.StatusOK, "image/png", png)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": pi.ClientSecret})
}
