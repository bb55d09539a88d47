package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"soulconnect/web/db"
	"soulconnect/web/middleware"
	"soulconnect/web/visibility"

	"github.com/gin-gonic/gin"
)

// CreateBiodata stores a new profile for the authenticated caller. The
// sequential biodata id comes from the allocator, never from the client.
func (ct *Controller) CreateBiodata(c *gin.Context) {
	var body db.Biodata
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}
	if body.BiodataType != "Male" && body.BiodataType != "Female" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid biodata type"})
		return
	}

	id, err := ct.Store.NextBiodataID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate biodata id"})
		return
	}

	body.ID = 0
	body.BiodataID = id
	body.OwnerEmail = middleware.CallerEmail(c)
	body.BiodataStatus = db.BiodataNormal

	if err := ct.Store.DB.Create(&body).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create biodata"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insertedId": body.ID, "biodataId": id})
}

func (ct *Controller) respondProjected(c *gin.Context, biodatas []db.Biodata) {
	caller, approved := ct.caller(c)
	c.JSON(http.StatusOK, visibility.ViewAll(biodatas, caller, approved))
}

// ListBiodatas returns every profile, projected per caller.
func (ct *Controller) ListBiodatas(c *gin.Context) {
	var biodatas []db.Biodata
	if err := ct.Store.DB.Find(&biodatas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch biodatas"})
		return
	}
	ct.respondProjected(c, biodatas)
}

// GetBiodataByID returns a single profile by its sequential id.
func (ct *Controller) GetBiodataByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid biodata id"})
		return
	}

	var biodata db.Biodata
	if err := ct.Store.DB.Where("biodata_id = ?", id).First(&biodata).Error; err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Biodata not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch biodata"})
		}
		return
	}

	caller, approved := ct.caller(c)
	if caller != nil {
		caller.Entitled = approved[id]
	}
	c.JSON(http.StatusOK, visibility.View(biodata, caller))
}

// SimilarBiodatas lists profiles by gender, projected per caller.
func (ct *Controller) SimilarBiodatas(c *gin.Context) {
	gender := c.Param("gender")
	if gender != "" {
		gender = strings.ToUpper(gender[:1]) + strings.ToLower(gender[1:])
	}

	var biodatas []db.Biodata
	if err := ct.Store.DB.Where("biodata_type = ?", gender).Find(&biodatas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch biodatas"})
		return
	}
	ct.respondProjected(c, biodatas)
}

// PremiumBiodatas lists profiles with premium status, projected per
// caller; the premium badge does not expose contact details by itself.
func (ct *Controller) PremiumBiodatas(c *gin.Context) {
	var biodatas []db.Biodata
	if err := ct.Store.DB.Where("biodata_status = ?", db.BiodataPremium).Find(&biodatas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch biodatas"})
		return
	}
	ct.respondProjected(c, biodatas)
}

// OwnerBiodatas returns the caller's own profiles in full. The email in
// the path must match the session.
func (ct *Controller) OwnerBiodatas(c *gin.Context) {
	email := c.Param("email")
	if middleware.CallerEmail(c) != email {
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return
	}

	var biodatas []db.Biodata
	if err := ct.Store.DB.Where("owner_email = ?", email).Find(&biodatas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch biodatas"})
		return
	}
	c.JSON(http.StatusOK, biodatas)
}

// UpdateBiodata edits descriptive and contact fields of an owned
// profile. The biodata id, owner and premium status are not editable
// here.
func (ct *Controller) UpdateBiodata(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("biodataId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid biodata id"})
		return
	}

	var biodata db.Biodata
	if err := ct.Store.DB.Where("biodata_id = ?", id).First(&biodata).Error; err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Biodata not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch biodata"})
		}
		return
	}

	user, _ := middleware.CallerUser(c)
	if middleware.CallerEmail(c) != biodata.OwnerEmail && user.Role != db.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return
	}

	var updates db.Biodata
	if err := c.BindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}
	updates.Model = biodata.Model
	updates.ID = biodata.ID
	updates.BiodataID = 0
	updates.OwnerEmail = ""
	updates.BiodataStatus = ""

	if err := ct.Store.DB.Model(&biodata).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update biodata"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Biodata updated successfully"})
}

// BiodataCounts powers the public dashboard numbers.
func (ct *Controller) BiodataCounts(c *gin.Context) {
	var total, male, female, premium, marriages int64

	gdb := ct.Store.DB
	if err := gdb.Model(&db.Biodata{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching biodata counts"})
		return
	}
	gdb.Model(&db.Biodata{}).Where("biodata_type = ?", "Male").Count(&male)
	gdb.Model(&db.Biodata{}).Where("biodata_type = ?", "Female").Count(&female)
	gdb.Model(&db.Biodata{}).Where("biodata_status = ?", db.BiodataPremium).Count(&premium)
	gdb.Model(&db.SuccessStory{}).Count(&marriages)

	c.JSON(http.StatusOK, gin.H{
		"totalCount":         total,
		"maleCount":          male,
		"femaleCount":        female,
		"premiumCount":       premium,
		"totalMarriageCount": marriages,
	})
}

// GetCounter exposes the allocator state.
func (ct *Controller) GetCounter(c *gin.Context) {
	counter, err := ct.Store.Counter()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch counter"})
		return
	}
	c.JSON(http.StatusOK, counter)
}

// SetCounter seeds the allocator state.
func (ct *Controller) SetCounter(c *gin.Context) {
	var body struct {
		LastIssued int `json:"lastIssued"`
	}
	if err := c.BindJSON(&body); err != nil || body.LastIssued < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	counter, err := ct.Store.SetCounter(body.LastIssued)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update counter"})
		return
	}
	c.JSON(http.StatusOK, counter)
}
