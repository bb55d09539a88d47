package db

import (
	"gorm.io/gorm"
)

const (
	RoleMember  = "member"
	RolePremium = "premium"
	RoleAdmin   = "admin"

	StatusPending  = "pending"
	StatusApproved = "approved"

	BiodataNormal  = "normal"
	BiodataPremium = "premium"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;size:191" json:"email"`
	Username     string `gorm:"size:64" json:"username"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"size:16;default:member" json:"role"`
}

type Biodata struct {
	gorm.Model
	BiodataID     int    `gorm:"uniqueIndex" json:"biodataId"`
	OwnerEmail    string `gorm:"index;size:191" json:"ownerEmail"`
	BiodataType   string `gorm:"size:8" json:"biodataType"`                   // Male / Female
	BiodataStatus string `gorm:"size:16;default:normal" json:"biodataStatus"` // normal / premium

	Name                  string `json:"name"`
	ProfileImage          string `json:"profileImage"`
	DateOfBirth           string `json:"dateOfBirth"`
	Height                string `json:"height"`
	Weight                string `json:"weight"`
	Age                   int    `json:"age"`
	Occupation            string `json:"occupation"`
	Race                  string `json:"race"`
	FathersName           string `json:"fathersName"`
	MothersName           string `json:"mothersName"`
	PermanentDivision     string `json:"permanentDivision"`
	PresentDivision       string `json:"presentDivision"`
	ExpectedPartnerAge    string `json:"expectedPartnerAge"`
	ExpectedPartnerHeight string `json:"expectedPartnerHeight"`
	ExpectedPartnerWeight string `json:"expectedPartnerWeight"`

	// contact fields, only visible to the owner and premium-approved callers
	ContactEmail string `json:"contactEmail"`
	MobileNumber string `json:"mobileNumber"`
}

// BiodataIDCounter is the singleton source of sequential biodata ids.
// Only NextBiodataID writes it, inside a row-locked transaction.
type BiodataIDCounter struct {
	Name       string `gorm:"primaryKey;size:32" json:"name"`
	LastIssued int    `json:"lastIssued"`
}

type PremiumRequest struct {
	gorm.Model
	BiodataID      int    `gorm:"index" json:"biodataId"`
	RequesterEmail string `gorm:"index;size:191" json:"requesterEmail"`
	Name           string `json:"name"`
	Status         string `gorm:"size:16;default:pending" json:"status"` // pending / approved
}

type Payment struct {
	gorm.Model
	TransactionID string `gorm:"uniqueIndex;size:64" json:"transactionId"`
	PayerEmail    string `gorm:"index;size:191" json:"payerEmail"`
	BiodataID     int    `gorm:"index" json:"biodataId"`
	Amount        int    `json:"amount"`                                // in cents
	Status        string `gorm:"size:16;default:pending" json:"status"` // pending / approved
}

// ConfirmedPayment is an append-only ledger row. Rows are never updated
// or deleted; total revenue is the sum over PaidAmount.
type ConfirmedPayment struct {
	gorm.Model
	TransactionID string `gorm:"index;size:64" json:"transactionId"`
	PaidAmount    int    `json:"paidAmount"`
	PayerEmail    string `json:"payerEmail"`
	BiodataID     int    `json:"biodataId"`
}

type Favorite struct {
	gorm.Model
	AddedBy           string `gorm:"index;size:191" json:"addedBy"`
	BiodataID         int    `json:"biodataId"`
	Name              string `json:"name"`
	PermanentDivision string `json:"permanentDivision"`
	Occupation        string `json:"occupation"`
}

type SuccessStory struct {
	gorm.Model
	SelfBiodataID    int    `json:"selfBiodataId"`
	PartnerBiodataID int    `json:"partnerBiodataId"`
	CoupleImage      string `json:"coupleImage"`
	MarriageDate     string `gorm:"index" json:"marriageDate"`
	SuccessStory     string `json:"successStory"`
}
