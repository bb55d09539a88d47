// Package visibility decides which fields of a biodata a caller may see.
// Every biodata-returning route goes through View, so contact details
// can never leak into an anonymous bulk listing.
package visibility

import (
	"soulconnect/web/db"
)

// Caller identifies who is asking. A nil *Caller is an anonymous
// request. Entitled marks callers holding an approved premium request or
// payment for the specific biodata being viewed.
type Caller struct {
	Email    string
	Role     string
	Entitled bool
}

// Projected is the caller-specific view of a biodata. Contact fields are
// only populated for the owner and for entitled premium callers; for
// everyone else they are omitted from the JSON entirely.
type Projected struct {
	BiodataID     int    `json:"biodataId"`
	OwnerEmail    string `json:"ownerEmail"`
	BiodataType   string `json:"biodataType"`
	BiodataStatus string `json:"biodataStatus"`

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

	ContactEmail string `json:"contactEmail,omitempty"`
	MobileNumber string `json:"mobileNumber,omitempty"`
}

// CanSeeContact reports whether caller may see b's contact fields:
// the owner always, otherwise only premium callers entitled to this
// specific biodata.
func CanSeeContact(b db.Biodata, caller *Caller) bool {
	if caller == nil {
		return false
	}
	if caller.Email != "" && caller.Email == b.OwnerEmail {
		return true
	}
	return caller.Role == db.RolePremium && caller.Entitled
}

// View returns the projection of b for caller.
func View(b db.Biodata, caller *Caller) Projected {
	p := Projected{
		BiodataID:     b.BiodataID,
		OwnerEmail:    b.OwnerEmail,
		BiodataType:   b.BiodataType,
		BiodataStatus: b.BiodataStatus,

		Name:                  b.Name,
		ProfileImage:          b.ProfileImage,
		DateOfBirth:           b.DateOfBirth,
		Height:                b.Height,
		Weight:                b.Weight,
		Age:                   b.Age,
		Occupation:            b.Occupation,
		Race:                  b.Race,
		FathersName:           b.FathersName,
		MothersName:           b.MothersName,
		PermanentDivision:     b.PermanentDivision,
		PresentDivision:       b.PresentDivision,
		ExpectedPartnerAge:    b.ExpectedPartnerAge,
		ExpectedPartnerHeight: b.ExpectedPartnerHeight,
		ExpectedPartnerWeight: b.ExpectedPartnerWeight,
	}
	if CanSeeContact(b, caller) {
		p.ContactEmail = b.ContactEmail
		p.MobileNumber = b.MobileNumber
	}
	return p
}

// ViewAll projects a whole listing. approved is the caller's set of
// entitled biodata ids, usually from Store.ApprovedBiodataIDs.
func ViewAll(biodatas []db.Biodata, caller *Caller, approved map[int]bool) []Projected {
	out := make([]Projected, 0, len(biodatas))
	for _, b := range biodatas {
		c := caller
		if c != nil {
			perRecord := *c
			perRecord.Entitled = approved[b.BiodataID]
			c = &perRecord
		}
		out = append(out, View(b, c))
	}
	return out
}
