package controllers

import (
	"soulconnect/web/db"
	"soulconnect/web/middleware"

	"github.com/gin-gonic/gin"
)

// Register wires every route onto r. Public biodata listings go through
// OptionalAuth so the projection can recognize owners and premium
// callers; admin routes require the admin role or the ADMIN_KEY header.
func Register(r *gin.Engine, store *db.Store) {
	ct := New(store)

	requireAuth := middleware.RequireAuth(store)
	optionalAuth := middleware.OptionalAuth(store)
	adminAuth := middleware.AdminAuth(store)

	// session
	r.POST("/jwt", ct.IssueToken)
	r.POST("/login", ct.Login)
	r.POST("/logout", ct.Logout)

	// users
	r.POST("/users", ct.CreateUser)
	r.GET("/users", adminAuth, ct.ListUsers)
	r.GET("/users/:email", requireAuth, ct.GetUserByEmail)
	r.GET("/users/username/:username", requireAuth, ct.GetUserByUsername)
	r.PATCH("/users/make-premium/:id", adminAuth, ct.MakePremium)
	r.PATCH("/users/make-admin/:id", adminAuth, ct.MakeAdmin)

	// biodata
	r.GET("/biodatas", optionalAuth, ct.ListBiodatas)
	r.POST("/biodatas", requireAuth, ct.CreateBiodata)
	r.GET("/biodatas/:email", requireAuth, ct.OwnerBiodatas)
	r.GET("/biodatas/biodata/:id", optionalAuth, ct.GetBiodataByID)
	r.GET("/biodatas/similar/:gender", optionalAuth, ct.SimilarBiodatas)
	r.GET("/biodatas/get-premium/biodata", optionalAuth, ct.PremiumBiodatas)
	r.PATCH("/biodatas/biodata/:biodataId", requireAuth, ct.UpdateBiodata)
	r.PUT("/data/bio/id/:biodataId", requireAuth, ct.UpdateBiodata)
	r.GET("/biodata/counts", ct.BiodataCounts)

	// allocator state
	r.GET("/biodataIdCounters", ct.GetCounter)
	r.PATCH("/biodataIdCounters", adminAuth, ct.SetCounter)

	// premium workflow
	r.POST("/premium-biodata-requests", requireAuth, ct.CreatePremiumRequest)
	r.GET("/premium-biodata-requests", adminAuth, ct.ListPremiumRequests)
	r.PATCH("/premium-biodata-requests/biodata/:biodataId", adminAuth, ct.ApprovePremiumRequest)

	// payments and ledger
	r.POST("/payments", requireAuth, ct.CreatePayment)
	r.GET("/payments", adminAuth, ct.ListPayments)
	r.DELETE("/payments/:id", requireAuth, ct.DeletePayment)
	r.PATCH("/payments/confirm/:id", adminAuth, ct.ConfirmPayment)
	r.GET("/requests/:email", requireAuth, ct.PaymentsByEmail)
	r.POST("/approved/payment/details", adminAuth, ct.AddConfirmedPayment)
	r.GET("/approved/payment/details", adminAuth, ct.GetTotalRevenue)
	r.POST("/create-payment-intent", requireAuth, ct.CreatePaymentIntent)

	// favorites
	r.POST("/favouriteBiodata", requireAuth, ct.AddFavorite)
	r.GET("/favouriteBiodata/:email", requireAuth, ct.FavoritesByEmail)
	r.DELETE("/favouriteBiodata/:id", requireAuth, ct.DeleteFavorite)

	// success stories
	r.POST("/success-stories", requireAuth, ct.AddSuccessStory)
	r.GET("/success-stories", ct.ListSuccessStories)

	// admin dashboard
	r.GET("/admin/stats", adminAuth, ct.SystemStats)
}
