package db

import (
	"errors"

	"gorm.io/gorm"
)

// ErrPaymentMissing reports an approval attempt for a request whose
// backing payment no longer exists, e.g. because the payer deleted it
// while the request was pending.
var ErrPaymentMissing = errors.New("premium request has no backing payment")

// ApprovePremiumRequest applies the four approval effects as one
// transaction: the request flips to approved, the matching payment flips
// to approved, a ledger row is appended, and the requester + biodata are
// upgraded to premium. Rows are locked in a fixed order (request,
// payment) so concurrent approvals of the same biodata serialize.
// A request without a backing payment cannot be approved; every approved
// request is covered by an approved payment and a ledger entry.
//
// Re-running on an already-approved request is a no-op success and the
// ledger gains no second row; alreadyApproved reports that case. A run
// interrupted mid-sequence rolls back and can simply be re-issued.
func (s *Store) ApprovePremiumRequest(biodataID int) (alreadyApproved bool, err error) {
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var req PremiumRequest
		if err := lockForUpdate(tx).
			Where("biodata_id = ?", biodataID).
			First(&req).Error; err != nil {
			return err
		}

		alreadyApproved = req.Status == StatusApproved
		if !alreadyApproved {
			req.Status = StatusApproved
			if err := tx.Save(&req).Error; err != nil {
				return err
			}
		}

		var payment Payment
		if err := lockForUpdate(tx).
			Where("biodata_id = ? AND payer_email = ?", biodataID, req.RequesterEmail).
			First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentMissing
			}
			return err
		}

		if payment.Status != StatusApproved {
			payment.Status = StatusApproved
			if err := tx.Save(&payment).Error; err != nil {
				return err
			}
		}
		entry := ConfirmedPayment{
			TransactionID: payment.TransactionID,
			PaidAmount:    payment.Amount,
			PayerEmail:    payment.PayerEmail,
			BiodataID:     payment.BiodataID,
		}
		if err := tx.Where(ConfirmedPayment{TransactionID: payment.TransactionID}).
			FirstOrCreate(&entry).Error; err != nil {
			return err
		}

		if err := tx.Model(&User{}).
			Where("email = ? AND role = ?", req.RequesterEmail, RoleMember).
			Update("role", RolePremium).Error; err != nil {
			return err
		}
		if err := tx.Model(&Biodata{}).
			Where("biodata_id = ?", biodataID).
			Update("biodata_status", BiodataPremium).Error; err != nil {
			return err
		}

		return nil
	})
	return alreadyApproved, err
}

// HasApprovedAccess reports whether email holds an approved premium
// request or an approved payment for the given biodata id.
func (s *Store) HasApprovedAccess(email string, biodataID int) (bool, error) {
	var n int64
	if err := s.DB.Model(&PremiumRequest{}).
		Where("biodata_id = ? AND requester_email = ? AND status = ?", biodataID, email, StatusApproved).
		Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	if err := s.DB.Model(&Payment{}).
		Where("biodata_id = ? AND payer_email = ? AND status = ?", biodataID, email, StatusApproved).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ApprovedBiodataIDs returns the set of biodata ids email holds approved
// access to. Listing endpoints use it to avoid a lookup per record.
func (s *Store) ApprovedBiodataIDs(email string) (map[int]bool, error) {
	ids := make(map[int]bool)

	var fromRequests []int
	if err := s.DB.Model(&PremiumRequest{}).
		Where("requester_email = ? AND status = ?", email, StatusApproved).
		Pluck("biodata_id", &fromRequests).Error; err != nil {
		return nil, err
	}
	var fromPayments []int
	if err := s.DB.Model(&Payment{}).
		Where("payer_email = ? AND status = ?", email, StatusApproved).
		Pluck("biodata_id", &fromPayments).Error; err != nil {
		return nil, err
	}

	for _, id := range fromRequests {
		ids[id] = true
	}
	for _, id := range fromPayments {
		ids[id] = true
	}
	return ids, nil
}

// TotalRevenue sums PaidAmount over the whole ledger. An empty ledger
// yields 0.
func (s *Store) TotalRevenue() (int, error) {
	var total int
	err := s.DB.Model(&ConfirmedPayment{}).
		Select("COALESCE(SUM(paid_amount), 0)").
		Scan(&total).Error
	return total, err
}
