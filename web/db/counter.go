package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const counterName = "biodataId"

// NextBiodataID allocates the next sequential biodata id. The counter
// row is locked for the duration of the transaction, so two concurrent
// calls can never observe the same LastIssued value. The row is created
// at 0 on first use, so the first id handed out is 1.
func (s *Store) NextBiodataID() (int, error) {
	var id int
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var counter BiodataIDCounter
		if err := lockForUpdate(tx).
			Where(BiodataIDCounter{Name: counterName}).
			FirstOrCreate(&counter).Error; err != nil {
			return err
		}

		counter.LastIssued++
		if err := tx.Save(&counter).Error; err != nil {
			return err
		}

		id = counter.LastIssued
		return nil
	})
	return id, err
}

// Counter returns the allocator state, bootstrapping the row if missing.
func (s *Store) Counter() (BiodataIDCounter, error) {
	var counter BiodataIDCounter
	err := s.DB.Where(BiodataIDCounter{Name: counterName}).FirstOrCreate(&counter).Error
	return counter, err
}

// SetCounter overwrites the allocator state. Admin-only escape hatch for
// seeding an existing dataset; lowering it below an issued id would make
// the allocator hand out duplicates, so don't.
func (s *Store) SetCounter(lastIssued int) (BiodataIDCounter, error) {
	counter := BiodataIDCounter{Name: counterName, LastIssued: lastIssued}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_issued"}),
	}).Create(&counter).Error
	return counter, err
}
