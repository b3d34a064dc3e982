package utils

import (
	"log"

	"campus/config"
	"campus/models"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializePurgeScheduler sets up the nightly purge of soft-deleted rows.
// Deletes only mark rows; the enrollment cascades keep the membership
// relation correct immediately, so the purge is purely housekeeping.
func InitializePurgeScheduler(db *gorm.DB, cfg *config.Config) *cron.Cron {
	log.Println("[PURGE-SCHEDULER] Initializing purge scheduler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[PURGE-SCHEDULER] Running daily purge...")
		PurgeSoftDeleted(db, cfg.PurgeRetentionDays)
	})

	c.Start()
	log.Printf("[PURGE-SCHEDULER] Purge scheduler started - retention %d days", cfg.PurgeRetentionDays)
	return c
}

// PurgeSoftDeleted hard-deletes students and courses that were soft-deleted
// before the start of the retention window.
func PurgeSoftDeleted(db *gorm.DB, retentionDays int) {
	cutoff := now.BeginningOfDay().AddDate(0, 0, -retentionDays)

	result := db.Unscoped().
		Where("is_deleted = ? AND updated_at < ?", true, cutoff).
		Delete(&models.Student{})
	if result.Error != nil {
		log.Printf("[PURGE-SCHEDULER] Error purging students: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("[PURGE-SCHEDULER] Purged %d students", result.RowsAffected)
	}

	result = db.Unscoped().
		Where("is_deleted = ? AND updated_at < ?", true, cutoff).
		Delete(&models.Course{})
	if result.Error != nil {
		log.Printf("[PURGE-SCHEDULER] Error purging courses: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("[PURGE-SCHEDULER] Purged %d courses", result.RowsAffected)
	}
}
