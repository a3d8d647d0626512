package audit

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"foodbridge/internal/models"
)

// Record appends one audit entry for a mutating action. Failures are
// logged but never fail the action that triggered them.
func Record(db *gorm.DB, user models.User, action, details string) {
	entry := models.AuditLog{
		UserID:    user.ID,
		UserEmail: user.Email,
		Action:    action,
		Details:   details,
	}
	if err := db.Create(&entry).Error; err != nil {
		logrus.WithError(err).WithField("action", action).Error("audit: could not append entry")
		return
	}
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"action":  action,
	}).Info(details)
}
