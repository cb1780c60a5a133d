package service

import (
	"context"
	"fmt"

	"CampusMind/internal/models"
	"CampusMind/pkg/logger"
	"CampusMind/pkg/notification"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DigestJob mails the counselor a morning summary of reports still pending
// review. Identities are never included; the digest links severity and age
// only, the dashboard applies the disclosure policy.
type DigestJob struct {
	db   *gorm.DB
	mail *notification.MailNotification
	to   string
}

func NewDigestJob(db *gorm.DB, mail *notification.MailNotification, to string) *DigestJob {
	return &DigestJob{db: db, mail: mail, to: to}
}

func (j *DigestJob) Run(ctx context.Context) {
	if j.to == "" {
		return
	}
	reports, err := models.ListPendingReports(j.db)
	if err != nil {
		logger.Warn("digest: list pending reports failed", zap.Error(err))
		return
	}
	if len(reports) == 0 {
		return
	}
	lines := make([]string, 0, len(reports)+1)
	lines = append(lines, fmt.Sprintf("%d risk reports are pending review:", len(reports)))
	for _, r := range reports {
		lines = append(lines, fmt.Sprintf("- [%s] %s (filed %s)", r.Severity, r.Reason, r.CreatedAt.Format("2006-01-02 15:04")))
	}
	if err := j.mail.SendDigestEmail(j.to, len(reports), lines); err != nil {
		logger.Warn("digest: send mail failed", zap.Error(err))
	}
}
