package listeners

import (
	"context"

	"CampusMind/internal/models"
	"CampusMind/pkg/config"
	"CampusMind/pkg/logger"
	"CampusMind/pkg/notification"
	"CampusMind/pkg/sse"
	"CampusMind/pkg/util"

	"go.uber.org/zap"
)

// InitRiskListeners wires the persistence signals to the notify fan-out:
// counselor email and live feed for reports, responder SMS and live feed
// for emergencies. Delivery failures are logged, never propagated back to
// the write path.
func InitRiskListeners(hub *sse.Hub, sms *notification.SMS) {
	util.Sig().Connect(models.SigRiskReportCreate, func(sender any, params ...any) {
		report := sender.(*models.RiskReport)

		hub.Publish(sse.TopicReports, "report", report)

		to := config.GlobalConfig.CounselorMail
		if to == "" {
			return
		}
		go func() {
			err := notification.NewMailNotification(config.GlobalConfig.Mail).SendRiskReportEmail(
				to,
				report.Severity,
				report.Reason,
			)
			if err != nil {
				logger.Warn("send report mail failed", zap.Error(err))
			}
		}()
	})

	util.Sig().Connect(models.SigEmergencyCreate, func(sender any, params ...any) {
		alert := sender.(*models.EmergencyAlert)

		hub.Publish(sse.TopicEmergencies, "emergency", alert)

		phone := config.GlobalConfig.ResponderPhone
		if sms == nil || phone == "" {
			return
		}
		go func() {
			if err := sms.SendEmergency(context.Background(), phone, alert.Location, alert.Details); err != nil {
				logger.Warn("send emergency sms failed", zap.Error(err))
			}
		}()
	})
}
