package service

import (
	"context"
	"fmt"
	"time"

	"CampusMind/internal/models"
	"CampusMind/internal/risk"
	"CampusMind/pkg/errors"
	"CampusMind/pkg/llm"
	"CampusMind/pkg/logger"
	"CampusMind/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Replies used when the completion service is bypassed or fails.
const (
	CriticalReply = "I'm really sorry you're feeling this way. You are not alone. Please reach out to a trusted person or professional immediately."
	FallbackReply = "I'm here. Tell me more."
)

// WriteStatus reports which steps of a multi-write sequence committed. The
// sequence persist event -> update profile -> emit report is not atomic;
// a failure mid-way leaves the earlier writes in place, and the caller sees
// exactly how far it got instead of a single boolean.
type WriteStatus struct {
	EventPersisted bool `json:"eventPersisted"`
	ProfileUpdated bool `json:"profileUpdated"`
	ReportEmitted  bool `json:"reportEmitted"`
}

// Coordinator is the single place where a detected condition becomes a
// persisted consequence: check-in scoring, chat trend evaluation and
// emergency triggers all land here.
type Coordinator struct {
	db         *gorm.DB
	classifier llm.Classifier
	detector   *risk.Detector
	scorer     *risk.CheckInScorer
	metrics    *metrics.Metrics

	// cooldown suppresses repeat reports per subject inside the window.
	// Zero keeps the full audit trail (the default).
	cooldown time.Duration
}

func NewCoordinator(db *gorm.DB, classifier llm.Classifier, m *metrics.Metrics, cooldown time.Duration) *Coordinator {
	detector := risk.NewDetector(risk.Canonical())
	return &Coordinator{
		db:         db,
		classifier: classifier,
		detector:   detector,
		scorer:     risk.NewCheckInScorer(detector),
		metrics:    m,
		cooldown:   cooldown,
	}
}

// CheckInRequest carries one check-in submission. Zero sliders mean absent.
type CheckInRequest struct {
	Mood        int    `json:"mood"`
	Stress      int    `json:"stress"`
	Sleep       int    `json:"sleep"`
	Academic    int    `json:"academic"`
	Social      int    `json:"social"`
	JournalText string `json:"journalText"`
}

type CheckInResult struct {
	RiskScore int                `json:"riskScore"`
	AtRisk    bool               `json:"atRisk"`
	Report    *models.RiskReport `json:"report,omitempty"`
	Status    WriteStatus        `json:"status"`
}

func validateSlider(name string, v int) error {
	if v == 0 {
		return nil // absent, scorer substitutes the neutral middle
	}
	if v < risk.SliderMin || v > risk.SliderMax {
		return errors.WithCodef(errors.CodeInvalidInput, "%s must be between %d and %d", name, risk.SliderMin, risk.SliderMax)
	}
	return nil
}

// SubmitCheckIn scores the submission, persists it, refreshes the profile
// aggregate and emits a risk report when the score crosses the threshold.
// Earlier writes are not rolled back when a later step fails; the returned
// status says which ones committed.
func (co *Coordinator) SubmitCheckIn(ctx context.Context, user *models.User, req CheckInRequest) (*CheckInResult, error) {
	for name, v := range map[string]int{
		"mood": req.Mood, "stress": req.Stress, "sleep": req.Sleep,
		"academic": req.Academic, "social": req.Social,
	} {
		if err := validateSlider(name, v); err != nil {
			return nil, err
		}
	}

	score := co.scorer.Score(risk.CheckInInput{
		Mood:        req.Mood,
		Stress:      req.Stress,
		Sleep:       req.Sleep,
		Academic:    req.Academic,
		Social:      req.Social,
		JournalText: req.JournalText,
	})
	atRisk := score > risk.RiskThreshold
	result := &CheckInResult{RiskScore: score, AtRisk: atRisk}

	checkIn := &models.CheckIn{
		UserID:      user.ID,
		Mood:        req.Mood,
		Stress:      req.Stress,
		Sleep:       req.Sleep,
		Academic:    req.Academic,
		Social:      req.Social,
		JournalText: req.JournalText,
		RiskScore:   score,
	}
	if err := models.CreateCheckIn(co.db, checkIn); err != nil {
		return result, errors.WrapCode(err, errors.CodeStoreWrite, "persist check-in")
	}
	result.Status.EventPersisted = true
	co.metrics.IncCheckIn()

	if err := models.UpdateProfileFromCheckIn(co.db, user.ID, score, atRisk, time.Now()); err != nil {
		return result, errors.WrapCode(err, errors.CodeStoreWrite, "update profile")
	}
	result.Status.ProfileUpdated = true

	if !atRisk {
		return result, nil
	}

	severity := models.SeverityHigh
	if score > risk.CriticalThreshold {
		severity = models.SeverityCritical
	}
	trigger := "High Stress Levels"
	if term, hit := co.detector.Match(req.JournalText); hit {
		trigger = fmt.Sprintf("journal matched %q", term)
	}

	report, err := co.emitReport(user, &models.RiskReport{
		UserID:        user.ID,
		StudentName:   user.DisplayName,
		Department:    user.Department,
		Severity:      severity,
		Reason:        "Standard Check-in Risk Detected: " + trigger,
		SourceMessage: req.JournalText,
	})
	if err != nil {
		return result, err
	}
	result.Report = report
	result.Status.ReportEmitted = report != nil
	return result, nil
}

type ChatResult struct {
	Reply  string             `json:"reply"`
	Label  string             `json:"stressLabel"`
	Level  risk.AlertLevel    `json:"alertLevel"`
	Report *models.RiskReport `json:"report,omitempty"`
	Status WriteStatus        `json:"status"`
}

// HandleChatMessage classifies the message, appends it to the log, reevaluates
// the trend window and escalates. When the lexicon fires and the trend goes
// Red on the same message, exactly one report is emitted and the more severe
// Dangerous label wins.
func (co *Coordinator) HandleChatMessage(ctx context.Context, user *models.User, text string) (*ChatResult, error) {
	criticalTerm, critical := co.detector.MatchCritical(text)

	label := models.StressLabelLow
	reply := FallbackReply
	if critical {
		// self-harm adjacent content never waits on the completion service
		label = models.StressLabelHigh
		reply = CriticalReply
		logger.Warn("critical term in chat", zap.Uint("user", user.ID), zap.String("term", criticalTerm))
	} else {
		cls, err := co.classifier.Classify(ctx, text)
		if err != nil {
			// recoverable: fall back to a neutral label, persist anyway so the
			// audit trail stays complete
			co.metrics.IncClassifierFallback()
			logger.Warn("classifier failed, using fallback label", zap.Error(err))
		} else {
			label = cls.Stress
			if cls.Reply != "" {
				reply = cls.Reply
			}
		}
	}

	result := &ChatResult{Reply: reply, Label: label, Level: risk.AlertGreen}

	msg := &models.ChatMessage{
		UserID:      user.ID,
		Text:        text,
		Sender:      models.SenderStudent,
		StressLabel: label,
	}
	if err := models.CreateChatMessage(co.db, msg); err != nil {
		return result, errors.WrapCode(err, errors.CodeStoreWrite, "persist chat message")
	}
	result.Status.EventPersisted = true
	co.metrics.IncChatMessage(label)

	// the companion reply is part of the conversation log too
	if err := models.CreateChatMessage(co.db, &models.ChatMessage{
		UserID:      user.ID,
		Text:        reply,
		Sender:      models.SenderSystem,
		StressLabel: models.StressLabelLow,
	}); err != nil {
		logger.Warn("persist companion reply failed", zap.Error(err))
	}

	window, err := models.RecentStudentMessages(co.db, user.ID, risk.TrendWindowSize)
	if err != nil {
		return result, errors.WrapCode(err, errors.CodeStoreWrite, "read trend window")
	}
	labels := make([]string, len(window))
	for i, m := range window {
		labels[i] = m.StressLabel
	}

	riskTerm, riskHit := co.detector.Match(text)
	level := risk.EvaluateWindow(labels, critical || riskHit)
	result.Level = level
	co.metrics.IncAlertLevel(string(level))

	// a general lexicon hit escalates immediately, regardless of the trend
	if riskHit {
		report, err := co.emitReport(user, &models.RiskReport{
			UserID:        user.ID,
			StudentName:   user.DisplayName,
			Department:    user.Department,
			Severity:      models.SeverityDangerous,
			Reason:        fmt.Sprintf("AI Chat Monitor Detected Trigger: %q", riskTerm),
			SourceMessage: text,
		})
		if err != nil {
			return result, err
		}
		result.Report = report
		result.Status.ReportEmitted = report != nil
	}

	if err := models.UpdateProfileFromChat(co.db, user.ID, level == risk.AlertRed, time.Now()); err != nil {
		return result, errors.WrapCode(err, errors.CodeStoreWrite, "update profile")
	}
	result.Status.ProfileUpdated = true

	// trend-based report, only when the keyword path has not already fired
	if level == risk.AlertRed && !riskHit {
		reason := "High Stress Trend Detected"
		if critical {
			reason = "Critical Keywords Detected"
		}
		report, err := co.emitReport(user, &models.RiskReport{
			UserID:      user.ID,
			StudentName: user.DisplayName,
			Department:  user.Department,
			Severity:    models.SeverityHigh,
			Reason:      reason,
		})
		if err != nil {
			return result, err
		}
		result.Report = report
		result.Status.ReportEmitted = report != nil
	}

	return result, nil
}

type EmergencyRequest struct {
	Location string `json:"location"`
	Details  string `json:"details"`
	Kind     string `json:"kind"`
}

// TriggerEmergency bypasses scoring entirely. The alert is always created,
// whatever the subject's history; no threshold may suppress this path.
func (co *Coordinator) TriggerEmergency(ctx context.Context, user *models.User, req EmergencyRequest) (*models.EmergencyAlert, error) {
	kind := req.Kind
	if kind != models.AlertKindManual {
		kind = models.AlertKindSOS
	}
	alert := &models.EmergencyAlert{
		UserID:      user.ID,
		StudentName: user.DisplayName,
		Location:    req.Location,
		Details:     req.Details,
		Kind:        kind,
	}
	if err := models.CreateEmergencyAlert(co.db, alert); err != nil {
		return nil, errors.WrapCode(err, errors.CodeStoreWrite, "persist emergency alert")
	}
	co.metrics.IncEmergency(kind)
	logger.Info("emergency alert created",
		zap.Uint("user", user.ID), zap.String("kind", kind), zap.String("uid", alert.UID))
	return alert, nil
}

// AdvanceAlert moves an emergency alert forward (Active -> Dispatched ->
// Resolved), the only externally triggered mutation on that entity.
func (co *Coordinator) AdvanceAlert(uid, next string) (*models.EmergencyAlert, error) {
	return models.AdvanceAlertStatus(co.db, uid, next)
}

// emitReport writes a risk report unless the subject reported inside the
// cooldown window. Cooldown zero disables dedup and keeps every report.
func (co *Coordinator) emitReport(user *models.User, report *models.RiskReport) (*models.RiskReport, error) {
	if co.cooldown > 0 {
		recent, err := models.HasReportSince(co.db, user.ID, time.Now().Add(-co.cooldown))
		if err != nil {
			return nil, errors.WrapCode(err, errors.CodeStoreWrite, "cooldown lookup")
		}
		if recent {
			logger.Debug("report suppressed by cooldown", zap.Uint("user", user.ID))
			return nil, nil
		}
	}
	if err := models.CreateRiskReport(co.db, report); err != nil {
		return nil, errors.WrapCode(err, errors.CodeStoreWrite, "persist risk report")
	}
	co.metrics.IncRiskReport(report.Severity)
	return report, nil
}
