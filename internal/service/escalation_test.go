package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"CampusMind/internal/models"
	"CampusMind/internal/risk"
	"CampusMind/pkg/errors"
	"CampusMind/pkg/llm"
	"CampusMind/pkg/metrics"

	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeClassifier returns scripted labels in order, then repeats the last one.
type fakeClassifier struct {
	labels []string
	calls  int
	err    error
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (llm.Classification, error) {
	if f.err != nil {
		return llm.Classification{}, f.err
	}
	label := "Low"
	if len(f.labels) > 0 {
		i := f.calls
		if i >= len(f.labels) {
			i = len(f.labels) - 1
		}
		label = f.labels[i]
	}
	f.calls++
	return llm.Classification{Stress: label, Reply: "Thanks for sharing."}, nil
}

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// shared-cache keeps one in-memory database across pooled connections
	dsn := fmt.Sprintf("file:escalation%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.CheckIn{}, &models.ChatMessage{},
		&models.RiskReport{}, &models.EmergencyAlert{},
	))
	return db
}

func newTestCoordinator(t *testing.T, cls llm.Classifier, cooldown time.Duration) (*Coordinator, *gorm.DB, *models.User) {
	t.Helper()
	db := newTestDB(t)
	user := &models.User{Email: fmt.Sprintf("s%d@campus.edu", time.Now().UnixNano()), DisplayName: "Jamie Lin", Role: models.RoleStudent}
	require.NoError(t, db.Create(user).Error)
	m := metrics.NewMetricsWith(prometheus.NewRegistry())
	return NewCoordinator(db, cls, m, cooldown), db, user
}

func TestSubmitCheckInBelowThreshold(t *testing.T) {
	co, db, user := newTestCoordinator(t, &fakeClassifier{}, 0)

	res, err := co.SubmitCheckIn(context.Background(), user, CheckInRequest{Stress: 1, Sleep: 5, Social: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, res.RiskScore)
	assert.False(t, res.AtRisk)
	assert.True(t, res.Status.EventPersisted)
	assert.True(t, res.Status.ProfileUpdated)
	assert.False(t, res.Status.ReportEmitted)

	// no report for a calm check-in
	var count int64
	require.NoError(t, db.Model(&models.RiskReport{}).Count(&count).Error)
	assert.Zero(t, count)

	fresh, err := models.GetUserByID(db, user.ID)
	require.NoError(t, err)
	assert.False(t, fresh.IsAtRisk)
	assert.Equal(t, 0, fresh.StressScore)
	assert.NotNil(t, fresh.LastCheckInAt)
}

func TestSubmitCheckInHighSeverity(t *testing.T) {
	co, db, user := newTestCoordinator(t, &fakeClassifier{}, 0)

	// base = 30+7.5+7.5 = 45 -> High, not Critical
	res, err := co.SubmitCheckIn(context.Background(), user, CheckInRequest{Stress: 4, Sleep: 4, Social: 4})
	require.NoError(t, err)
	assert.Equal(t, 45, res.RiskScore)
	assert.True(t, res.AtRisk)
	require.NotNil(t, res.Report)
	assert.Equal(t, models.SeverityHigh, res.Report.Severity)
	assert.Equal(t, models.ReportStatusPending, res.Report.Status)

	fresh, err := models.GetUserByID(db, user.ID)
	require.NoError(t, err)
	assert.True(t, fresh.IsAtRisk)
	assert.Equal(t, 45, fresh.StressScore)
}

func TestSubmitCheckInCriticalSeverity(t *testing.T) {
	co, _, user := newTestCoordinator(t, &fakeClassifier{}, 0)

	res, err := co.SubmitCheckIn(context.Background(), user, CheckInRequest{Stress: 5, Sleep: 1, Social: 1})
	require.NoError(t, err)
	assert.Equal(t, 100, res.RiskScore)
	require.NotNil(t, res.Report)
	assert.Equal(t, models.SeverityCritical, res.Report.Severity)
}

func TestSubmitCheckInThresholdBoundary(t *testing.T) {
	co, _, user := newTestCoordinator(t, &fakeClassifier{}, 0)

	// stress=5 -> 40 exactly: not above the threshold, no report
	res, err := co.SubmitCheckIn(context.Background(), user, CheckInRequest{Stress: 5, Sleep: 5, Social: 5})
	require.NoError(t, err)
	assert.Equal(t, 40, res.RiskScore)
	assert.False(t, res.AtRisk)
	assert.Nil(t, res.Report)
}

func TestSubmitCheckInJournalKeywordReason(t *testing.T) {
	co, _, user := newTestCoordinator(t, &fakeClassifier{}, 0)

	// base 25 + boost 20 = 45
	res, err := co.SubmitCheckIn(context.Background(), user, CheckInRequest{
		Stress: 2, Sleep: 4, Social: 4, JournalText: "I feel hopeless",
	})
	require.NoError(t, err)
	assert.Equal(t, 45, res.RiskScore)
	require.NotNil(t, res.Report)
	assert.Contains(t, res.Report.Reason, "hopeless")
}

func TestSubmitCheckInRejectsOutOfRangeSliders(t *testing.T) {
	co, db, user := newTestCoordinator(t, &fakeClassifier{}, 0)

	_, err := co.SubmitCheckIn(context.Background(), user, CheckInRequest{Stress: 9, Sleep: 3, Social: 3})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidInput))

	// rejected before any write
	var count int64
	require.NoError(t, db.Model(&models.CheckIn{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestChatTrendLevels(t *testing.T) {
	cases := []struct {
		name   string
		labels []string
		want   risk.AlertLevel
	}{
		{"all low stays green", []string{"Low", "Low", "Low", "Low", "Low"}, risk.AlertGreen},
		{"two highs go yellow", []string{"Low", "Low", "Low", "High", "High"}, risk.AlertYellow},
		{"four highs go red", []string{"Low", "High", "High", "High", "High"}, risk.AlertRed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			co, _, user := newTestCoordinator(t, &fakeClassifier{labels: tc.labels}, 0)
			var last *ChatResult
			for i := range tc.labels {
				res, err := co.HandleChatMessage(context.Background(), user, fmt.Sprintf("message %d about classes", i))
				require.NoError(t, err)
				last = res
			}
			assert.Equal(t, tc.want, last.Level)
		})
	}
}

func TestChatKeywordForcesRedAndDangerousReport(t *testing.T) {
	co, db, user := newTestCoordinator(t, &fakeClassifier{labels: []string{"Low"}}, 0)

	// single message, High-count otherwise zero
	res, err := co.HandleChatMessage(context.Background(), user, "everything is such a panic lately")
	require.NoError(t, err)
	assert.Equal(t, risk.AlertRed, res.Level)
	require.NotNil(t, res.Report)
	assert.Equal(t, models.SeverityDangerous, res.Report.Severity)
	assert.Equal(t, "everything is such a panic lately", res.Report.SourceMessage)

	// exactly one report, even though the trend override fired too
	var count int64
	require.NoError(t, db.Model(&models.RiskReport{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	fresh, err := models.GetUserByID(db, user.ID)
	require.NoError(t, err)
	assert.True(t, fresh.IsAtRisk)
	assert.NotNil(t, fresh.LastActiveAt)
}

func TestChatRedTrendWithoutKeywordEmitsHighReport(t *testing.T) {
	co, db, user := newTestCoordinator(t, &fakeClassifier{labels: []string{"High", "High", "High", "High"}}, 0)

	var last *ChatResult
	for i := 0; i < 4; i++ {
		res, err := co.HandleChatMessage(context.Background(), user, fmt.Sprintf("rough week %d", i))
		require.NoError(t, err)
		last = res
	}
	assert.Equal(t, risk.AlertRed, last.Level)
	require.NotNil(t, last.Report)
	assert.Equal(t, models.SeverityHigh, last.Report.Severity)
	assert.Equal(t, "High Stress Trend Detected", last.Report.Reason)

	// the first three messages emitted nothing
	var count int64
	require.NoError(t, db.Model(&models.RiskReport{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestChatCriticalTermSkipsClassifier(t *testing.T) {
	cls := &fakeClassifier{labels: []string{"Low"}}
	co, _, user := newTestCoordinator(t, cls, 0)

	res, err := co.HandleChatMessage(context.Background(), user, "I want to end my life")
	require.NoError(t, err)
	assert.Zero(t, cls.calls)
	assert.Equal(t, models.StressLabelHigh, res.Label)
	assert.Equal(t, CriticalReply, res.Reply)
	assert.Equal(t, risk.AlertRed, res.Level)
}

func TestChatClassifierFailureFallsBack(t *testing.T) {
	co, db, user := newTestCoordinator(t, &fakeClassifier{err: fmt.Errorf("malformed model output")}, 0)

	res, err := co.HandleChatMessage(context.Background(), user, "thinking about my week")
	require.NoError(t, err)
	assert.Equal(t, models.StressLabelLow, res.Label)
	assert.Equal(t, FallbackReply, res.Reply)
	assert.Equal(t, risk.AlertGreen, res.Level)
	assert.True(t, res.Status.EventPersisted)

	// the message still landed, with the fallback label
	var msg models.ChatMessage
	require.NoError(t, db.Where("sender = ?", models.SenderStudent).First(&msg).Error)
	assert.Equal(t, models.StressLabelLow, msg.StressLabel)
}

func TestChatWindowSlidesPastOldHighs(t *testing.T) {
	// 4 highs then 5 lows: the highs age out of the window
	labels := []string{"High", "High", "High", "High", "Low", "Low", "Low", "Low", "Low"}
	co, _, user := newTestCoordinator(t, &fakeClassifier{labels: labels}, 0)

	var last *ChatResult
	for i := range labels {
		res, err := co.HandleChatMessage(context.Background(), user, fmt.Sprintf("update %d on my day", i))
		require.NoError(t, err)
		last = res
	}
	assert.Equal(t, risk.AlertGreen, last.Level)
}

func TestCooldownSuppressesRepeatReports(t *testing.T) {
	co, db, user := newTestCoordinator(t, &fakeClassifier{}, time.Hour)

	first, err := co.SubmitCheckIn(context.Background(), user, CheckInRequest{Stress: 5, Sleep: 1, Social: 1})
	require.NoError(t, err)
	require.NotNil(t, first.Report)

	second, err := co.SubmitCheckIn(context.Background(), user, CheckInRequest{Stress: 5, Sleep: 1, Social: 1})
	require.NoError(t, err)
	assert.Nil(t, second.Report)
	assert.False(t, second.Status.ReportEmitted)

	var count int64
	require.NoError(t, db.Model(&models.RiskReport{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestNoCooldownKeepsFullAuditTrail(t *testing.T) {
	co, db, user := newTestCoordinator(t, &fakeClassifier{}, 0)

	for i := 0; i < 3; i++ {
		_, err := co.SubmitCheckIn(context.Background(), user, CheckInRequest{Stress: 5, Sleep: 1, Social: 1})
		require.NoError(t, err)
	}
	var count int64
	require.NoError(t, db.Model(&models.RiskReport{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestTriggerEmergencyUnconditional(t *testing.T) {
	co, db, user := newTestCoordinator(t, &fakeClassifier{}, 0)

	// all-neutral history: no check-ins, no chat, still an alert
	alert, err := co.TriggerEmergency(context.Background(), user, EmergencyRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusActive, alert.Status)
	assert.Equal(t, models.AlertKindSOS, alert.Kind)
	assert.Equal(t, models.DefaultLocation, alert.Location)
	assert.Equal(t, models.DefaultDetails, alert.Details)

	active, err := models.ActiveAlerts(db)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestTriggerEmergencyManualKind(t *testing.T) {
	co, _, user := newTestCoordinator(t, &fakeClassifier{}, 0)

	alert, err := co.TriggerEmergency(context.Background(), user, EmergencyRequest{
		Location: "Library, 2nd floor", Details: "Student reports harassment", Kind: models.AlertKindManual,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AlertKindManual, alert.Kind)
	assert.Equal(t, "Library, 2nd floor", alert.Location)
}

func TestAdvanceAlertForwardOnly(t *testing.T) {
	co, _, user := newTestCoordinator(t, &fakeClassifier{}, 0)

	alert, err := co.TriggerEmergency(context.Background(), user, EmergencyRequest{})
	require.NoError(t, err)

	dispatched, err := co.AdvanceAlert(alert.UID, models.AlertStatusDispatched)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusDispatched, dispatched.Status)
	assert.NotNil(t, dispatched.DispatchedAt)

	// backward and skipping transitions are rejected
	_, err = co.AdvanceAlert(alert.UID, models.AlertStatusActive)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeTransition))

	resolved, err := co.AdvanceAlert(alert.UID, models.AlertStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusResolved, resolved.Status)

	_, err = co.AdvanceAlert(alert.UID, models.AlertStatusResolved)
	require.Error(t, err)
}
