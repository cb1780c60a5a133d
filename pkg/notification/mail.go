package notification

import (
	"fmt"
	"net/smtp"
	"strings"
)

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type MailNotification struct {
	cfg MailConfig
}

func NewMailNotification(cfg MailConfig) *MailNotification {
	return &MailNotification{cfg: cfg}
}

// SendRiskReportEmail 向辅导员邮箱发送风险报告提醒
func (m *MailNotification) SendRiskReportEmail(to, severity, reason string) error {
	subject := fmt.Sprintf("[CampusMind] %s risk report", severity)
	body := fmt.Sprintf("A new %s risk report was filed.\r\n\r\nReason: %s\r\n\r\nPlease review it on the counselor dashboard.", severity, reason)
	return m.send(to, subject, body)
}

// SendDigestEmail 发送待处理报告的每日摘要
func (m *MailNotification) SendDigestEmail(to string, pendingCount int, lines []string) error {
	subject := fmt.Sprintf("[CampusMind] daily digest: %d pending reports", pendingCount)
	body := strings.Join(lines, "\r\n")
	return m.send(to, subject, body)
}

func (m *MailNotification) send(to, subject, body string) error {
	if m.cfg.Host == "" || to == "" {
		return fmt.Errorf("mail not configured")
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	msg := []byte("From: " + m.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n" +
		body + "\r\n")
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg)
}
