package notification

import (
	"context"
	"fmt"
)

type SMSConfig struct {
	SignName     string
	TemplateCode string
}

// SMSClient 便于替换/注入的发送接口（适配真实 SDK）
type SMSClient interface {
	Send(ctx context.Context, phone, sign, template string, params map[string]string) error
}

type SMS struct {
	cfg SMSConfig
	cli SMSClient
}

func NewSMS(cfg SMSConfig, cli SMSClient) *SMS {
	return &SMS{cfg: cfg, cli: cli}
}

// SendEmergency 向值班响应人发送紧急警报短信
func (s *SMS) SendEmergency(ctx context.Context, phone, location, details string) error {
	if s.cli == nil {
		return fmt.Errorf("SMSClient not configured")
	}
	params := map[string]string{
		"location": location,
		"details":  details,
	}
	return s.cli.Send(ctx, phone, s.cfg.SignName, s.cfg.TemplateCode, params)
}
