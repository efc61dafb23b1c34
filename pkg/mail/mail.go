package mail

import (
	"errors"
	"fmt"

	"moments/config"
	"moments/pkg/logger"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer 邮件发送器，未启用时只记录日志
type Mailer struct {
	cfg    config.MailConfig
	dialer *gomail.Dialer
}

// NewMailer 创建邮件发送器
func NewMailer(cfg config.MailConfig) *Mailer {
	m := &Mailer{cfg: cfg}
	if cfg.Enabled {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		m.dialer.SSL = cfg.Port == 465
	}
	return m
}

// Enabled 是否真正发送邮件
func (m *Mailer) Enabled() bool { return m.cfg.Enabled }

// BaseURL 前端站点地址，用于拼接文章链接
func (m *Mailer) BaseURL() string { return m.cfg.BaseURL }

// Send 同步发送一封HTML邮件
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if to == "" {
		return errors.New("收件人为空")
	}
	if !m.cfg.Enabled {
		logger.Info("邮件发送未启用，跳过", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

// SendAsync 异步发送，失败只记录日志
func (m *Mailer) SendAsync(to, subject, htmlBody string) {
	go func() {
		if err := m.Send(to, subject, htmlBody); err != nil {
			logger.Error("异步发送邮件失败", zap.String("to", to), zap.Error(err))
		}
	}()
}
