package service

import "moments/internal/model"

// Pusher 实时推送通道，用户不在线时实现可以直接忽略
type Pusher interface {
	PushNotification(userID uint, n *model.Notification) error
	PushChat(userID uint, msg *model.Message) error
}

// Mailer 异步邮件发送
type Mailer interface {
	SendAsync(to, subject, htmlBody string)
	BaseURL() string
}

type nopPusher struct{}

func (nopPusher) PushNotification(uint, *model.Notification) error { return nil }
func (nopPusher) PushChat(uint, *model.Message) error              { return nil }

type nopMailer struct{}

func (nopMailer) SendAsync(string, string, string) {}
func (nopMailer) BaseURL() string                  { return "" }
