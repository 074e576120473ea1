// Package sms 提供短信通知服务
package sms

import (
	"context"
	"sync"
	"time"
)

// 短信模板键
const (
	TemplateReservationConfirmed = "reservation_confirmed" // 预订确认通知
	TemplateReservationCancelled = "reservation_cancelled" // 预订取消通知
)

// Sender 短信发送器接口
type Sender interface {
	Send(ctx context.Context, phone, template string, params map[string]string) error
	SendReservationConfirmed(ctx context.Context, phone, reservationCode, checkInDate string) error
	SendReservationCancelled(ctx context.Context, phone, reservationCode string) error
}

// MockSender 模拟短信发送器，用于开发与测试
type MockSender struct {
	mu           sync.Mutex
	SentMessages []MockMessage
}

// MockMessage 模拟消息
type MockMessage struct {
	Phone    string
	Template string
	Params   map[string]string
	SentAt   time.Time
}

// NewMockSender 创建模拟发送器
func NewMockSender() *MockSender {
	return &MockSender{
		SentMessages: make([]MockMessage, 0),
	}
}

// Send 模拟发送
func (s *MockSender) Send(ctx context.Context, phone, template string, params map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SentMessages = append(s.SentMessages, MockMessage{
		Phone:    phone,
		Template: template,
		Params:   params,
		SentAt:   time.Now(),
	})
	return nil
}

// SendReservationConfirmed 模拟发送预订确认通知
func (s *MockSender) SendReservationConfirmed(ctx context.Context, phone, reservationCode, checkInDate string) error {
	return s.Send(ctx, phone, TemplateReservationConfirmed, map[string]string{
		"code":     reservationCode,
		"check_in": checkInDate,
	})
}

// SendReservationCancelled 模拟发送预订取消通知
func (s *MockSender) SendReservationCancelled(ctx context.Context, phone, reservationCode string) error {
	return s.Send(ctx, phone, TemplateReservationCancelled, map[string]string{
		"code": reservationCode,
	})
}

// GetLastMessage 获取最后发送的消息
func (s *MockSender) GetLastMessage() *MockMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.SentMessages) == 0 {
		return nil
	}
	return &s.SentMessages[len(s.SentMessages)-1]
}

// Count 已发送消息数量
func (s *MockSender) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.SentMessages)
}

// Clear 清空消息记录
func (s *MockSender) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SentMessages = make([]MockMessage, 0)
}
