package sms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSender_Send(t *testing.T) {
	sender := NewMockSender()
	ctx := context.Background()

	err := sender.Send(ctx, "+8613800138000", TemplateReservationConfirmed, map[string]string{
		"code": "R20260110123456",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, sender.Count())
	msg := sender.GetLastMessage()
	require.NotNil(t, msg)
	assert.Equal(t, "+8613800138000", msg.Phone)
	assert.Equal(t, TemplateReservationConfirmed, msg.Template)
	assert.Equal(t, "R20260110123456", msg.Params["code"])
}

func TestMockSender_SendReservationConfirmed(t *testing.T) {
	sender := NewMockSender()
	ctx := context.Background()

	err := sender.SendReservationConfirmed(ctx, "+8613800138000", "R20260110123456", "2026-01-10")
	require.NoError(t, err)

	msg := sender.GetLastMessage()
	require.NotNil(t, msg)
	assert.Equal(t, TemplateReservationConfirmed, msg.Template)
	assert.Equal(t, "2026-01-10", msg.Params["check_in"])
}

func TestMockSender_SendReservationCancelled(t *testing.T) {
	sender := NewMockSender()
	ctx := context.Background()

	err := sender.SendReservationCancelled(ctx, "+8613800138000", "R20260110123456")
	require.NoError(t, err)

	msg := sender.GetLastMessage()
	require.NotNil(t, msg)
	assert.Equal(t, TemplateReservationCancelled, msg.Template)
}

func TestMockSender_Clear(t *testing.T) {
	sender := NewMockSender()
	ctx := context.Background()

	_ = sender.SendReservationCancelled(ctx, "+8613800138000", "R20260110123456")
	require.Equal(t, 1, sender.Count())

	sender.Clear()
	assert.Equal(t, 0, sender.Count())
	assert.Nil(t, sender.GetLastMessage())
}

func TestNewAliyunSender_MissingTemplate(t *testing.T) {
	sender, err := NewAliyunSender(&AliyunConfig{
		AccessKeyID:     "test-key",
		AccessKeySecret: "test-secret",
		SignName:        "酒店预订",
	})
	require.NoError(t, err)

	// 未配置模板时直接返回错误，不发起网络请求
	err = sender.Send(context.Background(), "+8613800138000", TemplateReservationConfirmed, nil)
	assert.ErrorContains(t, err, "短信模板未配置")
}
