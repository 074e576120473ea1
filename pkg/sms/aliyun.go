package sms

import (
	"context"
	"encoding/json"
	"fmt"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi "github.com/alibabacloud-go/dysmsapi-20170525/v3/client"
	"github.com/alibabacloud-go/tea/tea"
)

// AliyunConfig 阿里云短信配置
type AliyunConfig struct {
	AccessKeyID     string
	AccessKeySecret string
	SignName        string
	Endpoint        string // 默认 dysmsapi.aliyuncs.com
	Templates       map[string]string
}

// AliyunSender 阿里云短信发送器
type AliyunSender struct {
	client    *dysmsapi.Client
	signName  string
	templates map[string]string
}

// NewAliyunSender 创建阿里云短信发送器
func NewAliyunSender(cfg *AliyunConfig) (*AliyunSender, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "dysmsapi.aliyuncs.com"
	}

	client, err := dysmsapi.NewClient(&openapi.Config{
		AccessKeyId:     tea.String(cfg.AccessKeyID),
		AccessKeySecret: tea.String(cfg.AccessKeySecret),
		Endpoint:        tea.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("创建阿里云短信客户端失败: %w", err)
	}

	templates := make(map[string]string)
	for k, v := range cfg.Templates {
		templates[k] = v
	}

	return &AliyunSender{
		client:    client,
		signName:  cfg.SignName,
		templates: templates,
	}, nil
}

// Send 发送短信
func (s *AliyunSender) Send(ctx context.Context, phone, template string, params map[string]string) error {
	templateCode, ok := s.templates[template]
	if !ok {
		return fmt.Errorf("短信模板未配置: %s", template)
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("序列化模板参数失败: %w", err)
	}

	req := &dysmsapi.SendSmsRequest{
		PhoneNumbers:  tea.String(phone),
		SignName:      tea.String(s.signName),
		TemplateCode:  tea.String(templateCode),
		TemplateParam: tea.String(string(paramsJSON)),
	}

	resp, err := s.client.SendSms(req)
	if err != nil {
		return fmt.Errorf("发送短信失败: %w", err)
	}

	if resp.Body == nil || resp.Body.Code == nil || *resp.Body.Code != "OK" {
		msg := "未知错误"
		if resp.Body != nil && resp.Body.Message != nil {
			msg = *resp.Body.Message
		}
		return fmt.Errorf("发送短信失败: %s", msg)
	}

	return nil
}

// SendReservationConfirmed 发送预订确认通知
func (s *AliyunSender) SendReservationConfirmed(ctx context.Context, phone, reservationCode, checkInDate string) error {
	return s.Send(ctx, phone, TemplateReservationConfirmed, map[string]string{
		"code":     reservationCode,
		"check_in": checkInDate,
	})
}

// SendReservationCancelled 发送预订取消通知
func (s *AliyunSender) SendReservationCancelled(ctx context.Context, phone, reservationCode string) error {
	return s.Send(ctx, phone, TemplateReservationCancelled, map[string]string{
		"code": reservationCode,
	})
}
