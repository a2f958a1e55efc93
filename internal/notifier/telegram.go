package notifier

import (
	"Pulse/internal/api/config"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramTransport 通过 Bot API 投递 HTML 格式告警
type TelegramTransport struct {
	client   *resty.Client
	botToken string
	chatID   string
}

func NewTelegramTransport(cfg config.TelegramConfig) *TelegramTransport {
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &TelegramTransport{
		client:   client,
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
	}
}

type telegramResp struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description"`
}

func (s *TelegramTransport) Send(ctx context.Context, text string) error {
	if s.botToken == "" || s.chatID == "" {
		return fmt.Errorf("telegram transport not configured")
	}

	var result telegramResp
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"chat_id":                  s.chatID,
			"text":                     text,
			"parse_mode":               "HTML",
			"disable_web_page_preview": "true",
		}).
		SetResult(&result).
		Post(fmt.Sprintf("%s/bot%s/sendMessage", telegramAPIBase, s.botToken))
	if err != nil {
		return err
	}
	if resp.IsError() || !result.Ok {
		return fmt.Errorf("telegram send failed: status=%d desc=%s", resp.StatusCode(), result.Description)
	}
	return nil
}
