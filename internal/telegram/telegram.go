package telegram

import (
	"WooWithERPNext/internal/config"
	"WooWithERPNext/pkg/logging"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pkg/errors"
)

// SendMessage delivers a run report to the configured chat.
func SendMessage(cfg *config.Config, text string) error {
	if cfg.TELEGRAM.BotToken == "" || cfg.TELEGRAM.ChatID == 0 {
		return errors.New("telegram is not configured")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TELEGRAM.BotToken)
	if err != nil {
		return errors.Wrap(err, "failed tgbotapi.NewBotAPI")
	}

	msg := tgbotapi.NewMessage(cfg.TELEGRAM.ChatID, text)
	_, err = bot.Send(msg)
	if err != nil {
		return errors.Wrap(err, "failed bot.Send")
	}
	return nil
}

// SendMessageToTelegramWithLogError is the best-effort variant: reporting
// must never fail a sync run.
func SendMessageToTelegramWithLogError(cfg *config.Config, text string) {
	logger := logging.GetLogger()
	if !cfg.TELEGRAM.Report {
		return
	}
	if err := SendMessage(cfg, text); err != nil {
		logger.Errorf("failed telegram.SendMessage(), error: %v", err)
	}
}
