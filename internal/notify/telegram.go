package notify

import (
	"fmt"
	"html"
	"log"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"artjobs-engine/internal/config"
	"artjobs-engine/internal/store"
)

// TelegramReporter pushes high-relevance listings to a chat the moment they
// land, so good postings are not stuck waiting for the next email digest.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(cfg config.Config) (*TelegramReporter, error) {
	if !cfg.Telegram.Enabled {
		return nil, fmt.Errorf("telegram is disabled")
	}
	if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
		return nil, fmt.Errorf("telegram token or chat_id missing")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &TelegramReporter{bot: bot, chatID: cfg.Telegram.ChatID}, nil
}

func (t *TelegramReporter) SendJob(j store.Job) error {
	text := fmt.Sprintf(
		"🎨 <b>%s</b>\n"+
			"🏢 %s\n"+
			"📍 %s\n"+
			"⭐ relevance %d/10\n"+
			"🔗 <a href=\"%s\">View listing</a>",
		html.EscapeString(j.Title),
		html.EscapeString(j.Company),
		html.EscapeString(orDash(j.Location)),
		j.RelevanceScore,
		j.URL,
	)
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML"
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

// JobNotifier adapts the reporter to the callback shape the scrape pipeline
// wants. Errors are logged, not propagated; a dead bot must not fail a run.
func (t *TelegramReporter) JobNotifier() func(store.Job) {
	return func(j store.Job) {
		if err := t.SendJob(j); err != nil {
			log.Printf("[telegram] send failed: %v", err)
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Dispatcher resolves the notifier callback against whatever config a
// scrape pass runs with, so enabling Telegram through the API takes
// effect on the next pass without a restart. The bot is cached and only
// rebuilt when the token or chat id changes, because constructing one
// hits the Telegram API.
type Dispatcher struct {
	mu  sync.Mutex
	key string
	rep *TelegramReporter
}

func (d *Dispatcher) For(cfg config.Config) func(store.Job) {
	if !cfg.Telegram.Enabled {
		return nil
	}
	key := fmt.Sprintf("%s|%d", cfg.Telegram.Token, cfg.Telegram.ChatID)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.key != key {
		rep, err := NewTelegramReporter(cfg)
		if err != nil {
			log.Printf("[telegram] setup failed: %v", err)
			rep = nil
		}
		// Cache failures under the same key too; retrying every pass
		// with the same bad token would just spam the log.
		d.key, d.rep = key, rep
	}
	if d.rep == nil {
		return nil
	}
	return d.rep.JobNotifier()
}
