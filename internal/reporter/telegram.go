package reporter

import (
	"context"
	"fmt"
	"html"
	"log"
	"time"

	"go-jobscrape-server/internal/scraper"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sender is the part of tgbotapi.BotAPI we use
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramReporter posts newly stored listings to a chat
type TelegramReporter struct {
	bot    sender
	chatID int64
	//pause between messages to stay under the 429 limit
	delay time.Duration
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{
		bot:    bot,
		chatID: chatID,
		delay:  time.Second,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendJob(job scraper.Job) error {
	return t.SendMessage(FormatJob(job))
}

// NotifyJobs sends one message per listing, stopping early if ctx is done
func (t *TelegramReporter) NotifyJobs(ctx context.Context, jobs []scraper.Job) error {
	sent := 0
	for i, job := range jobs {
		if i > 0 && t.delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(t.delay):
			}
		}
		if err := t.SendJob(job); err != nil {
			return fmt.Errorf("send job %q: %w", job.Title, err)
		}
		sent++
	}
	if sent > 0 {
		log.Printf("📨 Sent %d jobs to Telegram", sent)
	}
	return nil
}

// SendError posts a failed scrape to the chat
func (t *TelegramReporter) SendError(errReq error) error {
	text := fmt.Sprintf("⚠️ <b>Scrape Error</b>:\n%s", html.EscapeString(errReq.Error()))
	return t.SendMessage(text)
}

// FormatJob renders a listing as Telegram HTML
func FormatJob(job scraper.Job) string {
	text := fmt.Sprintf(
		"🔥 <b>%s</b>\n"+
			"🏢 %s\n"+
			"📍 %s",
		html.EscapeString(job.Title),
		html.EscapeString(job.Company),
		html.EscapeString(job.Location),
	)
	if link := job.LinkValue(); link != "" {
		text += fmt.Sprintf("\n🔗 <a href=\"%s\">View Job</a>", html.EscapeString(link))
	}
	return text
}
