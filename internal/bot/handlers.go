package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"

	"gym-portal/internal/repository"
	"gym-portal/internal/service"
)

const (
	dateInputLayout = "02.01.2006"
	requestTimeout  = 10 * time.Second
)

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	if message.From == nil || message.Chat == nil {
		return
	}
	chatID := message.Chat.ID
	telegramID := int64(message.From.ID)

	b.log.Debug("message received",
		zap.String("username", message.From.UserName),
		zap.String("text", message.Text),
	)

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.resetSession(chatID)
			b.sendWithKeyboard(chatID, "👋 Welcome! Use the buttons below to follow your weekly attendance.")
		case "week":
			date := b.clock()
			if arg := strings.TrimSpace(message.CommandArguments()); arg != "" {
				parsed, err := time.ParseInLocation(dateInputLayout, arg, date.Location())
				if err != nil {
					b.sendMessage(chatID, "❌ Invalid date. Use DD.MM.YYYY")
					return
				}
				date = parsed
			}
			b.showWeek(chatID, telegramID, date)
		case "stats":
			b.showStats(chatID, telegramID, b.getOrCreateSession(chatID).WeekDate)
		default:
			b.sendMessage(chatID, "Unknown command. Try /week or /stats")
		}
		return
	}

	session := b.getOrCreateSession(chatID)
	switch message.Text {
	case buttonPrevWeek:
		b.showWeek(chatID, telegramID, session.WeekDate.AddDate(0, 0, -7))
	case buttonNextWeek:
		b.showWeek(chatID, telegramID, session.WeekDate.AddDate(0, 0, 7))
	case buttonThisWeek:
		b.showWeek(chatID, telegramID, b.clock())
	case buttonStats:
		b.showStats(chatID, telegramID, session.WeekDate)
	default:
		b.sendWithKeyboard(chatID, "Please choose one of the options below")
	}
}

func (b *Bot) showWeek(chatID, telegramID int64, date time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	week, err := b.timelineService.GetWeekForTelegramUser(ctx, telegramID, date)
	if err != nil {
		b.sendLookupError(chatID, telegramID, err)
		return
	}

	b.setWeekDate(chatID, date)
	b.sendWithKeyboard(chatID, formatWeek(week))
}

func (b *Bot) showStats(chatID, telegramID int64, date time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	week, err := b.timelineService.GetWeekForTelegramUser(ctx, telegramID, date)
	if err != nil {
		b.sendLookupError(chatID, telegramID, err)
		return
	}
	b.sendWithKeyboard(chatID, formatStats(week))
}

func (b *Bot) sendLookupError(chatID, telegramID int64, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		b.sendMessage(chatID, "You are not registered yet. Ask the front desk to link your Telegram account.")
	case errors.Is(err, service.ErrNoActiveSubscription):
		b.sendWithKeyboard(chatID, "You have no active subscription for that week.")
	default:
		b.log.Error("timeline lookup failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
		b.sendMessage(chatID, "❌ Something went wrong, please try again later")
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendWithKeyboard(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = createMainKeyboard()
	b.send(msg)
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("send failed", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
	}
}
