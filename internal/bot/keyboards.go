package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

const (
	buttonPrevWeek = "◀️ Previous week"
	buttonThisWeek = "📅 This week"
	buttonNextWeek = "Next week ▶️"
	buttonStats    = "📊 My stats"
)

func createMainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonPrevWeek),
			tgbotapi.NewKeyboardButton(buttonThisWeek),
			tgbotapi.NewKeyboardButton(buttonNextWeek),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonStats),
		),
	)
}
