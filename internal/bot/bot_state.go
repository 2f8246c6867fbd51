package bot

import "time"

// UserSession remembers which week a chat is looking at so the navigation
// buttons can move relative to it.
type UserSession struct {
	WeekDate time.Time
}

func (b *Bot) getOrCreateSession(chatID int64) *UserSession {
	b.mu.Lock()
	defer b.mu.Unlock()

	if session, exists := b.userSessions[chatID]; exists {
		return session
	}

	session := &UserSession{WeekDate: b.clock()}
	b.userSessions[chatID] = session
	return session
}

func (b *Bot) setWeekDate(chatID int64, date time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.userSessions[chatID] = &UserSession{WeekDate: date}
}

func (b *Bot) resetSession(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.userSessions, chatID)
}
