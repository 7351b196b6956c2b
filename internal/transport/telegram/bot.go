package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gpr-quiz-bot/internal/app"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot is the long-polling Telegram transport. It resolves each sender's
// stable numeric id and display name, hands the message text to the
// dispatcher, and sends the reply back to the same conversation.
type Bot struct {
	api              *tgbotapi.BotAPI
	dispatcher       *app.Dispatcher
	guessesChannelID int64
}

func New(token string, dispatcher *app.Dispatcher, guessesChannelID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Bot{
		api:              api,
		dispatcher:       dispatcher,
		guessesChannelID: guessesChannelID,
	}, nil
}

// Run polls for updates until ctx is canceled. Each update is handled on
// its own goroutine; the dispatcher serializes messages per chat.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)
	log.Printf("bot authorized as @%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			go b.handle(ctx, update.Message)
		}
	}
}

func (b *Bot) handle(ctx context.Context, msg *tgbotapi.Message) {
	if b.guessesChannelID != 0 && strings.HasPrefix(msg.Text, "/guess") {
		// best-effort: a failed forward must not lose the guess
		forward := tgbotapi.NewForward(b.guessesChannelID, msg.Chat.ID, msg.MessageID)
		if _, err := b.api.Send(forward); err != nil {
			log.Printf("forward guess to channel: %v", err)
		}
	}

	reply, err := b.dispatcher.HandleMessage(ctx, app.Inbound{
		ChatID:      msg.Chat.ID,
		UserID:      msg.From.ID,
		DisplayName: displayName(msg.From),
		Text:        msg.Text,
	})
	if err != nil {
		log.Printf("handle message: %v", err)
		reply = "Something went wrong, please try again."
	}
	if reply == "" {
		return
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, reply)); err != nil {
		log.Printf("send reply: %v", err)
	}
}

// displayName assembles the first name plus the optional last name.
func displayName(u *tgbotapi.User) string {
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}
