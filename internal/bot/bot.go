package bot

import (
	"context"
	"errors"
	"strings"

	tbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/mkazanov/wishbot/internal/config"
	"github.com/mkazanov/wishbot/internal/greeting"
)

const staleSessionText = "Сессия не найдена. Отправьте /start, чтобы начать заново."

type Params struct {
	fx.In

	Config  *config.Config
	Machine *greeting.Machine
	Logger  zerolog.Logger
}

type Result struct {
	fx.Out

	Bot *tbot.Bot
}

func New(lc fx.Lifecycle, p Params) (Result, error) {
	h := &handler{
		machine: p.Machine,
		log:     p.Logger,
	}

	opts := []tbot.Option{
		tbot.WithDefaultHandler(h.handleText),
		tbot.WithCallbackQueryDataHandler("", tbot.MatchTypePrefix, h.handleCallback),
	}

	tg, err := tbot.New(p.Config.Token, opts...)
	if err != nil {
		return Result{}, err
	}

	tg.RegisterHandler(tbot.HandlerTypeMessageText, "/start", tbot.MatchTypeExact, h.handleStart)

	lc.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				p.Logger.Info().Msg("starting telegram bot...")
				go tg.Start(context.Background())
				return nil
			},
			OnStop: func(ctx context.Context) error {
				p.Logger.Info().Msg("stopping telegram bot...")
				return nil
			},
		},
	)

	return Result{
		Bot: tg,
	}, nil
}

func Module() fx.Option {
	return fx.Module(
		"bot",
		fx.Provide(
			New,
		),
		fx.Invoke(
			func(bot *tbot.Bot) {},
		),
	)
}

// handler routes Telegram updates into state machine events and renders the
// replies back out.
type handler struct {
	machine *greeting.Machine
	log     zerolog.Logger
}

func (h *handler) handleStart(ctx context.Context, tg *tbot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	reply, err := h.machine.Handle(ctx, update.Message.From.ID, greeting.Event{
		Action:   greeting.ActionStart,
		Username: update.Message.From.Username,
	})
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", update.Message.From.ID).Msg("unable to handle /start")
		return
	}

	tg.SendMessage(ctx, &tbot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        reply.Text,
		ReplyMarkup: keyboard(reply),
	})
}

func (h *handler) handleCallback(ctx context.Context, tg *tbot.Bot, update *models.Update) {
	q := update.CallbackQuery
	if q == nil {
		return
	}

	// Stop the button spinner right away; generation may take a while.
	tg.AnswerCallbackQuery(ctx, &tbot.AnswerCallbackQueryParams{
		CallbackQueryID: q.ID,
	})

	msg := q.Message.Message
	if msg == nil {
		h.log.Warn().Int64("user_id", q.From.ID).Msg("callback for inaccessible message")
		return
	}
	chatID := msg.Chat.ID

	action := greeting.Action(q.Data)
	if action.IsGenerating() {
		tg.SendChatAction(ctx, &tbot.SendChatActionParams{
			ChatID: chatID,
			Action: models.ChatActionTyping,
		})
	}

	reply, err := h.machine.Handle(ctx, q.From.ID, greeting.Event{
		Action:   action,
		Username: q.From.Username,
	})
	if err != nil {
		h.log.Error().Err(err).
			Int64("user_id", q.From.ID).
			Str("action", q.Data).
			Msg("unable to handle callback action")
		if errors.Is(err, greeting.ErrNoSession) {
			tg.SendMessage(ctx, &tbot.SendMessageParams{
				ChatID: chatID,
				Text:   staleSessionText,
			})
		}
		return
	}
	if reply.Empty() {
		return
	}

	// A restart opens a fresh message below the old result; everything else
	// updates the menu in place.
	if action == greeting.ActionNew {
		tg.SendMessage(ctx, &tbot.SendMessageParams{
			ChatID:      chatID,
			Text:        reply.Text,
			ReplyMarkup: keyboard(reply),
		})
		return
	}

	if _, err := tg.EditMessageText(ctx, &tbot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   msg.ID,
		Text:        reply.Text,
		ReplyMarkup: keyboard(reply),
	}); err != nil {
		h.log.Error().Err(err).
			Int64("chat_id", chatID).
			Str("action", q.Data).
			Msg("unable to edit menu message")
	}
}

func (h *handler) handleText(ctx context.Context, tg *tbot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	// Group chats send commands mention-suffixed ("/start@botname"), which
	// the exact-match registration does not catch.
	if isStartCommand(update.Message.Text) {
		h.handleStart(ctx, tg, update)
		return
	}
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	reply, err := h.machine.Handle(ctx, update.Message.From.ID, greeting.Event{
		Text: update.Message.Text,
	})
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", update.Message.From.ID).Msg("unable to handle text")
		return
	}
	// Free text with no pending name request is a deliberate no-op.
	if reply.Empty() {
		return
	}

	tg.SendMessage(ctx, &tbot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        reply.Text,
		ReplyMarkup: keyboard(reply),
	})
}

// isStartCommand reports whether a message is the /start command, with or
// without a bot-mention suffix or deep-link payload.
func isStartCommand(text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	cmd, _, _ := strings.Cut(fields[0], "@")
	return cmd == "/start"
}

// keyboard converts a reply's button rows into a Telegram inline keyboard.
func keyboard(r greeting.Reply) models.ReplyMarkup {
	if len(r.Keyboard) == 0 {
		return nil
	}

	rows := make([][]models.InlineKeyboardButton, 0, len(r.Keyboard))
	for _, row := range r.Keyboard {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, models.InlineKeyboardButton{
				Text:         b.Label,
				CallbackData: string(b.Action),
			})
		}
		rows = append(rows, buttons)
	}

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
