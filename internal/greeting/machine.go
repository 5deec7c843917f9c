package greeting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrNoSession means an event that requires prior state arrived for a
	// user with no session. That is an ordering bug (or lost state) and is
	// surfaced instead of silently creating a blank session.
	ErrNoSession = errors.New("no session for user")

	// ErrUnknownAction means the action token is not valid in any state.
	ErrUnknownAction = errors.New("unknown action")
)

// Generator is the completion backend boundary: one blocking attempt, prompt
// in, generated text or failure out.
type Generator interface {
	Generate(ctx context.Context, system, prompt string, maxTokens int) (string, error)
}

// Prompts holds the fixed prompt texts the machine sends verbatim.
type Prompts struct {
	System  string
	GoodDay string
}

// Machine applies inbound events to per-user sessions and produces the next
// reply to render. All state mutation funnels through here, one event at a
// time per user.
type Machine struct {
	store   *Store
	gen     Generator
	prompts Prompts
	timeout time.Duration
	log     zerolog.Logger
}

// NewMachine creates a state machine over the given store and generator.
func NewMachine(
	store *Store,
	gen Generator,
	prompts Prompts,
	timeout time.Duration,
	log zerolog.Logger,
) *Machine {
	return &Machine{
		store:   store,
		gen:     gen,
		prompts: prompts,
		timeout: timeout,
		log:     log,
	}
}

// Handle processes one inbound event for a user and returns the reply to
// render. A zero Reply with nil error means the event was a deliberate
// no-op. The per-user lock is held for the whole event, generation call
// included, so same-user events never interleave.
func (m *Machine) Handle(ctx context.Context, userID int64, ev Event) (Reply, error) {
	defer m.store.Acquire(userID)()

	if ev.Action == "" {
		return m.handleText(userID, ev.Text), nil
	}

	switch ev.Action {
	case ActionStart, ActionNew:
		m.store.Reset(userID, ev.Username)
		return CategoryMenu(), nil

	case ActionAddName:
		sess, ok := m.store.Get(userID)
		if !ok {
			return Reply{}, fmt.Errorf("add_name for user %d: %w", userID, ErrNoSession)
		}
		sess.AwaitingName = true
		return NamePrompt(), nil

	case ActionMale, ActionFemale, ActionInformal, ActionFormal,
		ActionShort, ActionMedium, ActionLong:
		sess, ok := m.store.Get(userID)
		if !ok {
			return Reply{}, fmt.Errorf("toggle %q for user %d: %w", ev.Action, userID, ErrNoSession)
		}
		sess.ApplyToggle(ev.Action)
		return ParamsMenu(sess), nil

	case ActionGenerate, ActionNext:
		sess, ok := m.store.Get(userID)
		if !ok {
			return Reply{}, fmt.Errorf("%q for user %d: %w", ev.Action, userID, ErrNoSession)
		}
		return m.generateWish(ctx, userID, sess), nil

	case ActionNextGoodDay:
		sess, ok := m.store.Get(userID)
		if !ok {
			return Reply{}, fmt.Errorf("next_good_day for user %d: %w", userID, ErrNoSession)
		}
		return m.generateGoodDay(ctx, userID, sess), nil
	}

	if cat, ok := ParseCategory(string(ev.Action)); ok {
		sess := m.store.Ensure(userID, ev.Username)
		sess.Category = cat
		if cat == CategoryGoodDay {
			return m.generateGoodDay(ctx, userID, sess), nil
		}
		sess.State = StateParams
		return ParamsMenu(sess), nil
	}

	return Reply{}, fmt.Errorf("action %q for user %d: %w", ev.Action, userID, ErrUnknownAction)
}

// handleText captures a pending name; any other free text is discarded
// without touching the session.
func (m *Machine) handleText(userID int64, text string) Reply {
	sess, ok := m.store.Get(userID)
	if !ok || !sess.AwaitingName {
		return Reply{}
	}
	sess.Name = text
	sess.AwaitingName = false
	return ParamsMenu(sess)
}

// generateWish builds the prompt from the session as it stands and runs one
// completion attempt. A failure becomes a literal error message in the
// reply; the session still lands in the generated state so next/new remain
// usable.
func (m *Machine) generateWish(ctx context.Context, userID int64, sess *Session) Reply {
	sess.State = StateGenerated
	sess.WishCount++

	prompt := WishPrompt(*sess)
	text, err := m.generate(ctx, prompt, WishMaxTokens)
	if err != nil {
		m.log.Error().Err(err).
			Int64("user_id", userID).
			Str("category", string(sess.Category)).
			Msg("wish generation failed")
		text = fmt.Sprintf("Ошибка при генерации поздравления: %v", err)
	}

	m.log.Info().
		Int64("user_id", userID).
		Str("category", string(sess.Category)).
		Int("wish_count", sess.WishCount).
		Msg("wish generated")
	return WishReply(sess.Category, text)
}

func (m *Machine) generateGoodDay(ctx context.Context, userID int64, sess *Session) Reply {
	sess.State = StateGeneratedGoodDay
	sess.WishCount++

	text, err := m.generate(ctx, m.prompts.GoodDay, GoodDayMaxTokens)
	if err != nil {
		m.log.Error().Err(err).
			Int64("user_id", userID).
			Msg("good day wish generation failed")
		text = fmt.Sprintf("Ошибка при генерации пожелания: %v", err)
	}
	return GoodDayReply(text)
}

// generate runs the single bounded completion attempt. No retries: "next"
// is the user's manual regenerate.
func (m *Machine) generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	gctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	text, err := m.gen.Generate(gctx, m.prompts.System, prompt, maxTokens)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
