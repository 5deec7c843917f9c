package greeting

import "fmt"

// Button is one actionable choice on a menu: a label shown to the user and
// the action token routed back when pressed.
type Button struct {
	Label  string
	Action Action
}

// Reply is what the state machine hands to the presentation layer: body text
// plus ordered rows of buttons. A zero Reply means "nothing to send" (the
// one deliberate silent no-op, free text with no pending name request).
type Reply struct {
	Text     string
	Keyboard [][]Button
}

// Empty reports whether the reply carries nothing to render.
func (r Reply) Empty() bool {
	return r.Text == "" && len(r.Keyboard) == 0
}

const (
	categoryMenuTitle = "🌠 Выберите тип поздравления:"
	paramsMenuTitle   = "🎇 Уточните параметры поздравления:"
	namePromptText    = "Введите имя человека, которого поздравляем:"
)

// checkbox prefixes a toggle label with its selection marker.
func checkbox(label string, selected bool) string {
	if selected {
		return "✅ " + label
	}
	return "◽️" + label
}

// CategoryMenu is the entry menu listing the six occasions.
func CategoryMenu() Reply {
	rows := make([][]Button, 0, len(Categories))
	for _, c := range Categories {
		rows = append(rows, []Button{{Label: c.Label(), Action: Action(c)}})
	}
	return Reply{Text: categoryMenuTitle, Keyboard: rows}
}

// ParamsMenu renders the toggle menu reflecting the session's current
// selections.
func ParamsMenu(s *Session) Reply {
	nameLabel := "Добавить имя"
	if s.Name != "" {
		nameLabel = fmt.Sprintf("Имя: %s", s.Name)
	}

	return Reply{
		Text: paramsMenuTitle,
		Keyboard: [][]Button{
			{{Label: nameLabel, Action: ActionAddName}},
			{
				{Label: checkbox("Мужчине", s.Gender == GenderMale), Action: ActionMale},
				{Label: checkbox("Женщине", s.Gender == GenderFemale), Action: ActionFemale},
			},
			{
				{Label: checkbox("Ты", s.Formality == FormalityInformal), Action: ActionInformal},
				{Label: checkbox("Вы", s.Formality == FormalityFormal), Action: ActionFormal},
			},
			{
				{Label: checkbox("Короткое", s.Length == LengthShort), Action: ActionShort},
				{Label: checkbox("Среднее", s.Length == LengthMedium), Action: ActionMedium},
				{Label: checkbox("Длинное", s.Length == LengthLong), Action: ActionLong},
			},
			{{Label: "Сгенерировать поздравление", Action: ActionGenerate}},
		},
	}
}

// NamePrompt asks for the addressee's name as free text.
func NamePrompt() Reply {
	return Reply{Text: namePromptText}
}

// WishReply presents a generated wish with next/new controls.
func WishReply(c Category, text string) Reply {
	title, lead := c.Heading()
	return Reply{
		Text: fmt.Sprintf("%s\n%s:\n%s", lead, title, text),
		Keyboard: [][]Button{
			{{Label: "Следующее", Action: ActionNext}},
			{{Label: "Новое", Action: ActionNew}},
		},
	}
}

// GoodDayReply presents a good-day wish; "next" regenerates through the
// good-day path rather than the parameterized one.
func GoodDayReply(text string) Reply {
	return Reply{
		Text: "Пожелание хорошего дня:\n" + text,
		Keyboard: [][]Button{
			{{Label: "Следующее", Action: ActionNextGoodDay}},
			{{Label: "Новое", Action: ActionNew}},
		},
	}
}
