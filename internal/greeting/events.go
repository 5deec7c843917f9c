package greeting

// Action is a button or command token routed back from the transport.
// Category tokens (see ParseCategory) are actions too.
type Action string

const (
	ActionStart       Action = "start"
	ActionNew         Action = "new"
	ActionAddName     Action = "add_name"
	ActionMale        Action = "male"
	ActionFemale      Action = "female"
	ActionInformal    Action = "informal"
	ActionFormal      Action = "formal"
	ActionShort       Action = "short"
	ActionMedium      Action = "medium"
	ActionLong        Action = "long"
	ActionGenerate    Action = "generate"
	ActionNext        Action = "next"
	ActionNextGoodDay Action = "next_good_day"
)

// Event is one inbound user interaction. Action is empty for free-form text
// messages; Text is empty for button presses. Username is informational and
// only consulted when a session is (re)created.
type Event struct {
	Action   Action
	Text     string
	Username string
}

// IsGenerating reports whether handling the action involves a completion
// call, so the transport can show a typing indicator first.
func (a Action) IsGenerating() bool {
	switch a {
	case ActionGenerate, ActionNext, ActionNextGoodDay, Action(CategoryGoodDay):
		return true
	}
	return false
}
