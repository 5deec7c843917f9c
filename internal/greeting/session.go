package greeting

import "time"

// Category is the occasion a wish is generated for. Its value doubles as the
// callback action token on the category menu.
type Category string

const (
	CategoryUnset      Category = ""
	CategoryGoodDay    Category = "good_day"
	CategoryBirthday   Category = "birthday"
	CategoryFebruary23 Category = "february_23"
	CategoryMarch8     Category = "march_8"
	CategoryNewYear    Category = "new_year"
	CategoryChristmas  Category = "christmas"
)

// Categories lists the selectable occasions in menu order.
var Categories = []Category{
	CategoryGoodDay,
	CategoryBirthday,
	CategoryFebruary23,
	CategoryMarch8,
	CategoryNewYear,
	CategoryChristmas,
}

var categoryLabels = map[Category]string{
	CategoryGoodDay:    "Пожелание хорошего дня 🌞",
	CategoryBirthday:   "День рождения 🎂",
	CategoryFebruary23: "2️⃣3️⃣ февраля 🪖",
	CategoryMarch8:     "8 марта 💐",
	CategoryNewYear:    "Новый год 🎇",
	CategoryChristmas:  "Рождество 🎄",
}

// Label returns the button text shown on the category menu.
func (c Category) Label() string {
	return categoryLabels[c]
}

// Heading returns the result header pair (occasion title, lead line) used
// above a generated wish.
func (c Category) Heading() (title, lead string) {
	switch c {
	case CategoryGoodDay:
		return categoryLabels[c], "Поздравление"
	case CategoryBirthday, CategoryFebruary23, CategoryMarch8, CategoryNewYear, CategoryChristmas:
		return categoryLabels[c], "Поздравление с праздником"
	default:
		return "Праздник", "Поздравление"
	}
}

// ParseCategory maps an action token to a Category, reporting whether the
// token names one.
func ParseCategory(token string) (Category, bool) {
	c := Category(token)
	_, ok := categoryLabels[c]
	return c, ok
}

// Gender of the wish addressee. The zero value means "not chosen".
type Gender int

const (
	GenderUnset Gender = iota
	GenderMale
	GenderFemale
)

// Addressee returns the dative addressee word used in prompts.
func (g Gender) Addressee() string {
	switch g {
	case GenderMale:
		return "мужчине"
	case GenderFemale:
		return "женщине"
	default:
		return "человеку"
	}
}

// Formality of address (ты/вы). The zero value means "not chosen".
type Formality int

const (
	FormalityUnset Formality = iota
	FormalityInformal
	FormalityFormal
)

// Address returns the address-style phrase used in prompts, empty when the
// user never picked one.
func (f Formality) Address() string {
	switch f {
	case FormalityInformal:
		return "на ты"
	case FormalityFormal:
		return "на вы"
	default:
		return ""
	}
}

// Length of the generated wish. The zero value means "not chosen" and
// resolves to long at generation time.
type Length int

const (
	LengthUnset Length = iota
	LengthShort
	LengthMedium
	LengthLong
)

// Word returns the adjective used in prompts.
func (l Length) Word() string {
	switch l {
	case LengthShort:
		return "короткое"
	case LengthMedium:
		return "среднее"
	default:
		return "длинное"
	}
}

// MaxChars returns the character ceiling stated in prompts.
func (l Length) MaxChars() int {
	switch l {
	case LengthShort:
		return 150
	case LengthMedium:
		return 250
	default:
		return 350
	}
}

// State is the conversation position of a session, stored explicitly rather
// than reconstructed from which fields happen to be set.
type State int

const (
	// StateIdle means the category menu is showing and nothing is chosen yet.
	StateIdle State = iota
	// StateParams means the parameter menu is active and toggles may be flipped.
	StateParams
	// StateGenerated means a wish was produced and next/new are offered.
	StateGenerated
	// StateGeneratedGoodDay is the generated state of the short-circuit
	// good-day path, regenerated via its own action token.
	StateGeneratedGoodDay
)

// Session is one user's in-progress selection record. It lives only in
// memory and is wiped whenever the user restarts the flow.
type Session struct {
	Username     string
	Category     Category
	Name         string
	AwaitingName bool
	Gender       Gender
	Formality    Formality
	Length       Length
	State        State
	WishCount    int
	LastSeen     time.Time
}

// ApplyToggle applies a style toggle to its group. Groups are enumerated
// fields, so picking an option inherently clears its siblings. Reports
// whether the action named a known toggle.
func (s *Session) ApplyToggle(a Action) bool {
	switch a {
	case ActionMale:
		s.Gender = GenderMale
	case ActionFemale:
		s.Gender = GenderFemale
	case ActionInformal:
		s.Formality = FormalityInformal
	case ActionFormal:
		s.Formality = FormalityFormal
	case ActionShort:
		s.Length = LengthShort
	case ActionMedium:
		s.Length = LengthMedium
	case ActionLong:
		s.Length = LengthLong
	default:
		return false
	}
	return true
}
