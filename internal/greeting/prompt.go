package greeting

import "fmt"

// Output budgets for the two completion paths.
const (
	WishMaxTokens    = 250
	GoodDayMaxTokens = 150
)

// noNameSentinel tells the model a name was never supplied and must not
// appear in the text (constraint 6 of the prompt).
const noNameSentinel = "Не указано"

// WishPrompt renders a session snapshot into the single instruction string
// sent to the completion endpoint. It is a pure function: identical sessions
// always produce byte-identical prompts, so it is testable without a live
// backend.
func WishPrompt(s Session) string {
	name := s.Name
	if name == "" {
		name = noNameSentinel
	}
	maxChars := s.Length.MaxChars()

	return fmt.Sprintf(
		"Создай %s поздравление с праздником %s для %s, обращение %s."+
			"Имя: %s. Сообщение не должно превышать %d символов и должно быть завершенным."+
			"//1. Учитывай правила правописания. Поздравление должно начинаться и заканчиваться логически завершенной мыслью."+
			"//2. Если количество символов превышает %d, укороти текст так, чтобы мысль осталась завершенной. "+
			"//3. ЗАПРЕЩЕНО отправлять незавершенные фразы. При необходимости, добавь короткие фразы для завершения мысли. "+
			"//4. Имя пользователя %s должно склоняться в соответствии с контекстом поздравления."+
			"//5. Обязательно учитывай %s и %s при формировании текста поздравления!"+
			"//6. Если пользователь не ввел имя %s, то ты формируешь поздравление, учитывая %s, но не указывая его в тексте."+
			"//7. Перед отправкой убедись, что все требования выполнены, и поздравление состоит из логически завершенных предложений.",
		s.Length.Word(),
		s.Category,
		s.Gender.Addressee(),
		s.Formality.Address(),
		name,
		maxChars,
		maxChars,
		name,
		s.Formality.Address(),
		s.Gender.Addressee(),
		name,
		s.Gender.Addressee(),
	)
}
