package question

// Display is the learner-facing view of a question: the correct label and
// the explanation are never part of it.
type Display struct {
	Number           int        `json:"number"`
	ID               int64      `json:"id"`
	Text             string     `json:"question_text"`
	OptionA          string     `json:"option_a"`
	OptionB          string     `json:"option_b"`
	OptionC          string     `json:"option_c"`
	OptionD          string     `json:"option_d"`
	OptionE          string     `json:"option_e"`
	Difficulty       Difficulty `json:"difficulty"`
	Type             Type       `json:"question_type"`
	DatasetReference *string    `json:"dataset_reference,omitempty"`
}

// Redact converts an exam into its display form, numbered from 1 in
// presentation order.
func Redact(questions []Question) []Display {
	out := make([]Display, len(questions))
	for i, q := range questions {
		out[i] = Display{
			Number:           i + 1,
			ID:               q.ID,
			Text:             q.Text,
			OptionA:          q.Options[0],
			OptionB:          q.Options[1],
			OptionC:          q.Options[2],
			OptionD:          q.Options[3],
			OptionE:          q.Options[4],
			Difficulty:       q.Difficulty,
			Type:             q.Type,
			DatasetReference: q.DatasetReference,
		}
	}
	return out
}

// CategorySummary counts questions per category id.
func CategorySummary(questions []Question) map[int64]int {
	summary := make(map[int64]int)
	for _, q := range questions {
		summary[q.CategoryID]++
	}
	return summary
}

// DifficultySummary counts questions per difficulty. Every difficulty is
// present in the result, zero when absent.
func DifficultySummary(questions []Question) map[Difficulty]int {
	summary := make(map[Difficulty]int, len(Difficulties))
	for _, d := range Difficulties {
		summary[d] = 0
	}
	for _, q := range questions {
		summary[q.Difficulty]++
	}
	return summary
}

// TypeSummary counts questions per type, both types always present.
func TypeSummary(questions []Question) map[Type]int {
	summary := map[Type]int{TypeConceptual: 0, TypeSyntax: 0}
	for _, q := range questions {
		summary[q.Type]++
	}
	return summary
}
