package engagement

import "strings"

// indicator maps a label to the substrings that vote for it. Tables are
// ordered: on equal scores the earlier label wins.
type indicator struct {
	label    string
	triggers []string
}

var profileIndicators = []indicator{
	{"trainer", []string{"train", "training", "course", "curriculum", "lesson", "teach"}},
	{"manager", []string{"team", "manage", "lead", "department", "staff", "employee"}},
	{"hr", []string{"HR", "human resources", "onboard", "employee", "hire", "recruitment"}},
	{"consultant", []string{"client", "consult", "implement", "solution", "project"}},
	{"educator", []string{"student", "learn", "education", "school", "class"}},
	{"ld", []string{"L&D", "learning", "development", "skill", "capability"}},
}

var needIndicators = []indicator{
	{"collaboration", []string{"collaborate", "work together", "team", "share", "communicate"}},
	{"knowledge_sharing", []string{"knowledge", "expertise", "share", "document", "wiki"}},
	{"training_delivery", []string{"deliver", "training", "course", "program", "content"}},
	{"engagement", []string{"engage", "participation", "active", "involvement", "motivation"}},
	{"scalability", []string{"scale", "grow", "multiple", "many", "large", "expand"}},
}

var readinessIndicators = []indicator{
	{ReadinessInterested, []string{"interested", "sounds good", "tell me more", "how much", "pricing"}},
	{ReadinessEvaluating, []string{"compare", "alternative", "vs", "better than", "difference"}},
	{ReadinessReady, []string{"implement", "start", "try", "demo", "trial", "meeting", "call"}},
}

// score counts the triggers found in text. text must already be lower case.
func (ind indicator) score(text string) int {
	n := 0
	for _, trigger := range ind.triggers {
		if strings.Contains(text, strings.ToLower(trigger)) {
			n++
		}
	}
	return n
}

// best returns the highest scoring label, or fallback when nothing scored.
func best(table []indicator, text, fallback string) string {
	winner, top := fallback, 0
	for _, ind := range table {
		// strict > keeps the first label on ties
		if s := ind.score(text); s > top {
			winner, top = ind.label, s
		}
	}
	return winner
}

func matching(table []indicator, text string) []string {
	labels := []string{}
	for _, ind := range table {
		if ind.score(text) > 0 {
			labels = append(labels, ind.label)
		}
	}
	return labels
}
