package specification

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Contains is a case-insensitive substring match on one column.
type Contains struct {
	Field string
	Query string
}

func (s Contains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(fmt.Sprintf("%s ILIKE ?", s.Field), "%"+escapeLike(s.Query)+"%")
}

// escapeLike stops user input from acting as LIKE wildcards.
func escapeLike(q string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
}

func FaqQuestionContains(q string) Specification { return Contains{Field: "question", Query: q} }
func FaqAnswerContains(q string) Specification   { return Contains{Field: "answer", Query: q} }
func TitleContains(q string) Specification       { return Contains{Field: "title", Query: q} }
func ContentContains(q string) Specification     { return Contains{Field: "content", Query: q} }
