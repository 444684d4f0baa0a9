package model

// QuestionSet is the whole persisted board: question texts and their reveal
// flags, index-aligned. The index is the only identifier an entry has.
type QuestionSet struct {
	Questions []string `json:"questions"`
	Revealed  []bool   `json:"revealed"`
}

// EmptyQuestionSet returns a set that encodes as {"questions":[],"revealed":[]}.
func EmptyQuestionSet() QuestionSet {
	return QuestionSet{Questions: []string{}, Revealed: []bool{}}
}

// Len returns the number of entries.
func (s QuestionSet) Len() int {
	return len(s.Questions)
}

// IsEmpty reports whether the set has no questions.
func (s QuestionSet) IsEmpty() bool {
	return len(s.Questions) == 0
}

// Clone returns a deep copy with non-nil slices.
func (s QuestionSet) Clone() QuestionSet {
	out := QuestionSet{
		Questions: make([]string, len(s.Questions)),
		Revealed:  make([]bool, len(s.Revealed)),
	}
	copy(out.Questions, s.Questions)
	copy(out.Revealed, s.Revealed)
	return out
}

// Normalize returns a copy whose Revealed has exactly one flag per question.
// Missing flags are filled with false and surplus flags are dropped.
func (s QuestionSet) Normalize() QuestionSet {
	out := EmptyQuestionSet()
	out.Questions = append(out.Questions, s.Questions...)
	out.Revealed = make([]bool, len(s.Questions))
	copy(out.Revealed, s.Revealed)
	return out
}

// Equal reports whether both sets hold the same entries in the same order.
func (s QuestionSet) Equal(other QuestionSet) bool {
	if len(s.Questions) != len(other.Questions) || len(s.Revealed) != len(other.Revealed) {
		return false
	}
	for i := range s.Questions {
		if s.Questions[i] != other.Questions[i] {
			return false
		}
	}
	for i := range s.Revealed {
		if s.Revealed[i] != other.Revealed[i] {
			return false
		}
	}
	return true
}

// SaveQuestionsRequest is the payload for POST /api/questions.
// Both fields must be present JSON arrays of equal length.
type SaveQuestionsRequest struct {
	Questions []string `json:"questions" binding:"required"`
	Revealed  []bool   `json:"revealed" binding:"required,eqfield=Questions"`
}

// ToQuestionSet converts the request into the stored entity.
func (r SaveQuestionsRequest) ToQuestionSet() QuestionSet {
	return QuestionSet{Questions: r.Questions, Revealed: r.Revealed}.Clone()
}
