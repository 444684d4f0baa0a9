package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyQuestionSet_EncodesAsEmptyArrays(t *testing.T) {
	raw, err := json.Marshal(EmptyQuestionSet())
	require.NoError(t, err)
	assert.JSONEq(t, `{"questions":[],"revealed":[]}`, string(raw))
}

func TestQuestionSet_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   QuestionSet
		want []bool
	}{
		{"missing flags padded", QuestionSet{Questions: []string{"a", "b"}, Revealed: []bool{true}}, []bool{true, false}},
		{"nil flags", QuestionSet{Questions: []string{"a"}}, []bool{false}},
		{"surplus flags dropped", QuestionSet{Questions: []string{"a"}, Revealed: []bool{true, true}}, []bool{true}},
		{"empty", QuestionSet{}, []bool{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.want, got.Revealed)
			assert.Equal(t, len(got.Questions), len(got.Revealed))
			assert.NotNil(t, got.Questions)
		})
	}
}

func TestQuestionSet_CloneIsIndependent(t *testing.T) {
	orig := QuestionSet{Questions: []string{"a"}, Revealed: []bool{false}}
	c := orig.Clone()
	c.Questions[0] = "b"
	c.Revealed[0] = true

	assert.Equal(t, "a", orig.Questions[0])
	assert.False(t, orig.Revealed[0])
	assert.False(t, orig.Equal(c))
}
