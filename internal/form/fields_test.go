package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	s := FieldState{}
	s = Apply(s, Change(FirstName, "Itachi"), Options{})
	s = Apply(s, Change(Message, "  hi  "), Options{})

	assert.Equal(t, FieldState{FirstName: "Itachi", Message: "  hi  "}, s)

	s = Apply(s, Change(Field("phone"), "555"), Options{})
	assert.Equal(t, FieldState{FirstName: "Itachi", Message: "  hi  "}, s, "unknown field is a no-op")

	assert.Equal(t, FieldState{}, Apply(s, Reset(), Options{}))
}

func TestApply_TrimSpace(t *testing.T) {
	s := Apply(FieldState{}, Change(Email, "  believeit@konoha.com \t"), Options{TrimSpace: true})
	assert.Equal(t, "believeit@konoha.com", s.Email)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := FieldState{LastName: "Uchiha"}
	_ = Apply(in, Change(LastName, "Uzumaki"), Options{})
	assert.Equal(t, "Uchiha", in.LastName)
}

func TestParseField(t *testing.T) {
	for _, f := range AllFields {
		got, ok := ParseField(string(f))
		assert.True(t, ok)
		assert.Equal(t, f, got)
	}
	_, ok := ParseField("FirstName")
	assert.False(t, ok)
}
