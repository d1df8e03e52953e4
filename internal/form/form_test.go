package form

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContact() *Form { return New(Default(), Options{}) }

func TestForm_InitialState(t *testing.T) {
	s := newContact().Snapshot()

	assert.Equal(t, FieldState{}, s.Fields)
	assert.Zero(t, s.Errors.Len())
	assert.Nil(t, s.Submitted)
}

func TestForm_ChangeShowsOnlyTouchedErrors(t *testing.T) {
	f := newContact()

	errs := f.Change(FirstName, "no")

	require.Equal(t, 1, errs.Len())
	assert.Equal(t, "firstName must have at least 5 characters", errs[FirstName])

	errs = f.Change(FirstName, "Itachi")
	assert.Zero(t, errs.Len(), "errors follow the current value")
}

func TestForm_EmptySubmitShowsThreeErrors(t *testing.T) {
	f := newContact()

	out := f.Submit()

	assert.False(t, out.Accepted)
	assert.Equal(t, 3, out.Errors.Len())
	assert.Equal(t, 3, f.Snapshot().Errors.Len())
	assert.Nil(t, f.Snapshot().Submitted)
}

func TestForm_MissingEmailRejected(t *testing.T) {
	f := newContact()
	f.Change(FirstName, "Itachi")
	f.Change(LastName, "Uchiha")

	out := f.Submit()

	assert.False(t, out.Accepted)
	require.Equal(t, 1, out.Errors.Len())
	assert.Equal(t, "email is a required field", out.Errors[Email])
	assert.Nil(t, f.Snapshot().Submitted)
}

func TestForm_ErrorsStayLiveAfterRejectedSubmit(t *testing.T) {
	f := newContact()
	f.Submit()

	errs := f.Change(FirstName, "Itachi")

	assert.False(t, errs.Has(FirstName))
	assert.True(t, errs.Has(LastName), "untouched fields stay in scope after a submit attempt")
	assert.True(t, errs.Has(Email))
}

func TestForm_AcceptedSubmit(t *testing.T) {
	f := newContact()
	f.Change(FirstName, "Itachi")
	f.Change(LastName, "Uchiha")
	f.Change(Email, "believeit@konoha.com")

	out := f.Submit()
	require.True(t, out.Accepted)

	s := f.Snapshot()
	assert.Equal(t, FieldState{}, s.Fields)
	assert.Zero(t, s.Errors.Len())
	require.NotNil(t, s.Submitted)
	assert.Equal(t, SubmittedValues{FirstName: "Itachi", LastName: "Uchiha", Email: "believeit@konoha.com"}, *s.Submitted)

	// Back in Editing: a fresh change only reports its own field.
	errs := f.Change(FirstName, "no")
	assert.Equal(t, 1, errs.Len())
}

func TestForm_RejectedSubmitKeepsPreviousDisplay(t *testing.T) {
	f := newContact()
	f.Change(FirstName, "Itachi")
	f.Change(LastName, "Uchiha")
	f.Change(Email, "believeit@konoha.com")
	require.True(t, f.Submit().Accepted)

	out := f.Submit()

	assert.False(t, out.Accepted)
	s := f.Snapshot()
	require.NotNil(t, s.Submitted)
	assert.Equal(t, "Itachi", s.Submitted.FirstName)
}

func TestForm_SecondAcceptedSubmitReplacesSnapshot(t *testing.T) {
	f := newContact()
	for _, name := range []string{"Itachi", "Shisui"} {
		f.Change(FirstName, name)
		f.Change(LastName, "Uchiha")
		f.Change(Email, "believeit@konoha.com")
		f.Change(Message, "from "+name)
		require.True(t, f.Submit().Accepted)
	}

	s := f.Snapshot()
	assert.Equal(t, SubmittedValues{
		FirstName: "Shisui",
		LastName:  "Uchiha",
		Email:     "believeit@konoha.com",
		Message:   "from Shisui",
	}, *s.Submitted)
}

func TestForm_SnapshotIsACopy(t *testing.T) {
	f := newContact()
	f.Change(FirstName, "no")

	s := f.Snapshot()
	s.Errors[LastName] = "tampered"

	assert.False(t, f.Snapshot().Errors.Has(LastName))
}

func TestForm_TrimSpace(t *testing.T) {
	f := New(Default(), Options{TrimSpace: true})
	f.Change(FirstName, "  Itachi  ")
	f.Change(LastName, " Uchiha")
	f.Change(Email, "believeit@konoha.com ")

	out := f.Submit()

	require.True(t, out.Accepted)
	assert.Equal(t, "Itachi", out.Submitted.FirstName)
	assert.Equal(t, "Uchiha", out.Submitted.LastName)
	assert.Equal(t, "believeit@konoha.com", out.Submitted.Email)
}

func TestForm_ConcurrentEvents(t *testing.T) {
	f := newContact()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f.Change(Message, fmt.Sprintf("message %d", i))
			_ = f.Snapshot()
		}(i)
	}
	wg.Wait()

	assert.Zero(t, f.Snapshot().Errors.Len())
}

func TestForm_SubmitWith(t *testing.T) {
	f := newContact()
	f.Change(Message, "kept from an earlier keystroke")

	out := f.SubmitWith(map[Field]string{
		FirstName: "Jonathan",
		LastName:  "Doe",
		Email:     "jon@example.com",
	})

	require.True(t, out.Accepted)
	assert.Equal(t, SubmittedValues{
		FirstName: "Jonathan",
		LastName:  "Doe",
		Email:     "jon@example.com",
		Message:   "kept from an earlier keystroke",
	}, *out.Submitted)
	assert.Equal(t, FieldState{}, f.Snapshot().Fields)

	out = f.SubmitWith(map[Field]string{FirstName: "no"})
	assert.False(t, out.Accepted)
	assert.Equal(t, "no", out.Fields.FirstName)
	assert.True(t, out.Errors.Has(FirstName))
	assert.True(t, out.Errors.Has(Email), "every field is in scope on submit")
}

func TestForm_SubmitWithDoesNotInterleave(t *testing.T) {
	f := newContact()
	sets := []map[Field]string{
		{FirstName: "Jonathan", LastName: "Doe", Email: "jon@example.com", Message: "one"},
		{FirstName: "Kakashi", LastName: "Hatake", Email: "kakashi@example.org", Message: "two"},
	}

	var wg sync.WaitGroup
	for _, set := range sets {
		set := set
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				out := f.SubmitWith(set)
				if !assert.True(t, out.Accepted) {
					return
				}
				assert.Equal(t, SubmittedValues{
					FirstName: set[FirstName],
					LastName:  set[LastName],
					Email:     set[Email],
					Message:   set[Message],
				}, *out.Submitted, "submitted values come from one post")
			}
		}()
	}
	wg.Wait()
}
