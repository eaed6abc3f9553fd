package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todoapp/internal/model"
)

func TestSignup(t *testing.T) {
	tests := []struct {
		name    string
		in      SignupInput
		wantMsg string
	}{
		{
			name: "valid",
			in:   SignupInput{Email: "a@example.com", Password: "abc12345", ConfirmPassword: "abc12345"},
		},
		{
			name:    "invalid email",
			in:      SignupInput{Email: "not-an-email", Password: "abc12345", ConfirmPassword: "abc12345"},
			wantMsg: "enter a valid email address",
		},
		{
			name:    "password too short",
			in:      SignupInput{Email: "a@example.com", Password: "ab1", ConfirmPassword: "ab1"},
			wantMsg: "password must be at least 8 characters",
		},
		{
			name:    "password without digit",
			in:      SignupInput{Email: "a@example.com", Password: "abcdefgh", ConfirmPassword: "abcdefgh"},
			wantMsg: "password must contain both letters and digits",
		},
		{
			name:    "password without letter",
			in:      SignupInput{Email: "a@example.com", Password: "12345678", ConfirmPassword: "12345678"},
			wantMsg: "password must contain both letters and digits",
		},
		{
			name:    "digit before letter is fine",
			in:      SignupInput{Email: "a@example.com", Password: "1234abcd", ConfirmPassword: "1234abcd"},
			wantMsg: "",
		},
		{
			name:    "confirmation mismatch",
			in:      SignupInput{Email: "a@example.com", Password: "abc12345", ConfirmPassword: "abc12346"},
			wantMsg: "passwords do not match",
		},
		{
			name:    "email error reported before password error",
			in:      SignupInput{Email: "bad", Password: "x", ConfirmPassword: "y"},
			wantMsg: "enter a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := Signup(tt.in)
			assert.Equal(t, tt.wantMsg, issues.First())
		})
	}
}

func TestLogin(t *testing.T) {
	assert.Empty(t, Login(LoginInput{Email: "a@example.com", Password: "x"}))

	issues := Login(LoginInput{Email: "a@example.com", Password: ""})
	assert.Equal(t, "enter your password", issues.First())

	issues = Login(LoginInput{Email: "nope", Password: "x"})
	assert.Equal(t, "enter a valid email address", issues.First())
}

func TestChangePassword(t *testing.T) {
	valid := ChangePasswordInput{
		CurrentPassword:    "old12345",
		NewPassword:        "new12345",
		ConfirmNewPassword: "new12345",
	}
	assert.Empty(t, ChangePassword(valid))

	in := valid
	in.CurrentPassword = ""
	assert.Equal(t, "enter your current password", ChangePassword(in).First())

	in = valid
	in.NewPassword = "short1"
	in.ConfirmNewPassword = "short1"
	assert.Equal(t, "password must be at least 8 characters", ChangePassword(in).First())

	in = valid
	in.ConfirmNewPassword = "different1"
	assert.Equal(t, "new passwords do not match", ChangePassword(in).First())
}

func TestProfileTrimsEmailBeforeCheck(t *testing.T) {
	out, issues := Profile(ProfileInput{Email: "  user@example.com  "})
	require.Empty(t, issues)
	assert.Equal(t, "user@example.com", out.Email)

	_, issues = Profile(ProfileInput{Email: "   "})
	assert.Equal(t, "enter a valid email address", issues.First())
}

func TestCreateTodoTitleRules(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantMsg string
	}{
		{name: "valid", title: "buy milk"},
		{name: "empty", title: "", wantMsg: "enter a title"},
		{name: "whitespace only", title: "   ", wantMsg: "title cannot be only whitespace"},
		{name: "exactly 100 runes", title: strings.Repeat("x", 100)},
		{name: "101 runes", title: strings.Repeat("x", 101), wantMsg: "title must be 100 characters or less"},
		{name: "101 runes surrounded by spaces trims to valid", title: "  " + strings.Repeat("x", 100) + "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, issues := CreateTodo(CreateTodoInput{Title: tt.title})
			assert.Equal(t, tt.wantMsg, issues.First())
		})
	}
}

func TestCreateTodoWhitespaceDistinctFromEmpty(t *testing.T) {
	_, emptyIssues := CreateTodo(CreateTodoInput{Title: ""})
	_, blankIssues := CreateTodo(CreateTodoInput{Title: "   "})

	require.NotEmpty(t, emptyIssues)
	require.NotEmpty(t, blankIssues)
	assert.NotEqual(t, emptyIssues.First(), blankIssues.First())
}

func TestCreateTodoNormalizes(t *testing.T) {
	memo := "  note  "
	out, issues := CreateTodo(CreateTodoInput{Title: "  task  ", Memo: &memo})
	require.Empty(t, issues)

	assert.Equal(t, "task", out.Title)
	require.NotNil(t, out.Memo)
	assert.Equal(t, "note", *out.Memo)
	assert.Equal(t, model.PriorityMedium, out.Priority)

	blank := ""
	out, issues = CreateTodo(CreateTodoInput{Title: "task", Memo: &blank})
	require.Empty(t, issues)
	assert.Nil(t, out.Memo)
}

func TestCreateTodoMemoTooLong(t *testing.T) {
	long := strings.Repeat("m", 1001)
	_, issues := CreateTodo(CreateTodoInput{Title: "task", Memo: &long})
	assert.Equal(t, "memo must be 1000 characters or less", issues.First())
}

func TestCreateTodoPriority(t *testing.T) {
	out, issues := CreateTodo(CreateTodoInput{Title: "task", Priority: model.PriorityUrgent})
	require.Empty(t, issues)
	assert.Equal(t, model.PriorityUrgent, out.Priority)

	_, issues = CreateTodo(CreateTodoInput{Title: "task", Priority: "asap"})
	assert.Equal(t, "invalid priority", issues.First())
}

func TestUpdateTodoRequiresID(t *testing.T) {
	_, issues := UpdateTodo(UpdateTodoInput{ID: "", Title: "task"})
	assert.Equal(t, "id is required", issues.First())

	_, issues = UpdateTodo(UpdateTodoInput{ID: "abc", Title: "task"})
	assert.Empty(t, issues)
}

func TestCanonicalEmail(t *testing.T) {
	assert.Equal(t, "test@example.com", CanonicalEmail("  TEST@EXAMPLE.COM  "))
	assert.Equal(t, "a@b.co", CanonicalEmail("a@b.co"))
}

func TestNormalizeName(t *testing.T) {
	out := NormalizeName(model.Unset[string]())
	assert.False(t, out.Set)

	out = NormalizeName(model.Null[string]())
	assert.True(t, out.Set)
	assert.False(t, out.Valid)

	out = NormalizeName(model.Some(""))
	assert.True(t, out.Set)
	assert.False(t, out.Valid)

	out = NormalizeName(model.Some("   "))
	assert.True(t, out.Set)
	assert.False(t, out.Valid)

	out = NormalizeName(model.Some("  Ada  "))
	require.True(t, out.Set)
	require.True(t, out.Valid)
	assert.Equal(t, "Ada", out.Value)
}

func TestNormalizeProfile(t *testing.T) {
	out := NormalizeProfile(ProfileInput{
		Name:  model.Some("  Ada  "),
		Email: "  TEST@EXAMPLE.COM  ",
	})
	assert.Equal(t, "test@example.com", out.Email)
	require.True(t, out.Name.Valid)
	assert.Equal(t, "Ada", out.Name.Value)
}
