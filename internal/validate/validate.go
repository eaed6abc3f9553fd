// Package validate holds the per-field input rules and normalization
// helpers shared by every mutating operation. Rules run in a fixed
// order and the first failing rule's message is the one shown to the
// user.
package validate

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nhle/todoapp/internal/model"
)

// Issue is a single failed rule attached to a field.
type Issue struct {
	Field   string
	Message string
}

// Issues is the ordered list of failed rules for one input.
type Issues []Issue

// First returns the first issue's message, or "" when the list is empty.
func (is Issues) First() string {
	if len(is) == 0 {
		return ""
	}
	return is[0].Message
}

const (
	titleMaxLen = 100
	memoMaxLen  = 1000
	passwordMin = 8
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	letterRe = regexp.MustCompile(`[a-zA-Z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
)

// SignupInput is the raw signup form payload.
type SignupInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginInput is the raw login form payload.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileInput is the raw profile update payload. Name is three-state:
// omitting it leaves the stored name untouched, while null or a blank
// string clears it.
type ProfileInput struct {
	Name  model.Optional[string] `json:"name"`
	Email string                 `json:"email"`
}

// ChangePasswordInput is the raw change-password form payload.
type ChangePasswordInput struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// CreateTodoInput carries the fields for a new todo.
type CreateTodoInput struct {
	Title    string     `json:"title"`
	Memo     *string    `json:"memo,omitempty"`
	Priority string     `json:"priority,omitempty"`
	DueDate  *time.Time `json:"due_date,omitempty"`
}

// UpdateTodoInput carries a full-field replacement for an existing todo.
type UpdateTodoInput struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Memo        *string    `json:"memo,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Signup validates a signup payload.
func Signup(in SignupInput) Issues {
	var issues Issues
	issues = append(issues, checkEmail("email", in.Email)...)
	issues = append(issues, checkNewPassword("password", in.Password)...)
	if in.Password != in.ConfirmPassword {
		issues = append(issues, Issue{Field: "confirmPassword", Message: "passwords do not match"})
	}
	return issues
}

// Login validates a login payload.
func Login(in LoginInput) Issues {
	var issues Issues
	issues = append(issues, checkEmail("email", in.Email)...)
	if in.Password == "" {
		issues = append(issues, Issue{Field: "password", Message: "enter your password"})
	}
	return issues
}

// Profile validates a profile update payload. The email is trimmed
// before the syntax check; name has no validation of its own, its
// blankness is handled by normalization.
func Profile(in ProfileInput) (ProfileInput, Issues) {
	in.Email = strings.TrimSpace(in.Email)
	var issues Issues
	issues = append(issues, checkEmail("email", in.Email)...)
	return in, issues
}

// ChangePassword validates a change-password payload.
func ChangePassword(in ChangePasswordInput) Issues {
	var issues Issues
	if in.CurrentPassword == "" {
		issues = append(issues, Issue{Field: "currentPassword", Message: "enter your current password"})
	}
	issues = append(issues, checkNewPassword("newPassword", in.NewPassword)...)
	if in.NewPassword != in.ConfirmNewPassword {
		issues = append(issues, Issue{Field: "confirmNewPassword", Message: "new passwords do not match"})
	}
	return issues
}

// CreateTodo validates and normalizes a new-todo payload. On success
// the returned input has a trimmed title, an absent-or-trimmed memo,
// and a defaulted priority.
func CreateTodo(in CreateTodoInput) (CreateTodoInput, Issues) {
	var issues Issues
	issues = append(issues, checkTitle(in.Title)...)
	issues = append(issues, checkMemo(in.Memo)...)
	issues = append(issues, checkPriority(&in.Priority)...)
	if len(issues) > 0 {
		return in, issues
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Memo = NormalizeMemo(in.Memo)
	return in, nil
}

// UpdateTodo validates and normalizes a todo replacement payload.
func UpdateTodo(in UpdateTodoInput) (UpdateTodoInput, Issues) {
	var issues Issues
	if in.ID == "" {
		issues = append(issues, Issue{Field: "id", Message: "id is required"})
	}
	issues = append(issues, checkTitle(in.Title)...)
	issues = append(issues, checkMemo(in.Memo)...)
	issues = append(issues, checkPriority(&in.Priority)...)
	if len(issues) > 0 {
		return in, issues
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Memo = NormalizeMemo(in.Memo)
	return in, nil
}

func checkEmail(field, email string) Issues {
	if !emailRe.MatchString(email) {
		return Issues{{Field: field, Message: "enter a valid email address"}}
	}
	return nil
}

func checkNewPassword(field, password string) Issues {
	if utf8.RuneCountInString(password) < passwordMin {
		return Issues{{Field: field, Message: "password must be at least 8 characters"}}
	}
	if !letterRe.MatchString(password) || !digitRe.MatchString(password) {
		return Issues{{Field: field, Message: "password must contain both letters and digits"}}
	}
	return nil
}

// checkTitle enforces the empty / whitespace-only / too-long rules in
// that priority order. The length bound applies to the trimmed title.
func checkTitle(title string) Issues {
	if title == "" {
		return Issues{{Field: "title", Message: "enter a title"}}
	}
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return Issues{{Field: "title", Message: "title cannot be only whitespace"}}
	}
	if utf8.RuneCountInString(trimmed) > titleMaxLen {
		return Issues{{Field: "title", Message: "title must be 100 characters or less"}}
	}
	return nil
}

func checkMemo(memo *string) Issues {
	if memo == nil {
		return nil
	}
	if utf8.RuneCountInString(strings.TrimSpace(*memo)) > memoMaxLen {
		return Issues{{Field: "memo", Message: "memo must be 1000 characters or less"}}
	}
	return nil
}

// checkPriority defaults an empty priority to medium in place.
func checkPriority(priority *string) Issues {
	if *priority == "" {
		*priority = model.PriorityMedium
		return nil
	}
	if !model.ValidPriority(*priority) {
		return Issues{{Field: "priority", Message: "invalid priority"}}
	}
	return nil
}
