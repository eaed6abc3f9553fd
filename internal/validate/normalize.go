package validate

import (
	"strings"

	"github.com/nhle/todoapp/internal/model"
)

// CanonicalEmail returns the canonical form of an email address used
// for storage, comparison, and uniqueness: trimmed and lower-cased.
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeName canonicalizes a three-state profile name. An omitted
// field stays omitted; null or blank-after-trim becomes explicit null;
// anything else is trimmed.
func NormalizeName(name model.Optional[string]) model.Optional[string] {
	if !name.Set {
		return name
	}
	if !name.Valid || strings.TrimSpace(name.Value) == "" {
		return model.Null[string]()
	}
	return model.Some(strings.TrimSpace(name.Value))
}

// NormalizeMemo trims a memo and maps blank to absent.
func NormalizeMemo(memo *string) *string {
	if memo == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*memo)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// NormalizeProfile applies post-validation canonicalization to a
// profile update: canonical email and three-state name handling.
func NormalizeProfile(in ProfileInput) ProfileInput {
	in.Email = CanonicalEmail(in.Email)
	in.Name = NormalizeName(in.Name)
	return in
}
