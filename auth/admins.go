package auth

import (
	"sort"
	"strings"
)

// AdminList is the set of emails allowed into the admin console.
type AdminList map[string]struct{}

func NewAdminList(emails []string) AdminList {
	list := make(AdminList, len(emails))
	for _, e := range emails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			list[e] = struct{}{}
		}
	}
	return list
}

func (a AdminList) Contains(email string) bool {
	_, ok := a[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// RoleFor picks the token role for a signed-in account.
func (a AdminList) RoleFor(email string) string {
	if a.Contains(email) {
		return RoleAdmin
	}
	return RoleUser
}

// Emails returns the allow-list sorted alphabetically.
func (a AdminList) Emails() []string {
	out := make([]string, 0, len(a))
	for e := range a {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}
