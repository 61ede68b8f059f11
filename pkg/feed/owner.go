package feed

import (
	"strings"

	"blogfront/pkg/models"
)

// Owns reports whether the signed-in viewer should see edit/delete controls
// on content authored by authorName/authorEmail: true when the viewer's email
// or name case-insensitively equals the author's email or name. This gates UI
// affordances only. It is not authorization; the backend decides whether a
// mutation is actually allowed.
func Owns(viewer models.Identity, authorName, authorEmail string) bool {
	name := strings.ToLower(viewer.Name)
	email := strings.ToLower(viewer.Email)
	if name == "" && email == "" {
		return false
	}

	for _, author := range []string{strings.ToLower(authorName), strings.ToLower(authorEmail)} {
		if author == "" {
			continue
		}
		if author == name || author == email {
			return true
		}
	}

	return false
}
