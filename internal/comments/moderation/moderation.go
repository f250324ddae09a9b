// Package moderation holds the comment permission predicates. They are pure
// functions with a single definition shared by every route that needs them.
package moderation

import "github.com/example/artist-platform/internal/comments/store"

// CanEdit reports whether the calling artist may edit the comment. Only the
// author may edit.
func CanEdit(c store.Comment, callerArtistID string) bool {
	return callerArtistID != "" && c.ArtistID == callerArtistID
}

// CanDelete reports whether the calling artist may delete the comment: the
// author, or the artist who owns the portfolio item the comment is on.
func CanDelete(c store.Comment, callerArtistID, itemOwnerArtistID string) bool {
	if CanEdit(c, callerArtistID) {
		return true
	}
	return callerArtistID != "" && callerArtistID == itemOwnerArtistID
}
