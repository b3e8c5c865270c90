package domain

import "time"

// Comment is a threaded discussion entry on a ticket. Exactly one of
// CustomerID or AssigneeID is set, derived from the authenticated author.
type Comment struct {
	ID         string
	TicketID   string
	CustomerID *string
	AssigneeID *string
	Content    string
	CreatedAt  time.Time
}

// AuthorRole returns the role tag of whichever author column is set.
func (c Comment) AuthorRole() Role {
	if c.CustomerID != nil {
		return RoleCustomer
	}
	return RoleAssignee
}

// CommentWithAuthor is a comment joined with the author's display name.
type CommentWithAuthor struct {
	Comment
	AuthorName string
}
