package domain

import "time"

// AttachmentParent distinguishes what an attachment hangs off of.
type AttachmentParent string

const (
	AttachmentParentTicket  AttachmentParent = "ticket"
	AttachmentParentComment AttachmentParent = "comment"
)

// Attachment is the metadata row for a file stored on disk. StoredName is the
// randomized on-disk filename; the binary itself is not content-addressed.
type Attachment struct {
	ID           string
	ParentType   AttachmentParent
	ParentID     string
	StoredName   string
	OriginalName string
	MimeType     string
	SizeBytes    int64
	UploadedBy   string
	UploadedAt   time.Time
}
