package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tickety/tickety-server/internal/domain"
	"github.com/tickety/tickety-server/internal/events"
	"github.com/tickety/tickety-server/internal/repository"
)

// In-memory repository fakes. They mimic the Postgres behavior the services
// rely on: pgx.ErrNoRows on missing rows, unique-violation errors on
// duplicate emails, and server-side timestamps.

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*domain.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]*domain.Customer)}
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.customers {
		if existing.Email == customer.Email {
			return uniqueViolation("customers_email_key")
		}
	}
	customer.ID = uuid.NewString()
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	clone := *customer
	r.customers[customer.ID] = &clone
	return nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[customer.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range r.customers {
		if id != customer.ID && existing.Email == customer.Email {
			return uniqueViolation("customers_email_key")
		}
	}
	customer.UpdatedAt = time.Now()
	clone := *customer
	r.customers[customer.ID] = &clone
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customer, ok := r.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *customer
	return &clone, nil
}

func (r *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, customer := range r.customers {
		if customer.Email == email {
			clone := *customer
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCustomerRepo) ListAll(_ context.Context) ([]domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		result = append(result, *customer)
	}
	return result, nil
}

type fakeAssigneeRepo struct {
	mu        sync.Mutex
	assignees map[string]*domain.Assignee
}

func newFakeAssigneeRepo() *fakeAssigneeRepo {
	return &fakeAssigneeRepo{assignees: make(map[string]*domain.Assignee)}
}

func (r *fakeAssigneeRepo) Create(_ context.Context, assignee *domain.Assignee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.assignees {
		if existing.Email == assignee.Email {
			return uniqueViolation("assignees_email_key")
		}
	}
	assignee.ID = uuid.NewString()
	assignee.CreatedAt = time.Now()
	assignee.UpdatedAt = assignee.CreatedAt
	clone := *assignee
	r.assignees[assignee.ID] = &clone
	return nil
}

func (r *fakeAssigneeRepo) Update(_ context.Context, assignee *domain.Assignee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assignees[assignee.ID]; !ok {
		return pgx.ErrNoRows
	}
	assignee.UpdatedAt = time.Now()
	clone := *assignee
	r.assignees[assignee.ID] = &clone
	return nil
}

func (r *fakeAssigneeRepo) GetByID(_ context.Context, id string) (*domain.Assignee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	assignee, ok := r.assignees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *assignee
	return &clone, nil
}

func (r *fakeAssigneeRepo) GetByEmail(_ context.Context, email string) (*domain.Assignee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, assignee := range r.assignees {
		if assignee.Email == email {
			clone := *assignee
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAssigneeRepo) ListAll(_ context.Context) ([]domain.Assignee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Assignee, 0, len(r.assignees))
	for _, assignee := range r.assignees {
		result = append(result, *assignee)
	}
	return result, nil
}

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]*domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = time.Now()
	clone := *ticket
	r.tickets[ticket.ID] = &clone
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *ticket
	return &clone, nil
}

func (r *fakeTicketRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.CustomerID == customerID {
			result = append(result, *ticket)
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) ListByAssignee(_ context.Context, assigneeID string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.AssigneeID == assigneeID {
			result = append(result, *ticket)
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) ListAllWithCustomer(_ context.Context) ([]repository.TicketWithCustomer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []repository.TicketWithCustomer
	for _, ticket := range r.tickets {
		result = append(result, repository.TicketWithCustomer{Ticket: *ticket})
	}
	return result, nil
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, id string, status domain.TicketStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.Status = status
	if status == domain.TicketStatusResolved {
		now := time.Now()
		ticket.ResolvedAt = &now
	}
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now()
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment, ok := r.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *comment
	return &clone, nil
}

func (r *fakeCommentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.CommentWithAuthor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.CommentWithAuthor
	for _, comment := range r.comments {
		if comment.TicketID == ticketID {
			result = append(result, domain.CommentWithAuthor{Comment: *comment, AuthorName: "Test Author"})
		}
	}
	return result, nil
}

type fakeAttachmentRepo struct {
	mu          sync.Mutex
	attachments map[string]*domain.Attachment
}

func newFakeAttachmentRepo() *fakeAttachmentRepo {
	return &fakeAttachmentRepo{attachments: make(map[string]*domain.Attachment)}
}

func (r *fakeAttachmentRepo) Create(_ context.Context, attachment *domain.Attachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	attachment.ID = uuid.NewString()
	attachment.UploadedAt = time.Now()
	clone := *attachment
	r.attachments[attachment.ID] = &clone
	return nil
}

func (r *fakeAttachmentRepo) ListByParent(_ context.Context, parent domain.AttachmentParent, parentID string) ([]domain.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Attachment
	for _, attachment := range r.attachments {
		if attachment.ParentType == parent && attachment.ParentID == parentID {
			result = append(result, *attachment)
		}
	}
	return result, nil
}

type fakeResetRepo struct {
	mu     sync.Mutex
	resets map[string]*domain.PasswordReset
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{resets: make(map[string]*domain.PasswordReset)}
}

func (r *fakeResetRepo) Create(_ context.Context, reset *domain.PasswordReset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reset.ID = uuid.NewString()
	reset.CreatedAt = time.Now()
	clone := *reset
	r.resets[reset.ID] = &clone
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, token string) (*domain.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reset := range r.resets {
		if reset.Token == token {
			clone := *reset
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeResetRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.resets, id)
	return nil
}

func (r *fakeResetRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.resets)
}

// fakeMailer records password reset emails.
type fakeMailer struct {
	mu   sync.Mutex
	sent []struct{ To, Token string }
}

func (m *fakeMailer) SendPasswordResetEmail(to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, struct{ To, Token string }{to, token})
	return nil
}

// recordingDispatcher captures published events synchronously.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) recorded() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
