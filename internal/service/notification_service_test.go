package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tickety/tickety-server/internal/domain"
	"github.com/tickety/tickety-server/internal/events"
	"github.com/tickety/tickety-server/internal/service"
)

type capturingMessenger struct {
	mu   sync.Mutex
	sent []struct{ To, Body string }
	err  error
}

func (m *capturingMessenger) Send(_ context.Context, to, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, struct{ To, Body string }{to, body})
	return m.err
}

func (m *capturingMessenger) messages() []struct{ To, Body string } {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]struct{ To, Body string }{}, m.sent...)
}

func ticketCreatedEvent() events.Event {
	return events.Event{
		Type:      events.EventTicketCreated,
		TicketID:  "tick-1",
		Timestamp: time.Now(),
		Payload: events.TicketCreatedPayload{
			Ticket: domain.Ticket{
				ID:          "tick-1",
				Title:       "Printer on fire",
				Description: "Smoke coming out of tray two",
				Priority:    domain.TicketPriorityHigh,
				Category:    "Hardware",
			},
			CustomerName:  "Ada Example",
			CustomerPhone: "+100000001",
			AssigneeName:  "Sam Support",
			AssigneePhone: "+100000002",
		},
	}
}

func TestNotificationMessageSentToCustomer(t *testing.T) {
	messenger := &capturingMessenger{}
	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, messenger, zap.NewNop()).RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), ticketCreatedEvent()))

	require.Eventually(t, func() bool {
		return len(messenger.messages()) == 1
	}, time.Second, 10*time.Millisecond)

	msg := messenger.messages()[0]
	assert.Equal(t, "+100000001", msg.To)
	assert.True(t, strings.HasPrefix(msg.Body, "New Ticket Created!"))
	assert.Contains(t, msg.Body, "Title: Printer on fire")
	assert.Contains(t, msg.Body, "Priority: High")
	assert.Contains(t, msg.Body, "Assignee: Sam Support")
	assert.Contains(t, msg.Body, "Assignee Contact: +100000002")
}

func TestNotificationSendFailureSwallowed(t *testing.T) {
	messenger := &capturingMessenger{err: errors.New("provider down")}
	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, messenger, zap.NewNop()).RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), ticketCreatedEvent()))

	require.Eventually(t, func() bool {
		return len(messenger.messages()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestNotificationIgnoresMalformedPayload(t *testing.T) {
	messenger := &capturingMessenger{}
	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, messenger, zap.NewNop()).RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketCreated,
		TicketID: "tick-1",
		Payload:  "not a struct",
	}))

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, messenger.messages())
}
