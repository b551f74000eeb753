package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/studenthustle/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// RecentActivityRequest represents a recent-activity service request.
type RecentActivityRequest struct {
	Limit int `json:"limit,omitempty"`
}

// RecentActivityResponse represents a recent-activity service response.
type RecentActivityResponse struct {
	Entries []Entry `json:"entries"`
}

// ActivityModule listens to marketplace events and keeps a short feed of
// what happened recently.
type ActivityModule struct {
	feed *Feed
}

var _ mono.Module = (*ActivityModule)(nil)
var _ mono.EventConsumerModule = (*ActivityModule)(nil)
var _ mono.ServiceProviderModule = (*ActivityModule)(nil)

func NewModule(feedSize int) *ActivityModule {
	return &ActivityModule{feed: NewFeed(feedSize)}
}

func (m *ActivityModule) Name() string {
	return "activity"
}

func (m *ActivityModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.UserRegisteredV1, m.handleUserRegistered, m); err != nil {
		return fmt.Errorf("failed to register UserRegistered consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskPostedV1, m.handleTaskPosted, m); err != nil {
		return fmt.Errorf("failed to register TaskPosted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.ApplicationSubmittedV1, m.handleApplicationSubmitted, m); err != nil {
		return fmt.Errorf("failed to register ApplicationSubmitted consumer: %w", err)
	}

	log.Printf("[activity] Registered event consumers: UserRegistered, TaskPosted, ApplicationSubmitted")
	return nil
}

func (m *ActivityModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "recent-activity", json.Unmarshal, json.Marshal, m.recentActivity,
	); err != nil {
		return fmt.Errorf("failed to register recent-activity service: %w", err)
	}
	return nil
}

func (m *ActivityModule) handleUserRegistered(_ context.Context, event events.UserRegisteredEvent, _ *mono.Msg) error {
	log.Printf("[activity] User registered: %s", event.UserID)
	m.feed.Add(Entry{
		Kind:      KindUserRegistered,
		SubjectID: event.UserID,
		Message:   fmt.Sprintf("%s joined", event.Name),
		At:        event.RegisteredAt,
	})
	return nil
}

func (m *ActivityModule) handleTaskPosted(_ context.Context, event events.TaskPostedEvent, _ *mono.Msg) error {
	log.Printf("[activity] Task posted: %s - %s", event.TaskID, event.Title)
	m.feed.Add(Entry{
		Kind:      KindTaskPosted,
		SubjectID: event.TaskID,
		Message:   fmt.Sprintf("%s posted '%s' (%s, %g)", event.CreatedBy, event.Title, event.Category, event.Budget),
		At:        event.CreatedAt,
	})
	return nil
}

func (m *ActivityModule) handleApplicationSubmitted(_ context.Context, event events.ApplicationSubmittedEvent, _ *mono.Msg) error {
	log.Printf("[activity] Application %s submitted for task %s", event.ApplicationID, event.TaskID)
	msg := fmt.Sprintf("%s applied to task %s", event.ApplicantName, event.TaskID)
	if event.OfferBudget != nil {
		msg = fmt.Sprintf("%s applied to task %s offering %g", event.ApplicantName, event.TaskID, *event.OfferBudget)
	}
	m.feed.Add(Entry{
		Kind:      KindApplicationSubmitted,
		SubjectID: event.ApplicationID,
		Message:   msg,
		At:        event.SubmittedAt,
	})
	return nil
}

func (m *ActivityModule) recentActivity(_ context.Context, req RecentActivityRequest, _ *mono.Msg) (RecentActivityResponse, error) {
	return RecentActivityResponse{Entries: m.feed.Recent(req.Limit)}, nil
}

func (m *ActivityModule) Start(_ context.Context) error {
	log.Println("[activity] Module started - listening for marketplace events")
	return nil
}

func (m *ActivityModule) Stop(_ context.Context) error {
	log.Println("[activity] Module stopped")
	return nil
}
