package server

import (
	"context"
	"encoding/json"
	"log"

	"postpilot/internal/observability"
	"postpilot/internal/store"
)

// Event type constants prevent typos in event names.
const (
	EventAccountAdded   = "account_added"
	EventAccountToggled = "account_toggled"
	EventPostScheduled  = "post_scheduled"
	EventPostPromoted   = "post_promoted"
	EventTickCompleted  = "tick_completed"
)

// publishEvent fans an event out to every connected dashboard. With Redis
// configured the message goes through pub/sub and the subscriber echoes it
// back into the local hub, so we must not also broadcast locally or clients
// would see it twice. Without Redis the hub broadcast is the only path.
// Delivery is best-effort: a failed publish drops the event rather than
// retrying or falling back, since a publish can fail after the message
// reached Redis and a local re-broadcast would then duplicate it.
func (s *Server) publishEvent(eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	message := string(eventJSON)

	observability.WebSocketEventsTotal.WithLabelValues(eventType).Inc()

	if s.redis != nil && s.notifier != nil {
		if err := s.notifier.Publish(context.Background(), message); err != nil {
			log.Printf("failed to publish %s event: %v", eventType, err)
		}
		return
	}
	if s.hub != nil {
		s.hub.BroadcastAll(message)
	}
}

// PublishTickResult emits events for a completed scheduler tick. It is used
// as the scheduler's result callback so background ticks reach dashboards
// the same way manually triggered ones do.
func (s *Server) PublishTickResult(res store.TickResult) {
	for _, post := range res.Promoted {
		s.publishEvent(EventPostPromoted, map[string]interface{}{
			"post_id":   post.ID,
			"caption":   post.Caption,
			"platforms": post.Platforms,
			"posted_at": post.PostedAt,
		})
	}
	if len(res.Promoted) > 0 {
		s.publishEvent(EventTickCompleted, map[string]interface{}{
			"promoted":  len(res.Promoted),
			"scheduled": res.ScheduledCount,
			"posted":    res.PostedCount,
		})
	}
}
