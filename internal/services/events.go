package services

import (
	"mime/multipart"

	"go.uber.org/zap"
)

// Routing keys of the domain events published after writes.
const (
	EventPostCreated    = "post.created"
	EventCommentCreated = "comment.created"
	EventLikeToggled    = "like.toggled"
	EventUserFollowed   = "user.followed"
)

// EventPublisher publishes domain events. Implemented by rabbitmq.Client.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// MediaStore persists uploaded media and returns the stored path.
type MediaStore interface {
	Save(dir string, fh *multipart.FileHeader) (string, error)
	Delete(rel string) error
}

// discardMedia removes a stored file the request no longer references.
func discardMedia(logger *zap.Logger, media MediaStore, rel string) {
	if err := media.Delete(rel); err != nil {
		logger.Warn("failed to remove stored media", zap.String("path", rel), zap.Error(err))
	}
}

// publish never fails the request: events are best effort.
func publish(logger *zap.Logger, pub EventPublisher, routingKey string, payload map[string]any) {
	if pub == nil {
		logger.Debug("event publisher not configured, skipping event", zap.String("event", routingKey))
		return
	}
	if err := pub.Publish(routingKey, payload); err != nil {
		logger.Warn("failed to publish event", zap.String("event", routingKey), zap.Error(err))
		return
	}
	logger.Debug("published event", zap.String("event", routingKey))
}
