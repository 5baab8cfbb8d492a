package log

import (
	"context"

	"github.com/google/uuid"
)

type requestId struct{}

func RequestIDFromContext(c context.Context) string {
	id, ok := c.Value(requestId{}).(string)
	if !ok {
		return ""
	}
	return id
}

func AttachRequestIDToContext(c context.Context, h string) context.Context {
	return context.WithValue(c, requestId{}, h)
}

type sessionId struct{}

func SessionIDFromContext(c context.Context) (uuid.UUID, bool) {
	id, ok := c.Value(sessionId{}).(uuid.UUID)
	return id, ok
}

func AttachSessionIDToContext(c context.Context, id uuid.UUID) context.Context {
	return context.WithValue(c, sessionId{}, id)
}
