package contracts

import (
	"context"
	"intake-service/internal/pkg/dto/requests"
)

type WorkflowPublisher interface {
	Publish(ctx context.Context, event *requests.WorkflowEvent) error
}
