package publisher

import (
	"context"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
)

type AlertPublisher interface {
	PublishAlert(ctx context.Context, alert *domain.LocationAlert) error
}
