package service_interfaces

import (
	"time"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
)

type StatusService interface {
	Project(record domain.FundsRequest, now time.Time) domain.StatusProjection
	ProjectNow(record domain.FundsRequest) domain.StatusProjection
}
