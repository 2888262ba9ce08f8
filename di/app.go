package di

import (
	"haunters/internal/scheduler"
	"haunters/transport/http"

	bookingService "haunters/internal/domains/booking/service"
)

// App bundles the long-running pieces of the service.
type App struct {
	HTTP      *http.HTTP
	Scheduler *scheduler.Scheduler
}

// ProvideSchedulerJobs exposes the booking service's background operations
// to the scheduler without handing it the full service surface.
func ProvideSchedulerJobs(svc bookingService.Booking) scheduler.Jobs {
	return svc
}
