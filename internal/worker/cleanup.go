package worker

import (
	"context"
	"log"
	"time"

	"github.com/reservaa/hall-booking-service/internal/models"
	"github.com/reservaa/hall-booking-service/internal/repository"
)

// CleanupWorker removes finished bookings once their date has passed. Pending
// and rescheduled rows are kept so requests never silently vanish and the
// reschedule history survives.
type CleanupWorker struct {
	bookings repository.BookingRepository
	interval time.Duration
}

func NewCleanupWorker(bookings repository.BookingRepository) *CleanupWorker {
	return &CleanupWorker{bookings: bookings, interval: 24 * time.Hour}
}

// Run sweeps immediately, then once per interval until ctx is cancelled.
func (w *CleanupWorker) Run(ctx context.Context) {
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[CleanupWorker] stopping")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *CleanupWorker) sweep(ctx context.Context) {
	cutoff := models.NormalizeDate(time.Now())
	removed, err := w.bookings.DeletePastBookings(ctx, cutoff,
		[]models.BookingStatus{models.StatusApproved, models.StatusRejected})
	if err != nil {
		log.Printf("[CleanupWorker] sweep failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("[CleanupWorker] removed %d past bookings", removed)
	}
}
