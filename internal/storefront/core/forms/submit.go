package forms

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/storefront/core/ports"
)

var ErrSubmitFailed = errors.New("forms: submit failed")

const (
	bookingFailedMessage  = "Failed to submit booking. Please try again or contact us directly."
	feedbackFailedMessage = "Failed to submit feedback. Please try again."
)

// SubmitError carries a user-facing message for a failed insert. The
// underlying store error is kept for logs only.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string { return e.Message }

func (e *SubmitError) Unwrap() error { return e.Err }

func (e *SubmitError) Is(target error) bool { return target == ErrSubmitFailed }

// Service submits bookings and feedback. Submissions are inserted once and
// never read back; there is no retry.
type Service struct {
	bookings ports.BookingRepository
	feedback ports.FeedbackRepository
	now      func() time.Time
}

func NewService(bookings ports.BookingRepository, feedback ports.FeedbackRepository) *Service {
	return &Service{
		bookings: bookings,
		feedback: feedback,
		now:      time.Now,
	}
}

func (s *Service) SubmitBooking(ctx context.Context, req BookingRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	booking := req.toEntity(s.now().UTC())
	if err := s.bookings.InsertBooking(ctx, booking); err != nil {
		slog.ErrorContext(ctx, "booking submission failed", "service_type", booking.ServiceType, "error", err)
		return &SubmitError{Message: bookingFailedMessage, Err: err}
	}

	slog.InfoContext(ctx, "booking received", "service_type", booking.ServiceType, "date", booking.PreferredDate)
	return nil
}

func (s *Service) SubmitFeedback(ctx context.Context, req FeedbackRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	feedback := &entity.Feedback{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Message:       req.Message,
		Rating:        req.Rating,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.feedback.InsertFeedback(ctx, feedback); err != nil {
		slog.ErrorContext(ctx, "feedback submission failed", "error", err)
		return &SubmitError{Message: feedbackFailedMessage, Err: err}
	}

	slog.InfoContext(ctx, "feedback received", "rating", feedback.Rating)
	return nil
}
