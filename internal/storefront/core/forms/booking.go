package forms

import (
	"time"

	"github.com/jcmexdev/storefront/internal/storefront/core/domain/entity"
)

// ServiceTypes are the services a customer can book.
var ServiceTypes = []string{
	"Electrical Installation",
	"Electrical Repair",
	"Wiring & Rewiring",
	"Solar Panel Installation",
	"Generator Setup",
	"Circuit Breaker Issues",
	"Lighting Installation",
	"Emergency Electrical Service",
	"Other",
}

type BookingRequest struct {
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	CustomerPhone string `json:"customerPhone" validate:"required"`
	ServiceType   string `json:"serviceType" validate:"required,service_type"`
	Description   string `json:"description"`
	PreferredDate string `json:"preferredDate" validate:"required,datetime=2006-01-02"`
	PreferredTime string `json:"preferredTime" validate:"required,datetime=15:04"`
	Address       string `json:"address" validate:"required"`
}

func (r *BookingRequest) Validate() error {
	trim(&r.CustomerName, &r.CustomerEmail, &r.CustomerPhone, &r.ServiceType,
		&r.Description, &r.PreferredDate, &r.PreferredTime, &r.Address)
	return Validate(r)
}

func (r *BookingRequest) toEntity(now time.Time) *entity.Booking {
	return &entity.Booking{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		ServiceType:   r.ServiceType,
		Description:   r.Description,
		PreferredDate: r.PreferredDate,
		PreferredTime: r.PreferredTime,
		Address:       r.Address,
		Status:        entity.StatusPending,
		CreatedAt:     now,
	}
}
