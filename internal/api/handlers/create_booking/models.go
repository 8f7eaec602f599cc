package create_booking

import (
	"time"

	"github.com/salonhub/SLN-BookingService/internal/domain"
	createBooking "github.com/salonhub/SLN-BookingService/internal/usecase/create_booking"
	"github.com/salonhub/SLN-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CompanyID       int64   `json:"companyId"`
	BookingDate     string  `json:"bookingDate"` // "2026-03-02"
	TimeFrom        string  `json:"timeFrom"`    // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	ServiceName     string  `json:"serviceName"`
	Notes           *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	CompanyID   int64   `json:"companyId"`
	StaffID     int64   `json:"staffId"`
	StaffName   string  `json:"staffName"`
	BookingDate string  `json:"bookingDate"`
	TimeFrom    string  `json:"timeFrom"`
	TimeTo      string  `json:"timeTo"`
	Status      string  `json:"status"`
	ServiceName string  `json:"serviceName"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// userID приходит из контекста аутентификации, не из тела запроса.
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	timeFrom, err := types.NewTimeStringFromString(r.TimeFrom)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:          userID,
		CompanyID:       r.CompanyID,
		Date:            bookingDate,
		TimeFrom:        timeFrom,
		DurationMinutes: r.DurationMinutes,
		ServiceName:     r.ServiceName,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		CompanyID:   resp.CompanyID,
		StaffID:     resp.StaffID,
		StaffName:   resp.StaffName,
		BookingDate: resp.BookingDate.Format(domain.DateFormat),
		TimeFrom:    resp.TimeFrom.String(),
		TimeTo:      resp.TimeTo.String(),
		Status:      resp.Status,
		ServiceName: resp.ServiceName,
		Notes:       resp.Notes,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
