package cancel_booking

import (
	"github.com/salonhub/SLN-BookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса.
// userID приходит из контекста аутентификации, не из тела запроса.
func (r *CancelBookingRequest) ToServiceRequest(userID int64, byCompany bool) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		UserID:             userID,
		CancellationReason: r.CancellationReason,
		ByCompany:          byCompany,
	}
}
