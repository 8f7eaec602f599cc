package get_company_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/salonhub/SLN-BookingService/internal/domain"
	"github.com/salonhub/SLN-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из path и query параметров.
// Query params: staffId, startDate, endDate, status, includeInactive.
func ToServiceRequest(companyID int64, query url.Values) (*models.GetCompanyBookingsRequest, error) {
	req := &models.GetCompanyBookingsRequest{CompanyID: companyID}

	if s := query.Get("staffId"); s != "" {
		staffID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}

	if s := query.Get("startDate"); s != "" {
		startDate, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if s := query.Get("endDate"); s != "" {
		endDate, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if s := query.Get("status"); s != "" {
		req.Status = &s
	}

	if s := query.Get("includeInactive"); s != "" {
		includeInactive, err := strconv.ParseBool(s)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
