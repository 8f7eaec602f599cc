package check_availability

import (
	"strconv"
	"strings"
	"time"

	"github.com/salonhub/SLN-BookingService/internal/domain"
	checkAvailability "github.com/salonhub/SLN-BookingService/internal/usecase/check_availability"
	"github.com/salonhub/SLN-BookingService/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date            string                `json:"date"`
	DurationMinutes int                   `json:"durationMinutes"`
	Results         []CompanyAvailability `json:"results"`
}

// CompanyAvailability доступность одной компании
type CompanyAvailability struct {
	CompanyID int64 `json:"companyId"`
	Available bool  `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	results := make([]CompanyAvailability, len(resp.Results))
	for i, r := range resp.Results {
		results[i] = CompanyAvailability{
			CompanyID: r.CompanyID,
			Available: r.Available,
		}
	}

	return &AvailabilityResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Results:         results,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров.
// companyIds принимается как список через запятую: "1,2,3".
func ToUseCaseRequest(companyIDsStr, dateStr, durationStr, fromStr, toStr string) (*checkAvailability.Request, error) {
	var companyIDs []int64
	for _, part := range strings.Split(companyIDsStr, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		companyIDs = append(companyIDs, id)
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		return nil, err
	}

	req := &checkAvailability.Request{
		CompanyIDs:      companyIDs,
		Date:            date,
		DurationMinutes: duration,
	}

	if fromStr != "" {
		from, err := types.NewTimeStringFromString(fromStr)
		if err != nil {
			return nil, err
		}
		req.DesiredFrom = &from
	}

	if toStr != "" {
		to, err := types.NewTimeStringFromString(toStr)
		if err != nil {
			return nil, err
		}
		req.DesiredTo = &to
	}

	return req, nil
}
