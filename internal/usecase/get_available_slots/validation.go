package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-WashScheduler/pkg/types"
)

// validateRequest проверяет запрос и возвращает разобранную дату
func validateRequest(req *Request, loc *time.Location) (time.Time, error) {
	if req == nil {
		return time.Time{}, fmt.Errorf("%w: empty request", ErrInvalidDate)
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	day, err := types.ParseDate(date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	return day, nil
}
