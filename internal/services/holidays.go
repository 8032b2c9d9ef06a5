package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/logging"

	"voiceadmin/internal/metrics"
	"voiceadmin/internal/models"
	"voiceadmin/pkg/datagovau"
)

// YearWindow selects how far ahead fetched holidays may lie.
type YearWindow int

const (
	CurrentYearOnly YearWindow = iota
	CurrentAndNextYear
)

const dateLayout = "20060102"

type HolidayService struct {
	logger   *slog.Logger
	client   datagovau.Client
	excluded []string
	now      func() time.Time
}

func NewHolidayService(
	logger *slog.Logger,
	client datagovau.Client,
	excluded []string,
) *HolidayService {
	return &HolidayService{
		logger:   logger,
		client:   client,
		excluded: excluded,
		now:      time.Now,
	}
}

// Fetch queries the open-data source for every requested state and
// normalizes the rows into holiday records. A failing state is logged
// and yields no records; it never aborts the remaining states.
func (service *HolidayService) Fetch(
	ctx context.Context,
	states []models.State,
	window YearWindow,
) ([]models.HolidayRecord, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("%w: no states selected", models.ErrConfig)
	}

	var records []models.HolidayRecord
	for _, state := range states {
		rows, err := service.client.GetHolidays(ctx, string(state))
		if err != nil {
			service.logger.Error("failed to fetch holidays",
				slog.String("state", string(state)), logging.ErrAttr(err))
			metrics.FetchFailures.WithLabelValues(string(state)).Inc()
			continue
		}

		for _, row := range rows {
			record, ok := service.normalize(state, row, window)
			if !ok {
				continue
			}

			records = append(records, record)
			metrics.HolidaysFetched.WithLabelValues(string(state)).Inc()
		}
	}

	return records, nil
}

func (service *HolidayService) normalize(
	state models.State,
	row datagovau.Record,
	window YearWindow,
) (models.HolidayRecord, bool) {
	if !strings.EqualFold(row.Jurisdiction, string(state)) {
		return models.HolidayRecord{}, false
	}

	for _, name := range service.excluded {
		if row.HolidayName == name {
			return models.HolidayRecord{}, false
		}
	}

	start, err := time.Parse(dateLayout, row.Date)
	if err != nil {
		service.logger.Warn("skipping row with unparseable date",
			slog.String("state", string(state)),
			slog.String("date", row.Date),
			slog.String("name", row.HolidayName))
		return models.HolidayRecord{}, false
	}

	if !service.inWindow(start.Year(), window) {
		return models.HolidayRecord{}, false
	}

	return models.NewHolidayRecord(state, row.HolidayName, start), true
}

func (service *HolidayService) inWindow(year int, window YearWindow) bool {
	current := service.now().Year()
	if year == current {
		return true
	}

	return window == CurrentAndNextYear && year == current+1
}
