package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/logging"

	"voiceadmin/internal/models"
)

// fileHoliday is one entry of a static per-state holiday file,
// e.g. nsw.json: [{"date": "20261226", "name": "Boxing Day"}].
type fileHoliday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// LoadFromFiles reads static per-state JSON holiday files from dir.
// A missing or corrupt file fails only that state; other states still
// load. Unlike Fetch, no name filtering applies here; the whole-day
// reconciliation path enforces the year window and drops past ranges
// itself.
func (service *HolidayService) LoadFromFiles(
	dir string,
	states []models.State,
) ([]models.HolidayRecord, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("%w: no states selected", models.ErrConfig)
	}

	var records []models.HolidayRecord
	for _, state := range states {
		path := filepath.Join(dir, strings.ToLower(string(state))+".json")

		data, err := os.ReadFile(path)
		if err != nil {
			service.logger.Error("failed to read holiday file",
				slog.String("state", string(state)), logging.ErrAttr(err))
			continue
		}

		var entries []fileHoliday
		err = json.Unmarshal(data, &entries)
		if err != nil {
			service.logger.Error("failed to parse holiday file",
				slog.String("path", path), logging.ErrAttr(err))
			continue
		}

		for _, entry := range entries {
			start, err := time.Parse(dateLayout, entry.Date)
			if err != nil {
				service.logger.Warn("skipping entry with unparseable date",
					slog.String("path", path), slog.String("date", entry.Date))
				continue
			}

			records = append(records, models.NewHolidayRecord(state, entry.Name, start))
		}
	}

	return records, nil
}
