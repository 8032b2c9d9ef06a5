package services

import (
	"log/slog"

	"github.com/xdoubleu/essentia/v2/pkg/logging"
)

func nopLogger() *slog.Logger {
	return logging.NewNopLogger()
}
