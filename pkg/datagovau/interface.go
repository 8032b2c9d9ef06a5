package datagovau

import (
	"context"
)

type Client interface {
	GetHolidays(ctx context.Context, jurisdiction string) ([]Record, error)
}
