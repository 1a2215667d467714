package downdetect

import (
	"context"
	"fmt"
	"time"

	"pmtrack/internal/storage"

	"github.com/valkey-io/valkey-go"
)

const pingTimeout = 3 * time.Second

type DowndetectService struct {
	// nil when valkey is not configured
	cacheClient valkey.Client
}

func (s *DowndetectService) IsAvailable() error {
	if err := storage.GetDb().Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	if err := s.pingCache(); err != nil {
		return fmt.Errorf("cache check failed: %w", err)
	}

	return nil
}

func (s *DowndetectService) pingCache() error {
	if s.cacheClient == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	return s.cacheClient.Do(ctx, s.cacheClient.B().Ping().Build()).Error()
}
