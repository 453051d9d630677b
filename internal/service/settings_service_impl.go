package service

import (
	"context"
	"time"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/alexanderramin/turno/internal/repository"
)

type settingsService struct {
	settings repository.SettingsRepo
}

func NewSettingsService(settings repository.SettingsRepo) SettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) Get(ctx context.Context, userID string) (*domain.UserSettings, error) {
	return s.settings.Get(ctx, userID)
}

func (s *settingsService) Update(ctx context.Context, settings *domain.UserSettings) error {
	if settings.Timezone != "" {
		if _, err := time.LoadLocation(settings.Timezone); err != nil {
			return domain.Validationf("unknown timezone %q", settings.Timezone)
		}
	}
	settings.UpdatedAt = time.Now().UTC()
	return s.settings.Upsert(ctx, settings)
}
