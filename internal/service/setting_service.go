package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/campusforge/recruit-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type SettingService struct {
	settingRepo *repository.SettingRepository
	log         zerolog.Logger
}

func NewSettingService(settingRepo *repository.SettingRepository, log zerolog.Logger) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		log:         log.With().Str("component", "setting_service").Logger(),
	}
}

func (s *SettingService) GetAllSettings(ctx context.Context) (map[string]string, error) {
	settingsList, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get all settings")
		return nil, err
	}

	settingsMap := make(map[string]string)
	for _, setting := range settingsList {
		settingsMap[setting.Key] = setting.Value
	}
	return settingsMap, nil
}

func (s *SettingService) UpdateSettings(ctx context.Context, settingsMap map[string]string) error {
	// Simple iterative upsert since settings are low volume.
	for key, value := range settingsMap {
		if err := s.settingRepo.Upsert(ctx, key, value); err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("failed to update setting")
			return err
		}
	}
	return nil
}

func (s *SettingService) GetSettingByKey(ctx context.Context, key string) (string, error) {
	setting, err := s.settingRepo.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// PassingPercentage reads the MCQ passing threshold fresh on every call so
// admin changes apply to the very next validation. Missing or unparseable
// values silently fall back to the default; the scorer never fails on a
// misconfigured threshold.
func (s *SettingService) PassingPercentage(ctx context.Context) int {
	setting, err := s.settingRepo.GetByKey(ctx, model.SettingMCQPassingPercentage)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.log.Warn().Err(err).Msg("failed to read passing threshold, using default")
		}
		return model.DefaultPassingPercentage
	}
	return parsePercentage(setting.Value)
}

// EnsurePassingPercentage returns the threshold for the public config
// endpoint, writing the default back when the setting is absent so the
// stored configuration becomes explicit.
func (s *SettingService) EnsurePassingPercentage(ctx context.Context) (int, error) {
	setting, err := s.settingRepo.GetByKey(ctx, model.SettingMCQPassingPercentage)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, err
		}
		if err := s.settingRepo.Upsert(ctx, model.SettingMCQPassingPercentage, strconv.Itoa(model.DefaultPassingPercentage)); err != nil {
			return 0, err
		}
		return model.DefaultPassingPercentage, nil
	}
	return parsePercentage(setting.Value), nil
}

// parsePercentage accepts plain and string-encoded numbers ("85", "85.0").
func parsePercentage(raw string) int {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return model.DefaultPassingPercentage
}
