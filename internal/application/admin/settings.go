package admin

import (
	"github.com/jhoicas/agrochain-api/internal/application/dto"
	"github.com/jhoicas/agrochain-api/internal/domain"
)

// DefaultSettings documento de configuración que devuelve GET /api/admin/settings.
func DefaultSettings() dto.Settings {
	return dto.Settings{
		System: dto.SystemSettings{
			MaintenanceMode:     false,
			RegistrationEnabled: true,
			MaxUsersPerRole:     1000,
			SessionTimeout:      30,
			BackupFrequency:     "daily",
		},
		Notifications: dto.NotificationSettings{
			EmailNotifications:    true,
			SMSNotifications:      false,
			PushNotifications:     true,
			NotificationFrequency: "immediate",
		},
		Security: dto.SecuritySettings{
			PasswordMinLength: 8,
			RequireTwoFactor:  false,
			MaxLoginAttempts:  5,
			LockoutDuration:   15,
		},
		Features: dto.FeatureSettings{
			EnableMessaging:      true,
			EnableReports:        true,
			EnableLogs:           true,
			EnableUserManagement: true,
		},
	}
}

// Settings configuración vigente. No hay almacén: siempre los valores por defecto.
func (uc *AdminUseCase) Settings() dto.Settings {
	return DefaultSettings()
}

// UpdateSettings valida y devuelve la configuración recibida sin persistirla.
func (uc *AdminUseCase) UpdateSettings(in dto.UpdateSettingsRequest) (*dto.UpdateSettingsResponse, error) {
	if in.Settings == nil {
		return nil, domain.ErrInvalidInput
	}
	uc.log.Info().Int("keys", len(in.Settings)).Msg("configuración recibida")
	return &dto.UpdateSettingsResponse{Message: "Settings updated successfully", Settings: in.Settings}, nil
}
