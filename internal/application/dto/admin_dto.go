package dto

import "time"

// UserListQuery parámetros de GET /api/admin/users.
type UserListQuery struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Role      string `query:"role"`
	Search    string `query:"search"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

// AdminUser usuario en las respuestas de administración (sin password).
type AdminUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	RoleID    *string   `json:"roleId"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status,omitempty"`
}

// UserPagination metadatos de página del listado de usuarios.
type UserPagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalUsers  int64 `json:"totalUsers"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// UserListResponse salida de GET /api/admin/users.
type UserListResponse struct {
	Users      []AdminUser    `json:"users"`
	Pagination UserPagination `json:"pagination"`
}

// GroupCount par clave/conteo con la forma de una agregación ({_id, count}).
type GroupCount struct {
	ID    string `json:"_id"`
	Count int64  `json:"count"`
}

// UserStatsResponse salida de GET /api/admin/users/stats.
type UserStatsResponse struct {
	TotalUsers          int64        `json:"totalUsers"`
	UsersByRole         []GroupCount `json:"usersByRole"`
	RecentRegistrations int64        `json:"recentRegistrations"`
	TodayRegistrations  int64        `json:"todayRegistrations"`
}

// UpdateUserRequest entrada de PUT /api/admin/users/:userId.
type UpdateUserRequest struct {
	Email string `json:"email" validate:"required"`
	Role  string `json:"role" validate:"required"`
}

// UpdateUserResponse salida de la actualización.
type UpdateUserResponse struct {
	Message string    `json:"message"`
	User    AdminUser `json:"user"`
}

// DeleteUserResponse salida del borrado.
type DeleteUserResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// UsersByRoleResponse salida de GET /api/admin/users-by-role.
type UsersByRoleResponse struct {
	Users []AdminUser `json:"users"`
	Count int         `json:"count"`
}

// LogQuery parámetros de GET /api/admin/logs. Fechas en RFC 3339 o YYYY-MM-DD.
type LogQuery struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Level     string `query:"level"`
	Search    string `query:"search"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// LogEntry entrada del registro de peticiones.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Source    string    `json:"source"`
	Message   string    `json:"message"`
	Details   string    `json:"details"`
}

// LogPagination metadatos de página de logs.
type LogPagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalLogs   int64 `json:"totalLogs"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// LogListResponse salida de GET /api/admin/logs.
type LogListResponse struct {
	Logs       []LogEntry    `json:"logs"`
	Pagination LogPagination `json:"pagination"`
}

// HourBucket conteo de logs de una hora (inicio de la hora en UTC).
type HourBucket struct {
	Hour  time.Time `json:"hour"`
	Count int       `json:"count"`
}

// LogStatsResponse salida de GET /api/admin/logs/stats.
type LogStatsResponse struct {
	TotalLogs    int64        `json:"totalLogs"`
	ErrorLogs    int64        `json:"errorLogs"`
	WarningLogs  int64        `json:"warningLogs"`
	InfoLogs     int64        `json:"infoLogs"`
	LogsByHour   []HourBucket `json:"logsByHour"`
	SystemHealth float64      `json:"systemHealth"`
}

// UserMetrics bloque de usuarios del reporte.
type UserMetrics struct {
	TotalUsers         int64        `json:"totalUsers"`
	RecentUsers        int64        `json:"recentUsers"`
	UsersByRole        []GroupCount `json:"usersByRole"`
	DailyRegistrations []GroupCount `json:"dailyRegistrations"`
	GrowthRate         float64      `json:"growthRate"`
}

// MessageMetrics bloque de mensajes del reporte.
type MessageMetrics struct {
	TotalMessages  int64        `json:"totalMessages"`
	MessagesByRole []GroupCount `json:"messagesByRole"`
}

// MemoryUsage uso de memoria del proceso (bytes), a partir de runtime.MemStats.
type MemoryUsage struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"totalAlloc"`
	Sys        uint64 `json:"sys"`
	HeapInuse  uint64 `json:"heapInuse"`
	NumGC      uint32 `json:"numGC"`
}

// SystemMetrics bloque del proceso del reporte.
type SystemMetrics struct {
	Uptime      float64     `json:"uptime"` // segundos
	MemoryUsage MemoryUsage `json:"memoryUsage"`
	GoVersion   string      `json:"goVersion"`
	Platform    string      `json:"platform"`
	Goroutines  int         `json:"goroutines"`
}

// ReportResponse salida de GET /api/admin/reports.
type ReportResponse struct {
	UserMetrics    UserMetrics    `json:"userMetrics"`
	MessageMetrics MessageMetrics `json:"messageMetrics"`
	SystemMetrics  SystemMetrics  `json:"systemMetrics"`
}

// SystemSettings, NotificationSettings, SecuritySettings y FeatureSettings forman el documento de configuración.
type SystemSettings struct {
	MaintenanceMode     bool   `json:"maintenanceMode"`
	RegistrationEnabled bool   `json:"registrationEnabled"`
	MaxUsersPerRole     int    `json:"maxUsersPerRole"`
	SessionTimeout      int    `json:"sessionTimeout"`
	BackupFrequency     string `json:"backupFrequency"`
}

type NotificationSettings struct {
	EmailNotifications    bool   `json:"emailNotifications"`
	SMSNotifications      bool   `json:"smsNotifications"`
	PushNotifications     bool   `json:"pushNotifications"`
	NotificationFrequency string `json:"notificationFrequency"`
}

type SecuritySettings struct {
	PasswordMinLength int  `json:"passwordMinLength"`
	RequireTwoFactor  bool `json:"requireTwoFactor"`
	MaxLoginAttempts  int  `json:"maxLoginAttempts"`
	LockoutDuration   int  `json:"lockoutDuration"`
}

type FeatureSettings struct {
	EnableMessaging      bool `json:"enableMessaging"`
	EnableReports        bool `json:"enableReports"`
	EnableLogs           bool `json:"enableLogs"`
	EnableUserManagement bool `json:"enableUserManagement"`
}

// Settings documento de GET /api/admin/settings.
type Settings struct {
	System        SystemSettings       `json:"system"`
	Notifications NotificationSettings `json:"notifications"`
	Security      SecuritySettings     `json:"security"`
	Features      FeatureSettings      `json:"features"`
}

// UpdateSettingsRequest entrada de PUT /api/admin/settings; settings debe ser un objeto JSON.
type UpdateSettingsRequest struct {
	Settings map[string]any `json:"settings"`
}

// UpdateSettingsResponse eco de la configuración recibida.
type UpdateSettingsResponse struct {
	Message  string         `json:"message"`
	Settings map[string]any `json:"settings"`
}

// SendMessageRequest entrada de POST /api/admin/send-message.
type SendMessageRequest struct {
	Subject     string   `json:"subject" validate:"required"`
	Message     string   `json:"message" validate:"required"`
	Roles       []string `json:"roles" validate:"required,min=1,dive,required"`
	TargetUsers []string `json:"targetUsers"`
}

// AdminMessageResponse mensaje persistido.
type AdminMessageResponse struct {
	ID          string    `json:"_id"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	Roles       []string  `json:"roles"`
	TargetUsers []string  `json:"targetUsers"`
	SentAt      time.Time `json:"sentAt"`
	SentBy      *string   `json:"sentBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SendMessageResponse salida del envío.
type SendMessageResponse struct {
	Message string               `json:"message"`
	Data    AdminMessageResponse `json:"data"`
}

// MessageSummary mensaje en la bandeja de un rol/usuario.
type MessageSummary struct {
	ID      string    `json:"id"`
	Subject string    `json:"subject"`
	SentAt  time.Time `json:"sent_at"`
	Content string    `json:"content"`
}

// MessagesResponse salida de GET /api/admin/getMessages.
type MessagesResponse struct {
	Messages []MessageSummary `json:"messages"`
}
