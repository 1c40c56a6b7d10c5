package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"       validate:"required"`
	Database     DatabaseConfig     `mapstructure:"database"     validate:"required"`
	Auth         AuthConfig         `mapstructure:"auth"         validate:"required"`
	Gamification GamificationConfig `mapstructure:"gamification" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret               string `mapstructure:"jwt_secret"                validate:"required,min=32"`
	TokenLifetimeMinutes    int    `mapstructure:"token_lifetime_minutes"    validate:"required,gt=0"`
	RefreshLifetimeMinutes  int    `mapstructure:"refresh_lifetime_minutes"  validate:"required,gt=0"`
	BCryptCost              int    `mapstructure:"bcrypt_cost"               validate:"gte=0,lte=31"`
}

// GamificationConfig contains the tunable gamification settings: heart
// capacity, refill cadence and the default lesson reward.
type GamificationConfig struct {
	MaxHearts          int `mapstructure:"max_hearts"           validate:"required,gt=0"`
	HeartRefillMinutes int `mapstructure:"heart_refill_minutes" validate:"required,gt=0"`
	DefaultLessonXP    int `mapstructure:"default_lesson_xp"    validate:"gte=0"`
}
