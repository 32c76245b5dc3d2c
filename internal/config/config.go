package config

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	DBHost            string        `env:"DB_HOST,required"`
	DBPort            int           `env:"DB_PORT,default=5432"`
	DBUser            string        `env:"DB_USER,required"`
	DBPassword        string        `env:"DB_PASSWORD,required"`
	DBName            string        `env:"DB_NAME,required"`
	DBSSLMode         string        `env:"DB_SSLMODE,default=disable"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=10"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=25"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=30m"`

	DoinsportBaseURL string        `env:"DOINSPORT_API_BASE,default=https://api-v3.doinsport.club"`
	DoinsportTimeout time.Duration `env:"DOINSPORT_TIMEOUT,default=15s"`
	PadelActivityID  string        `env:"PADEL_ACTIVITY_ID,default=ce8c306e-224a-4f24-aa9d-6500580924dc"`
	ProviderRPS      float64       `env:"PROVIDER_RPS,default=2"`

	ResendAPIKey  string `env:"RESEND_API_KEY,required"`
	ResendBaseURL string `env:"RESEND_BASE_URL,default=https://api.resend.com"`
	FromEmail     string `env:"FROM_EMAIL,default=contact@krenoo.fr"`

	ExpoPushURL string `env:"EXPO_PUSH_URL,default=https://exp.host/--/api/v2/push/send"`

	SupabaseURL        string        `env:"SUPABASE_URL,required"`
	SupabaseServiceKey string        `env:"SUPABASE_SERVICE_KEY,required"`
	IdentityTimeout    time.Duration `env:"IDENTITY_TIMEOUT,default=10s"`

	TickInterval       time.Duration `env:"TICK_INTERVAL,default=60s"`
	BoostTickInterval  time.Duration `env:"BOOST_TICK_INTERVAL,default=10s"`
	BoostCheckInterval time.Duration `env:"BOOST_CHECK_INTERVAL,default=30s"`
	AlertThrottle      time.Duration `env:"ALERT_THROTTLE,default=1s"`
	SchedulerBackoff   time.Duration `env:"SCHEDULER_BACKOFF,default=10s"`
	ReclaimEveryTicks  int           `env:"RECLAIM_EVERY_TICKS,default=100"`
	SlotRetentionDays  int           `env:"SLOT_RETENTION_DAYS,default=7"`

	LogLevel string `env:"LOG_LEVEL,default=info"`
}

func Load(ctx context.Context) (Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
