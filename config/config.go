package config

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Config struct {
	Host   string `envconfig:"HOST"`
	Port   string `envconfig:"PORT"`
	Prefix string `envconfig:"PREFIX"`
	Mode   Mode   `envconfig:"MODE"`
	Cors   Cors
	Mysql  Mysql
	JWT    JWT
	Log    Log `mapstructure:"Log"`
	Sentry Sentry
	OTel   OTel `mapstructure:"OTel"`
	S3     S3
}

type Cors struct {
	Origins []string `envconfig:"ORIGINS" mapstructure:"origins"`
}

type Mysql struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET"`
	AccessExpire int64  `envconfig:"ACCESS_EXPIRE"` // seconds, defaults to 7 days
}

type Log struct {
	FilePath   string `envconfig:"LOG_FILE_PATH" mapstructure:"file_path"`
	Level      string `envconfig:"LOG_LEVEL" mapstructure:"level"` // debug, info, warn, error
	MaxSize    int    `envconfig:"LOG_MAX_SIZE" mapstructure:"max_size"`
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" mapstructure:"max_backups"`
	MaxAge     int    `envconfig:"LOG_MAX_AGE" mapstructure:"max_age"`
	Compress   bool   `envconfig:"LOG_COMPRESS" mapstructure:"compress"`
}

type Sentry struct {
	Dsn         string  `envconfig:"DSN" mapstructure:"dsn"`
	Environment string  `envconfig:"ENVIRONMENT" mapstructure:"environment"`
	SampleRate  float64 `envconfig:"SAMPLE_RATE" mapstructure:"sample_rate"`
}

type OTel struct {
	Enable      bool   `envconfig:"ENABLE" mapstructure:"enable"`
	AgentHost   string `envconfig:"AGENT_HOST" mapstructure:"agent_host"`
	AgentPort   string `envconfig:"AGENT_PORT" mapstructure:"agent_port"`
	ServiceName string `envconfig:"SERVICE_NAME" mapstructure:"service_name"`
}

type S3 struct {
	Endpoint        string `mapstructure:"endpoint"`
	BaseURL         string `mapstructure:"base_url"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKey       string `mapstructure:"access_key"`
	SecretAccessKey string `mapstructure:"secret_key"`
	Prefix          string `mapstructure:"prefix"`
	UsePathStyle    bool   `mapstructure:"path_style"`
}
