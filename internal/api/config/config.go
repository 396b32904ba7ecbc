package config

// Config 配置主体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"database"`
	Redis  RedisConfig  `mapstructure:"redis"`
	MinIO  MinIOConfig  `mapstructure:"minio"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
	Blog   BlogConfig   `mapstructure:"blog"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	UsePublicLink    bool   `mapstructure:"use_public_link"`
}

type KafkaConfig struct {
	Enable  bool       `mapstructure:"enable"`
	Brokers []string   `mapstructure:"brokers"`
	Topic   string     `mapstructure:"topic"`
	Sasl    SaslConfig `mapstructure:"sasl"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// BlogConfig 博客业务配置
type BlogConfig struct {
	DraftTTLHours     int    `mapstructure:"draft_ttl_hours"`
	ShortURLBase      string `mapstructure:"short_url_base"`
	ClickFlushSpec    string `mapstructure:"click_flush_spec"`
	DraftSweepSpec    string `mapstructure:"draft_sweep_spec"`
	DefaultPageSize   int    `mapstructure:"default_page_size"`
	MaxUploadSizeMB   int    `mapstructure:"max_upload_size_mb"`
	ThumbnailMaxWidth int    `mapstructure:"thumbnail_max_width"`
}
