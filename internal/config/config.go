package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env       Env
	Minio     MinioConfig
	Upload    UploadConfig
	Migration MigrationConfig
	NATS      NATSConfig
	Database  DatabaseConfig
	Server    ServerConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type MinioConfig struct {
	Endpoint                  string        `envconfig:"MINIO_ENDPOINT" required:"true"`
	TempBucket                string        `envconfig:"MINIO_TEMP_BUCKET" required:"true"`
	PermanentBucket           string        `envconfig:"MINIO_PERMANENT_BUCKET" required:"true"`
	AccessKey                 string        `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey                 string        `envconfig:"MINIO_SECRET_KEY" required:"true"`
	UploadPresignedDuration   time.Duration `envconfig:"MINIO_UPLOAD_PRESIGNED_DURATION" default:"15m"`
	DownloadSignedURLDuration time.Duration `envconfig:"MINIO_DOWNLOAD_SIGNED_URL_DURATION" default:"15m"`
	UseSSL                    bool          `envconfig:"MINIO_USE_SSL" default:"false"`
}

type UploadConfig struct {
	MaxPhotoSize int64 `envconfig:"UPLOAD_MAX_PHOTO_SIZE" default:"20971520"`  // 20MB
	MaxAudioSize int64 `envconfig:"UPLOAD_MAX_AUDIO_SIZE" default:"104857600"` // 100MB
}

type MigrationConfig struct {
	// CopyTimeout bounds each copy/stat call against the object store.
	CopyTimeout time.Duration `envconfig:"MIGRATION_COPY_TIMEOUT" default:"30s"`
	// CopyRetries is the number of extra attempts on transient store errors.
	CopyRetries      int           `envconfig:"MIGRATION_COPY_RETRIES" default:"2"`
	CopyRetryBackoff time.Duration `envconfig:"MIGRATION_COPY_RETRY_BACKOFF" default:"500ms"`
	// SweepGracePeriod is how long temporary blobs outlive their usefulness
	// before the retention sweeper may delete them.
	SweepGracePeriod time.Duration `envconfig:"MIGRATION_SWEEP_GRACE_PERIOD" default:"72h"`
	SweepEvery       time.Duration `envconfig:"MIGRATION_SWEEP_EVERY" default:"1h"`
}

type NATSConfig struct {
	URL            string `envconfig:"NATS_URL" required:"true"`
	StreamName     string `envconfig:"NATS_STREAM_NAME" required:"true"`
	ConsumerName   string `envconfig:"NATS_CONSUMER_NAME" required:"true"`
	Subject        string `envconfig:"NATS_SUBJECT" required:"true"`
	DeliverGroup   string `envconfig:"NATS_DELIVER_GROUP" required:"true"`
	PublishSubject string `envconfig:"NATS_PUBLISH_SUBJECT" default:"order.migrated"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
