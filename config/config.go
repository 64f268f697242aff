package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	defaultServicePort = "5000"
	defaultMetricsPort = "9090"
	defaultDBName      = "apparel_store"
	defaultSMTPPort    = 587
)

type Config struct {
	ServicePort             string
	MetricsPort             string
	MongoDBConfig           MongoDBConfig
	JWTSecret               string
	AWSConfig               AWSConfig
	KafkaConfig             KafkaConfig
	TracingConfig           TracingConfig
	SMTPConfig              SMTPConfig
	RatingReconcileInterval time.Duration
}

type MongoDBConfig struct {
	URI    string
	DBName string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
}

type KafkaConfig struct {
	BrokerAddress string
	BrokerTopic   string
}

func (k KafkaConfig) Enabled() bool {
	return k.BrokerAddress != "" && k.BrokerTopic != ""
}

type TracingConfig struct {
	CollectorHost string
}

func (t TracingConfig) Enabled() bool {
	return t.CollectorHost != ""
}

type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.Sender != ""
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: getEnv("SERVICE_PORT", defaultServicePort),
		MetricsPort: getEnv("METRICS_PORT", defaultMetricsPort),
		MongoDBConfig: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getEnv("DB_NAME", defaultDBName),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		AWSConfig: AWSConfig{
			Region:          os.Getenv("AWS_REGION"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			BucketName:      os.Getenv("AWS_BUCKET_NAME"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   os.Getenv("BROKER_TOPIC"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		SMTPConfig: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     defaultSMTPPort,
			Sender:   os.Getenv("SMTP_SENDER"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
	}

	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn().Err(err).Str("component", "CreateNewConfig").Msg("Invalid SMTP_PORT, using default")
		} else {
			conf.SMTPConfig.Port = port
		}
	}

	if raw := os.Getenv("RATING_RECONCILE_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			log.Warn().Err(err).Str("component", "CreateNewConfig").Msg("Invalid RATING_RECONCILE_INTERVAL, job disabled")
		} else {
			conf.RatingReconcileInterval = interval
		}
	}

	return &conf
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
