package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// LockTimeout bounds row-lock waits inside a transaction; zero keeps the server default.
	LockTimeout time.Duration

	KafkaBrokers    []string
	KafkaAuditTopic string

	// RelaySchedule is a six-field cron expression. An empty schedule disables the relay.
	RelaySchedule string
	RelayBatch    int
	// RelaySettle holds entries back from the relay until they are this old.
	RelaySettle time.Duration

	Currency    string
	DefaultRate int64
	RateCard    string
}

// DSN is the libpq connection string for the record store.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// RelayEnabled reports whether the audit relay has somewhere to publish.
func (c Config) RelayEnabled() bool {
	return c.RelaySchedule != "" && len(c.KafkaBrokers) > 0 && c.KafkaAuditTopic != ""
}
