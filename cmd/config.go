package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/errs"
)

type Config struct {
	HTTPPort string
	AppEnv   string

	HeadOfficeDSN    string
	HeadOfficeSchema string
	ReportingDSN     string
	ReportingTable   string
	MongoURI         string
	MongoDatabase    string
	AutoMigrate      bool

	StoreID          string
	StoreTimezone    string
	CloseDaySchedule string

	KafkaBrokers          []string
	KafkaFulfillmentTopic string

	RequestAttempts int
}

// LoadConfig reads the configuration through getenv, applying defaults, and validates it.
func LoadConfig(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	attempts, err := strconv.Atoi(get("REQUEST_ATTEMPTS", "3"))
	if err != nil {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("REQUEST_ATTEMPTS", err)
	}

	autoMigrate, err := strconv.ParseBool(get("AUTO_MIGRATE", "false"))
	if err != nil {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("AUTO_MIGRATE", err)
	}

	cfg := Config{
		HTTPPort:              get("HTTP_PORT", "8080"),
		AppEnv:                get("APP_ENV", "development"),
		HeadOfficeDSN:         get("HEAD_OFFICE_DSN", ""),
		HeadOfficeSchema:      get("HEAD_OFFICE_SCHEMA", "pizza"),
		ReportingDSN:          get("REPORTING_DSN", ""),
		ReportingTable:        get("REPORTING_TABLE", "daily_summary"),
		MongoURI:              get("MONGO_URI", ""),
		MongoDatabase:         get("MONGO_DATABASE", "Pizza"),
		AutoMigrate:           autoMigrate,
		StoreID:               get("STORE_ID", "1102929"),
		StoreTimezone:         get("STORE_TIMEZONE", "Australia/Brisbane"),
		CloseDaySchedule:      get("CLOSE_DAY_SCHEDULE", jobs.DefaultCloseDaySchedule),
		KafkaBrokers:          splitList(get("KAFKA_BROKERS", "")),
		KafkaFulfillmentTopic: get("KAFKA_FULFILLMENT_TOPIC", "fulfillment-events"),
		RequestAttempts:       attempts,
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var validationErrs []error

	required := []struct{ key, value string }{
		{"HEAD_OFFICE_DSN", c.HeadOfficeDSN},
		{"REPORTING_DSN", c.ReportingDSN},
		{"MONGO_URI", c.MongoURI},
		{"STORE_ID", c.StoreID},
	}
	for _, r := range required {
		if r.value == "" {
			validationErrs = append(validationErrs, errs.NewValueIsRequiredError(r.key))
		}
	}

	if _, err := c.Location(); err != nil {
		validationErrs = append(validationErrs, err)
	}
	if c.RequestAttempts < 1 {
		validationErrs = append(validationErrs,
			errs.NewValueIsOutOfRangeError("REQUEST_ATTEMPTS", c.RequestAttempts, 1, "max int"))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaFulfillmentTopic == "" {
		validationErrs = append(validationErrs, errs.NewValueIsRequiredError("KAFKA_FULFILLMENT_TOPIC"))
	}

	return errors.Join(validationErrs...)
}

// Location is the store's time zone; business dates and the close-day schedule use it.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.StoreTimezone)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("STORE_TIMEZONE", fmt.Errorf("%q: %w", c.StoreTimezone, err))
	}
	return loc, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
