// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cfg

import (
	"fmt"
	"math"
)

// ConfigError reports an invalid configuration value. It is always fatal.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func isValidLogRotateConfig(config *LogRotateLoggingConfig) error {
	if config.MaxFileSizeMb <= 0 {
		return &ConfigError{Field: "max-file-size-mb", Reason: "should be atleast 1"}
	}
	if config.BackupFileCount < 0 {
		return &ConfigError{Field: "backup-file-count", Reason: "should be 0 (to retain all backup files) or a positive value"}
	}
	return nil
}

func isValidLogFormat(format string) error {
	if format != TextLogFormat && format != JSONLogFormat {
		return &ConfigError{Field: "log-format", Reason: fmt.Sprintf("%q is not one of [text, json]", format)}
	}
	return nil
}

func isValidMetricsConfig(c *MetricsConfig) error {
	if c.PrometheusPort < 0 || c.PrometheusPort > MaxPort {
		return &ConfigError{Field: "prometheus-port", Reason: fmt.Sprintf("must be in [0, %d]", MaxPort)}
	}
	return nil
}

// isValidGenerationConfig rejects values that cannot be converted to bytes.
func isValidGenerationConfig(c *GenerationConfig) error {
	if c.FileSizeKb > math.MaxInt64/1024 {
		return &ConfigError{Field: "size-kb", Reason: fmt.Sprintf("must be at most %d", int64(math.MaxInt64/1024))}
	}
	if math.IsNaN(c.MaxWriteMbPerSec) || math.IsInf(c.MaxWriteMbPerSec, 0) {
		return &ConfigError{Field: "max-write-mb-per-sec", Reason: "must be a finite number"}
	}
	return nil
}

// ValidateConfig returns a non-nil error if the config is invalid.
func ValidateConfig(config *Config) error {
	var err error

	if err = isValidLogRotateConfig(&config.Logging.LogRotate); err != nil {
		return fmt.Errorf("error parsing log-rotate config: %w", err)
	}

	if err = isValidLogFormat(config.Logging.Format); err != nil {
		return fmt.Errorf("error parsing logging config: %w", err)
	}

	if err = isValidMetricsConfig(&config.Metrics); err != nil {
		return fmt.Errorf("error parsing metrics config: %w", err)
	}

	if err = isValidGenerationConfig(&config.Generation); err != nil {
		return fmt.Errorf("error parsing generation config: %w", err)
	}

	if err = config.RunConfig().Validate(); err != nil {
		return fmt.Errorf("error parsing generation config: %w", err)
	}

	return nil
}
