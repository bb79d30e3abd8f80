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

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/googlecloudplatform/dummygen/cfg"
	"github.com/googlecloudplatform/dummygen/internal/generator"
	"github.com/googlecloudplatform/dummygen/internal/locker"
	"github.com/googlecloudplatform/dummygen/internal/logger"
	"github.com/googlecloudplatform/dummygen/internal/metrics"
	"github.com/googlecloudplatform/dummygen/internal/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	// Bursts of the write throttle never exceed this window's worth of bytes.
	throttleWindow = 100 * time.Millisecond

	metricsShutdownTimeout = 5 * time.Second
)

func runGeneration(c cfg.Config) (err error) {
	if err = logger.InitLogFile(c.Logging); err != nil {
		return fmt.Errorf("init log file: %w", err)
	}
	defer logger.Close()

	if c.Debug.LogMutex {
		locker.EnableDebugMessages()
	}
	logger.Debugf("Effective config:\n%s", c.String())

	rc := c.RunConfig()
	opts, shutdown, err := generatorOptions(rc, c.Metrics.PrometheusPort)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if shutdownErr := shutdown(ctx); shutdownErr != nil {
			logger.Warnf("Metrics shutdown: %v", shutdownErr)
		}
	}()

	report, err := generator.New(rc, opts...).Run(context.Background())
	if err != nil {
		logger.Errorf("Generation failed: %v", err)
		return err
	}
	if report.FilesFailed > 0 {
		logger.Warnf("%d files could not be created", report.FilesFailed)
	}
	return nil
}

// generatorOptions wires the metrics and throttle requested by the config.
// The returned function stops the metrics endpoint, if any.
func generatorOptions(rc cfg.RunConfig, prometheusPort int64) ([]generator.Option, metrics.ShutdownFn, error) {
	var opts []generator.Option
	shutdown := metrics.ShutdownFn(func(context.Context) error { return nil })

	if prometheusPort > 0 {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		mh, err := metrics.NewPrometheusMetrics(reg, rc.NodeID)
		if err != nil {
			return nil, nil, fmt.Errorf("creating metrics: %w", err)
		}
		opts = append(opts, generator.WithMetrics(mh))
		shutdown = metrics.ServeMetrics(prometheusPort, reg)
	}

	if rc.MaxWriteBytesPerSec > 0 {
		capacity, err := ratelimit.ChooseLimiterCapacity(rc.MaxWriteBytesPerSec, throttleWindow)
		if err != nil {
			return nil, nil, fmt.Errorf("choosing write throttle capacity: %w", err)
		}
		opts = append(opts, generator.WithThrottle(ratelimit.NewThrottle(rc.MaxWriteBytesPerSec, capacity)))
	}

	return opts, shutdown, nil
}
