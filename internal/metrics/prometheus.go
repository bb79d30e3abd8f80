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

package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/googlecloudplatform/dummygen/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dummygen"

type promMetrics struct {
	filesCreated  prometheus.Counter
	bytesWritten  prometheus.Counter
	filesSkipped  prometheus.Counter
	filesFailed   prometheus.Counter
	statusPublish *prometheus.CounterVec
}

// NewPrometheusMetrics registers the node's counters with reg.
func NewPrometheusMetrics(reg prometheus.Registerer, nodeID int64) (MetricHandle, error) {
	constLabels := prometheus.Labels{"node_id": strconv.FormatInt(nodeID, 10)}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
	}
	m := &promMetrics{
		filesCreated: counter("files_created_total", "Number of files written by this node."),
		bytesWritten: counter("bytes_written_total", "Number of bytes written by this node."),
		filesSkipped: counter("files_skipped_total", "Number of files skipped because they already existed."),
		filesFailed:  counter("files_failed_total", "Number of files that could not be written."),
		statusPublish: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "status_publish_total",
			Help:        "Number of attempts to publish the shared status, by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}
	for _, c := range []prometheus.Collector{m.filesCreated, m.bytesWritten, m.filesSkipped, m.filesFailed, m.statusPublish} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering metric: %w", err)
		}
	}
	return m, nil
}

func (m *promMetrics) FileCreated(bytes int64) {
	m.filesCreated.Inc()
	m.bytesWritten.Add(float64(bytes))
}

func (m *promMetrics) FileSkipped() {
	m.filesSkipped.Inc()
}

func (m *promMetrics) FileFailed() {
	m.filesFailed.Inc()
}

func (m *promMetrics) StatusPublished(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.statusPublish.WithLabelValues(result).Inc()
}

// ServeMetrics exposes the metrics gathered by g at :port/metrics until the
// returned function is called.
func ServeMetrics(port int64, g prometheus.Gatherer) ShutdownFn {
	logger.Infof("Serving metrics at localhost:%d/metrics", port)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	prometheusServer := &http.Server{
		Addr:           fmt.Sprintf(":%d", port),
		Handler:        mux,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	go func() {
		if err := prometheusServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Failed to start Prometheus server: %v", err)
		}
	}()
	return func(ctx context.Context) error {
		logger.Infof("Shutting down Prometheus exporter.")
		return prometheusServer.Shutdown(ctx)
	}
}
