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

package logger

import (
	"log/slog"
	"strings"

	"github.com/googlecloudplatform/dummygen/cfg"
)

const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	// Nothing is logged at or above this level.
	LevelOff = slog.Level(12)
)

const textTimeFormat = "02/01/2006 15:04:05.000000"

func setLoggingLevel(level string, programLevel *slog.LevelVar) {
	// logs having severity >= the configured value will be logged.
	switch strings.ToUpper(level) {
	case cfg.TRACE:
		programLevel.Set(LevelTrace)
	case cfg.DEBUG:
		programLevel.Set(LevelDebug)
	case cfg.WARNING:
		programLevel.Set(LevelWarn)
	case cfg.ERROR:
		programLevel.Set(LevelError)
	case cfg.OFF:
		programLevel.Set(LevelOff)
	default:
		programLevel.Set(LevelInfo)
	}
}

func severityName(l slog.Level) string {
	switch {
	case l < LevelDebug:
		return cfg.TRACE
	case l < LevelInfo:
		return cfg.DEBUG
	case l < LevelWarn:
		return cfg.INFO
	case l < LevelError:
		return cfg.WARNING
	default:
		return cfg.ERROR
	}
}

// customiseAttrs renames the built-in attributes to time/timestamp, severity
// and message, and prepends prefix to every message.
func customiseAttrs(prefix string, json bool) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) > 0 {
			return a
		}
		switch a.Key {
		case slog.TimeKey:
			t := a.Value.Time()
			if json {
				return slog.Group("timestamp", slog.Int64("seconds", t.Unix()), slog.Int("nanos", t.Nanosecond()))
			}
			return slog.String("time", t.Format(textTimeFormat))
		case slog.LevelKey:
			level, _ := a.Value.Any().(slog.Level)
			return slog.String("severity", severityName(level))
		case slog.MessageKey:
			return slog.String("message", prefix+a.Value.String())
		}
		return a
	}
}
