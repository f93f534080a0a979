// Package logging writes the events published on the bus to a diagnostics
// log. The menu itself never logs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"listmenu/internal/config"
	"listmenu/internal/eventbus"
)

const component = "listmenu"

// New creates a logger for settings. Without a file the logger discards its
// output, since the terminal belongs to the menu. The returned close function
// releases the log file.
func New(settings config.LogSettings) (*logrus.Entry, func() error, error) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	closer := func() error { return nil }

	levelStr := settings.Level
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(level)

	switch settings.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", settings.Format)
	}

	if settings.File != "" {
		if err := os.MkdirAll(filepath.Dir(settings.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(settings.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.SetOutput(file)
		closer = file.Close
	}

	return logger.WithField("component", component), closer, nil
}

// Attach logs every event published on bus until the returned function is called
func Attach(bus eventbus.EventBus, log *logrus.Entry) func() {
	return bus.SubscribeAll(func(e eventbus.DomainEvent) {
		entry := log.WithFields(Fields(e))
		switch e.(type) {
		case eventbus.CursorMovedEvent, eventbus.WindowChangedEvent, eventbus.RedrawEvent:
			entry.Debug(string(e.Type()))
		case eventbus.KeyUnboundEvent, eventbus.AcceptIgnoredEvent:
			entry.Warn(string(e.Type()))
		default:
			entry.Info(string(e.Type()))
		}
	})
}

// Fields returns the structured fields logged for e
func Fields(e eventbus.DomainEvent) logrus.Fields {
	fields := logrus.Fields{"event": string(e.Type())}
	switch e := e.(type) {
	case eventbus.CursorMovedEvent:
		fields["old"] = e.OldIndex
		fields["new"] = e.NewIndex
	case eventbus.WindowChangedEvent:
		fields["start"] = e.Start
		fields["end"] = e.End
		fields["height"] = e.Height
	case eventbus.ViewportResizedEvent:
		fields["width"] = e.Width
		fields["height"] = e.Height
	case eventbus.RedrawEvent:
		fields["full"] = e.Full
		fields["rows"] = len(e.Rows)
	case eventbus.KeyUnboundEvent:
		fields["key"] = e.Key
	case eventbus.AcceptedEvent:
		fields["index"] = e.Index
		fields["element"] = e.Element
	case eventbus.AcceptIgnoredEvent:
		fields["reason"] = e.Reason
	case eventbus.ConfigLoadedEvent:
		fields["path"] = e.Path
		fields["default"] = e.Default
	case eventbus.ConfigSavedEvent:
		fields["path"] = e.Path
	case eventbus.ScanCompletedEvent:
		fields["root"] = e.Root
		fields["found"] = e.Found
		fields["skipped"] = e.Skipped
	}
	return fields
}
