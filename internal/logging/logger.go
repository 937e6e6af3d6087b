package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger, configured once by Init.
var Logger = logrus.New()

type eventFormatter struct {
	SystemName string
}

func (f *eventFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(fmt.Sprintf("Date: %s, Time: %s, ", entry.Time.Format("2006-01-02"), entry.Time.Format("15:04:05")))
	b.WriteString(fmt.Sprintf("Event Source: %s, ", f.SystemName))
	b.WriteString(fmt.Sprintf("Event Type: %s, ", strings.ToUpper(entry.Level.String())))
	b.WriteString(fmt.Sprintf("Event ID: %s, ", uuid.New().String()))
	b.WriteString(fmt.Sprintf("Message: %s", entry.Message))

	if entry.HasCaller() {
		b.WriteString(fmt.Sprintf(", Location: %s:%d", entry.Caller.File, entry.Caller.Line))
	}

	b.WriteByte('\n')

	return b.Bytes(), nil
}

// Init configures the shared logger. With a non-empty logDir entries go
// to a rotated file under it, otherwise to stdout.
func Init(systemName, logDir string) {
	if logDir != "" {
		if _, err := os.Stat(logDir); os.IsNotExist(err) {
			if err := os.MkdirAll(logDir, 0o700); err != nil {
				logrus.Fatalf("failed to create log directory: %v", err)
			}
		}

		Logger.SetOutput(&lumberjack.Logger{
			Filename:   filepath.Join(logDir, systemName+".log"),
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	}

	Logger.SetFormatter(&eventFormatter{SystemName: systemName})
	Logger.SetLevel(logrus.InfoLevel)
}
