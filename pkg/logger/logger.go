package logger

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

const timestampLayout = "2006-01-02T15:04:05Z"

// ANSI color codes applied to the level tag in development mode.
var levelColors = map[logrus.Level]string{
	logrus.InfoLevel:  "\033[32m",
	logrus.WarnLevel:  "\033[33m",
	logrus.ErrorLevel: "\033[31m",
}

const colorReset = "\033[0m"

// LineFormatter renders one line per event: a level tag, the UTC
// timestamp and space-separated key=value pairs.
type LineFormatter struct {
	// Colored wraps the level tag in ANSI color codes.
	Colored bool
}

func (f *LineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	level := levelTag(entry.Level)
	if f.Colored {
		if color, ok := levelColors[entry.Level]; ok {
			level = color + level + colorReset
		}
	}

	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(entry.Time.UTC().Format(timestampLayout))

	if entry.Message != "" {
		b.WriteByte(' ')
		b.WriteString(entry.Message)
	}

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		fmt.Fprintf(&b, "%v", entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelTag(level logrus.Level) string {
	switch level {
	case logrus.WarnLevel:
		return "WARN"
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return "ERROR"
	default:
		return "INFO"
	}
}

// InitLogger configures the package logger. Colored output is enabled in
// development mode only.
func InitLogger(dev bool) {
	Log = logrus.New()
	Log.Out = os.Stdout
	Log.SetFormatter(&LineFormatter{Colored: dev})
	Log.SetLevel(logrus.InfoLevel)

	// Repositories and services log through the package-level logrus
	// entry points, keep them on the same formatter.
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&LineFormatter{Colored: dev})
}
