package logging

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

// writerHook duplicates every entry into all configured writers.
type writerHook struct {
	Writer    []io.Writer
	LogLevels []logrus.Level
}

func (hook *writerHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	for _, w := range hook.Writer {
		_, _ = w.Write([]byte(line))
	}
	return nil
}

func (hook *writerHook) Levels() []logrus.Level {
	return hook.LogLevels
}

type Logger struct {
	*logrus.Entry
}

var e *logrus.Entry
var once sync.Once

func GetLogger() *Logger {
	once.Do(initLogger)
	return &Logger{e}
}

// SetDebug switches the level at runtime, driven by the LOG section of the config.
func SetDebug(debug bool) {
	logger := GetLogger()
	if debug {
		logger.Logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.Logger.SetLevel(logrus.InfoLevel)
	}
}

func initLogger() {
	l := logrus.New()
	l.SetReportCaller(true)
	l.Formatter = &logrus.TextFormatter{
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			filename := path.Base(frame.File)
			return fmt.Sprintf("%s()", path.Base(frame.Function)), fmt.Sprintf("%s:%d", filename, frame.Line)
		},
		DisableColors: false,
		FullTimestamp: true,
	}

	writers := []io.Writer{os.Stdout}
	if err := os.MkdirAll("logs", 0770); err == nil {
		file, err := os.OpenFile("logs/all.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
		if err == nil {
			writers = append(writers, file)
		}
	}

	l.SetOutput(io.Discard)

	l.AddHook(&writerHook{
		Writer:    writers,
		LogLevels: logrus.AllLevels,
	})

	l.SetLevel(logrus.InfoLevel)

	e = logrus.NewEntry(l)
}
