package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New configures the package-level logrus logger and returns it.
// Development gets human readable output, every other environment gets JSON.
func New(appName, env string) *logrus.Logger {
	l := logrus.StandardLogger()
	l.SetOutput(os.Stdout)
	if env == "development" {
		l.SetLevel(logrus.DebugLevel)
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetLevel(logrus.InfoLevel)
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	l.WithFields(logrus.Fields{"app": appName, "env": env}).Info("logger initialized")
	return l
}

// LogError logs msg at error level with err attached to fields.
func LogError(msg string, err error, fields logrus.Fields) {
	if fields == nil {
		fields = logrus.Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	logrus.WithFields(fields).Error(msg)
}
