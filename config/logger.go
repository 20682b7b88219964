package config

import "github.com/sirupsen/logrus"

// NewLogger configures the global logrus logger and returns it.
func NewLogger(level string) *logrus.Logger {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logrus.SetLevel(lvl)
	return logrus.StandardLogger()
}
