package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// newLogger returns a logger at level, raised by one step per verbose
// flag up to debug.
func newLogger(out io.Writer, level string, verbose int) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, usageError{errors.Wrap(err, "--log-level")}
	}
	switch {
	case verbose >= 2 && lvl < logrus.DebugLevel:
		lvl = logrus.DebugLevel
	case verbose == 1 && lvl < logrus.InfoLevel:
		lvl = logrus.InfoLevel
	}
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return log, nil
}
