package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &logrus.TextFormatter{DisableTimestamp: true},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.InfoLevel,
}

func debugLog(format string, a ...any) {
	logger.Debug(strings.TrimRight(fmt.Sprintf(format, a...), "\n"))
}
