// Package logging configures the process-wide logrus logger.
package logging

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Setup sets the level and output of the standard logger. When file is set,
// log lines are appended there instead of stderr.
func Setup(level, file string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if file == "" {
		return nil
	}
	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	log.Infof("logging to %s", file)
	return nil
}
