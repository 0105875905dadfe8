// Package logging configure the logrus logger shared by the whole service.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the service-wide logger
var Log = logrus.New()

// Configure set level and formatter of Log. Format "json" select JSON output, anything else is text.
func Configure(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Log.SetLevel(lvl)
	Log.SetOutput(os.Stdout)

	if strings.EqualFold(format, "json") {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
