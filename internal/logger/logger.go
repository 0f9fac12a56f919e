// Package logger configures the go-logging backend shared by the binaries.
package logger

import (
	"io"
	"strings"

	"github.com/op/go-logging"
)

const formatSpec = "%{time:15:04:05.000} %{level:.4s} %{module:-10s} | %{message}"

// Setup routes all loggers to w at the given level. Unknown level names fall
// back to INFO.
func Setup(prefix, level string, w io.Writer) logging.LeveledBackend {
	backend := logging.NewLogBackend(w, prefix, 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(formatSpec))
	leveled := logging.AddModuleLevel(formatted)
	lvl, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		lvl = logging.INFO
	}
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)
	return leveled
}
