package logger

import (
	"bytes"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	var buf bytes.Buffer
	backend := Setup("test: ", "warning", &buf)
	require.Equal(t, logging.WARNING, backend.GetLevel(""))

	log := logging.MustGetLogger("loggertest")
	log.Info("hidden")
	log.Warning("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "loggertest")

	backend = Setup("test: ", "nonsense", &buf)
	require.Equal(t, logging.INFO, backend.GetLevel(""))
}
