package main

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsanimesh04/DevMetrics/internal/config"
)

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"port", "log-level", "env-file"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	require.NoError(t, cmd.Flags().Set("port", "9090"))
	assert.Equal(t, "9090", cmd.Flags().Lookup("port").Value.String())
}

func TestConfigureLogger(t *testing.T) {
	logger := newLogger()

	configureLogger(logger, &config.Config{LogLevel: "debug", LogFormat: "text"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	configureLogger(logger, &config.Config{LogLevel: "loud", LogFormat: "json"})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
