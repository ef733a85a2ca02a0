package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInitProductionLogsJsonAtInfo(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Environment: Production, Output: buf})
	defer Init()

	log.Debug().Msg("hidden")
	log.Info().Str("category", "Home").Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"category":"Home"`)
	assert.Contains(t, out, `"message":"visible"`)
}

func TestInitDevelopmentLogsDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Environment: Development, Output: buf})
	defer Init()

	log.Debug().Msg("debug line")
	assert.Contains(t, buf.String(), "debug line")
}
