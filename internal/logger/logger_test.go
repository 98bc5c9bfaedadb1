package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestWithWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := WithWriter(&buf, zerolog.WarnLevel)

	log.Info().Msg("hidden")
	require.Zero(t, buf.Len())

	log.Warn().Msg("shown")
	require.Contains(t, buf.String(), `"message":"shown"`)
}

func TestWithRunID(t *testing.T) {
	var buf bytes.Buffer
	log := WithRunID(WithWriter(&buf, zerolog.InfoLevel))
	log.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	runID, ok := entry["run_id"].(string)
	require.True(t, ok)
	require.Len(t, runID, 10)
}
