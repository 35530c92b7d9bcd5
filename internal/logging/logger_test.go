package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONWithAppName(t *testing.T) {
	var buf bytes.Buffer
	logger := New("leadflow", "debug", "json", &buf)

	logger.WithField("lead_id", "L001").Debug("status changed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "leadflow", entry["app"])
	assert.Equal(t, "L001", entry["lead_id"])
	assert.Equal(t, "status changed", entry["msg"])
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New("", "loud", "text", &buf)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "invalid log level")
}
