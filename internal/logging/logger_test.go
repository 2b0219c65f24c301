package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"voxelstream/internal/config"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, config.LevelWarn)

	l.Infof("hidden %d", 1)
	assert.Empty(t, buf.String())

	l.Warnf("shown %d", 2)
	assert.Contains(t, buf.String(), "[WARN] shown 2")

	buf.Reset()
	l.SetLevel(config.LevelDebug)
	l.Debugf("chunk %v", "a")
	assert.Contains(t, buf.String(), "[DEBUG] chunk a")
}

func TestConfigureRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Configure("verbose"))
	assert.NoError(t, Configure("info"))
}
