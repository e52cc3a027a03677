package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_QuietByDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, sync := newLogger(false, buf)

	logger.Debug("lowered atom", "regime", "negative")
	logger.Info("exponent collapsed onto boundary")
	sync()
	assert.Empty(t, buf.String())

	logger.Warn("store is read-only", "db", "powcanon.db")
	sync()
	assert.Contains(t, buf.String(), `"msg":"store is read-only"`)
	assert.Contains(t, buf.String(), `"db":"powcanon.db"`)
}

func TestNewLogger_VerboseLogsDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, sync := newLogger(true, buf)

	logger.Debug("lowered atom", "regime", "negative")
	sync()
	assert.Contains(t, buf.String(), "lowered atom")
	assert.Contains(t, buf.String(), "negative")
}
