package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		Name  string
		Level string
		Want  hclog.Level
	}{
		{Name: "empty", Level: "", Want: hclog.Info},
		{Name: "debug", Level: "debug", Want: hclog.Debug},
		{Name: "upper case", Level: "WARN", Want: hclog.Warn},
		{Name: "unknown", Level: "loud", Want: hclog.Info},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			l := New(Config{Level: tt.Level, Output: &bytes.Buffer{}})
			assert.Equal(t, tt.Want, l.GetLevel())
			assert.Equal(t, "kraglin", l.Name())
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{JSON: true, Output: &buf})
	l.Info("listening", "addr", "0.0.0.0:6379")

	var line map[string]any
	assert.Nil(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "listening", line["@message"])
	assert.Equal(t, "0.0.0.0:6379", line["addr"])
}

func TestDefault(t *testing.T) {
	old := Default()
	defer SetDefault(old)

	var buf bytes.Buffer
	SetDefault(New(Config{Output: &buf}))
	Default().Info("hello")
	assert.Contains(t, buf.String(), "hello")
}
