package xdg

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaths(t *testing.T) {
	t.Setenv("HOME", "/home/alice")
	t.Setenv("XDG_STATE_HOME", "")
	assert.Equal(t, filepath.Join("/home/alice", ".local", "state", "pwquality", "x.log"), XDGStatePath("pwquality", "x.log"))

	t.Setenv("XDG_STATE_HOME", "/var/state")
	assert.Equal(t, filepath.Join("/var/state", "pwquality", "x.log"), XDGStatePath("pwquality", "x.log"))
}
