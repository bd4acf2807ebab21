package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocal(t *testing.T) {
	root := t.TempDir()
	body := "exclude: \"Source/Core/ThirdParty/**\"\nthreads: 4\nmodules: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".corelint.yml"), []byte(body), 0644))

	cfg, err := LoadLocal(root)
	require.NoError(t, err)
	require.NotNil(t, cfg.Exclude)
	assert.Equal(t, "Source/Core/ThirdParty/**", *cfg.Exclude)
	require.NotNil(t, cfg.Threads)
	assert.Equal(t, 4, *cfg.Threads)
	require.NotNil(t, cfg.Modules)
	assert.True(t, *cfg.Modules)
	assert.Nil(t, cfg.Include, "unset fields stay nil")
}

func TestLoadLocalMissing(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	assert.Error(t, err)
}

func TestLoadFileBadYAML(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "corelint.yml")
	require.NoError(t, os.WriteFile(p, []byte(":\tbroken"), 0644))
	_, err := LoadFile(p)
	assert.Error(t, err)
}
