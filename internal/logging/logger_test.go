package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDevelopment(t *testing.T) {
	logger, err := New(true)
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.Equal(t, "birdcache", logger.Name())
}

func TestNewProduction(t *testing.T) {
	logger, err := New(false)
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.Equal(t, "birdcache", logger.Name())
}
