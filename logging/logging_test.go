package logging

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreOutputs(t *testing.T) {
	t.Helper()
	prevWriter, prevErr := gin.DefaultWriter, gin.DefaultErrorWriter
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		gin.DefaultWriter = prevWriter
		gin.DefaultErrorWriter = prevErr
	})
}

func TestSetup_WritesToRotatingFile(t *testing.T) {
	restoreOutputs(t)

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	closer, err := Setup(path)
	require.NoError(t, err)

	log.Println("hello from test")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
}

func TestSetup_StdoutOnly(t *testing.T) {
	restoreOutputs(t)

	closer, err := Setup("")
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.Equal(t, os.Stdout, gin.DefaultWriter)
}
