package progrock_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vprogrock "github.com/vito/progrock"
	"go.trai.ch/rebuild/internal/adapters/telemetry/progrock"
	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/rebuild/internal/core/ports"
)

func TestNew(t *testing.T) {
	var recorder ports.Progress = progrock.New()
	assert.NotNil(t, recorder)
}

func TestRecorder_VertexLifecycle(t *testing.T) {
	recorder := progrock.NewRecorder(vprogrock.NewTape())

	ctx, vertex := recorder.Record(t.Context(), "/native/1.0.0")
	assert.Equal(t, t.Context(), ctx)

	_, err := vertex.Stdout().Write([]byte("gyp info ok\n"))
	require.NoError(t, err)
	_, err = vertex.Stderr().Write([]byte("gyp warn\n"))
	require.NoError(t, err)

	vertex.Log(domain.LogLevelDebug, "debug msg")
	vertex.Log(domain.LogLevelWarn, "skipping optional dependency")
	vertex.Complete(errors.New("exit status 1"))

	require.NoError(t, recorder.Close())
}
