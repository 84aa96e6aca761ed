package task

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/taskbuddy/internal/hooks"
	"github.com/josephgoksu/taskbuddy/internal/metrics"
	"github.com/josephgoksu/taskbuddy/models"
	"github.com/josephgoksu/taskbuddy/store"
)

type fixture struct {
	svc      *Service
	recorder *metrics.Recorder
	logPath  string
}

func setupService(t *testing.T) *fixture {
	t.Helper()

	tempDir := t.TempDir()
	st := store.NewFileTaskStore()
	require.NoError(t, st.Initialize(map[string]string{
		"dataFile":  filepath.Join(tempDir, "tasks.json"),
		"backupDir": filepath.Join(tempDir, "backups"),
	}))
	t.Cleanup(func() { _ = st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := models.NewValidator()
	recorder := metrics.NewRecorder(0)
	logPath := filepath.Join(tempDir, "task_operations.log")

	pipeline := hooks.NewPipeline(logger,
		[]hooks.BeforeHook{hooks.NewValidationHook(validator)},
		[]hooks.AfterHook{
			hooks.NewOpLogHook(logPath),
			hooks.NewMetricsHook(recorder),
			hooks.NewSelfCheckHook(st),
		},
	)

	return &fixture{
		svc:      NewService(st, pipeline, recorder, validator, logger),
		recorder: recorder,
		logPath:  logPath,
	}
}

func TestService_AddAndList(t *testing.T) {
	f := setupService(t)

	created, err := f.svc.Add("  Buy milk  ")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Done)

	list, err := f.svc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Buy milk", list[0].Title)
}

func TestService_AddInvalidTitle(t *testing.T) {
	f := setupService(t)

	for _, title := range []string{"", "   "} {
		_, err := f.svc.Add(title)
		assert.ErrorIs(t, err, models.ErrInvalidTitle)
	}

	list, err := f.svc.List()
	require.NoError(t, err)
	assert.Empty(t, list, "failed adds must not change the collection")
}

func TestService_ToggleTwiceRestoresState(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.Add("Buy milk")
	require.NoError(t, err)

	toggled, err := f.svc.Toggle(0)
	require.NoError(t, err)
	assert.True(t, toggled.Done)

	toggled, err = f.svc.Toggle(0)
	require.NoError(t, err)
	assert.False(t, toggled.Done)
}

func TestService_DeleteShiftsIndices(t *testing.T) {
	f := setupService(t)

	for _, title := range []string{"A", "B", "C"} {
		_, err := f.svc.Add(title)
		require.NoError(t, err)
	}

	removed, err := f.svc.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, "B", removed.Title)

	list, err := f.svc.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Title)
	assert.Equal(t, "C", list[1].Title)
}

func TestService_IndexOutOfRange(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.Add("Only one")
	require.NoError(t, err)

	_, err = f.svc.Toggle(1)
	assert.ErrorIs(t, err, models.ErrIndexOutOfRange)

	_, err = f.svc.Delete(1)
	assert.ErrorIs(t, err, models.ErrIndexOutOfRange)

	_, err = f.svc.Delete(-1)
	assert.ErrorIs(t, err, models.ErrIndexOutOfRange)

	list, err := f.svc.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_Scenario(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.Add("Buy milk")
	require.NoError(t, err)

	list, err := f.svc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Buy milk", list[0].Title)
	assert.False(t, list[0].Done)

	toggled, err := f.svc.Toggle(0)
	require.NoError(t, err)
	assert.True(t, toggled.Done)

	_, err = f.svc.Add("Walk dog")
	require.NoError(t, err)

	list, err = f.svc.List()
	require.NoError(t, err)
	require.Len(t, list, 2)

	_, err = f.svc.Delete(0)
	require.NoError(t, err)

	list, err = f.svc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Walk dog", list[0].Title)
}

func TestService_OperationLogWritten(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.Add("Buy milk")
	require.NoError(t, err)
	_, err = f.svc.Toggle(0)
	require.NoError(t, err)
	_, err = f.svc.Delete(0)
	require.NoError(t, err)

	data, err := os.ReadFile(f.logPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "TASK_ADDED: Buy milk")
	assert.Contains(t, lines[1], "TASK_TOGGLED: Buy milk - completed")
	assert.Contains(t, lines[2], "TASK_DELETED: Buy milk")
}

func TestService_FailedMutationWritesNoLog(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.Add("   ")
	require.ErrorIs(t, err, models.ErrInvalidTitle)

	_, statErr := os.Stat(f.logPath)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "aborted mutations must not reach the after stage")
}

func TestService_ReportTracksOperations(t *testing.T) {
	f := setupService(t)

	assert.Empty(t, f.svc.Report())

	_, err := f.svc.Add("Buy milk")
	require.NoError(t, err)
	_, err = f.svc.Toggle(0)
	require.NoError(t, err)
	_, err = f.svc.Toggle(0)
	require.NoError(t, err)

	report := f.svc.Report()
	assert.Equal(t, 1, report["add"].Count)
	assert.Equal(t, 2, report["toggle"].Count)
	assert.GreaterOrEqual(t, report["toggle"].MaxMS, report["toggle"].MinMS)
}
