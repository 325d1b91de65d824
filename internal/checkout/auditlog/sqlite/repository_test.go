package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/mystore/internal/checkout/auditlog"
	auditsqlite "github.com/jcmexdev/mystore/internal/checkout/auditlog/sqlite"
	"github.com/jcmexdev/mystore/internal/storage/sqlite"
)

func newRepo(t *testing.T) *auditsqlite.Repository {
	t.Helper()
	kv, err := sqlite.Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	repo, err := auditsqlite.New(kv.DB())
	require.NoError(t, err)
	return repo
}

func TestSaveAndGetLatest(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	started := auditlog.NewEntry(ctx, "chk-1", auditlog.StatusStarted, "", `{"items":[]}`, nil)
	require.NoError(t, repo.Save(ctx, started))

	done := auditlog.NewEntry(ctx, "chk-1", auditlog.StatusStepDone, "verify_stock", "", nil)
	require.NoError(t, repo.Save(ctx, done))

	latest, err := repo.GetLatest(ctx, "chk-1")
	require.NoError(t, err)
	assert.Equal(t, auditlog.StatusStepDone, latest.Status)
	assert.Equal(t, "verify_stock", latest.CurrentStep)
	assert.Equal(t, "[]", latest.ErrorMessages)
}

func TestGetLatestUnknownRun(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.GetLatest(context.Background(), "missing")
	assert.Error(t, err)
}

func TestFailureEntriesCarryErrors(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	failed := auditlog.NewEntry(ctx, "chk-2", auditlog.StatusFailed, "settle_payment", "",
		[]string{"step settle_payment failed: payment declined"})
	require.NoError(t, repo.Save(ctx, failed))

	latest, err := repo.GetLatest(ctx, "chk-2")
	require.NoError(t, err)
	assert.Contains(t, latest.ErrorMessages, "payment declined")
}
