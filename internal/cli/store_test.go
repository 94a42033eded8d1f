package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jammie/rdf/internal/literal"
	"github.com/jammie/rdf/internal/store"
)

func runStore(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewStoreCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "lit.db")
}

func TestStoreMissingDatabaseFlag(t *testing.T) {
	_, err := runStore(t, "text", "replay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestStoreOpenFailureJSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "missing", "dir", "lit.db")
	out, err := runStore(t, "json", "replay", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	resp := decodeResponse[any](t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeStore, resp.Error.Code)
	assert.Equal(t, "failed to open database", resp.Error.Message)
}

func TestStorePutText(t *testing.T) {
	db := tempDB(t)

	out, err := runStore(t, "text", "put", "--db", db, "--batch", "b1", "14:30:00-05:00", "10:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Batch: b1\n")
	assert.Contains(t, out, "  [1] time 14:30:00-05:00 -> 19:30:00Z\n")
	assert.Contains(t, out, "  [2] time 10:00 -> 10:00:00 (invalid)\n")
}

func TestStorePutGeneratesBatch(t *testing.T) {
	db := tempDB(t)

	out, err := runStore(t, "json", "put", "--db", db, "19:30:00Z")
	require.NoError(t, err)

	resp := decodeResponse[PutResult](t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Data.Batch)
	require.Len(t, resp.Data.Records, 1)
	assert.Equal(t, resp.Data.Batch, resp.Data.Records[0].Batch)
	assert.Equal(t, int64(1), resp.Data.Records[0].Seq)
	assert.True(t, resp.Data.Records[0].Valid)
}

func TestStorePutIdempotent(t *testing.T) {
	db := tempDB(t)

	_, err := runStore(t, "text", "put", "--db", db, "--batch", "b1", "19:30:00Z")
	require.NoError(t, err)
	out, err := runStore(t, "json", "put", "--db", db, "--batch", "b1", "19:30:00Z")
	require.NoError(t, err)

	resp := decodeResponse[PutResult](t, out)
	require.Len(t, resp.Data.Records, 1)
	assert.Equal(t, int64(1), resp.Data.Records[0].Seq)
}

func TestStoreFind(t *testing.T) {
	db := tempDB(t)

	_, err := runStore(t, "text", "put", "--db", db, "--batch", "b1", "14:30:00-05:00", "11:00:00Z")
	require.NoError(t, err)
	_, err = runStore(t, "text", "put", "--db", db, "--batch", "b2", "19:30:00.25Z")
	require.NoError(t, err)

	out, err := runStore(t, "json", "find", "--db", db, "19:30:00Z")
	require.NoError(t, err)

	resp := decodeResponse[[]RecordView](t, out)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "b1", resp.Data[0].Batch)
	assert.Equal(t, "14:30:00-05:00", resp.Data[0].String)
	assert.Equal(t, "b2", resp.Data[1].Batch)
	assert.Equal(t, "19:30:00.25Z", resp.Data[1].String)
}

func TestStoreFindNone(t *testing.T) {
	db := tempDB(t)

	out, err := runStore(t, "text", "find", "--db", db, "19:30:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "No literals equal to 19:30:00Z")
}

func TestStoreShow(t *testing.T) {
	db := tempDB(t)

	_, err := runStore(t, "text", "put", "--db", db, "--batch", "b1", "24:00:00", "not a time")
	require.NoError(t, err)

	out, err := runStore(t, "text", "show", "--db", db, "--batch", "b1")
	require.NoError(t, err)
	assert.Contains(t, out, "Batch: b1")
	assert.Contains(t, out, "=== Literals ===")
	assert.Contains(t, out, "  [1] time 24:00:00 -> 00:00:00\n")
	assert.Contains(t, out, "  [2] time not a time (invalid)\n")
	assert.Contains(t, out, "  Total:   2\n")
	assert.Contains(t, out, "  Invalid: 1\n")
}

func TestStoreShowJSON(t *testing.T) {
	db := tempDB(t)

	_, err := runStore(t, "text", "put", "--db", db, "--batch", "b1", "10:00:00Z")
	require.NoError(t, err)

	out, err := runStore(t, "json", "show", "--db", db, "--batch", "b1")
	require.NoError(t, err)

	resp := decodeResponse[ShowResult](t, out)
	assert.Equal(t, "b1", resp.Data.Batch)
	assert.Equal(t, 1, resp.Data.Count)
	assert.NotEmpty(t, resp.Data.Hash)
	require.Len(t, resp.Data.Records, 1)
	assert.Equal(t, "10:00:00Z", resp.Data.Records[0].Canonical)
}

func TestStoreShowEmptyBatch(t *testing.T) {
	db := tempDB(t)

	out, err := runStore(t, "text", "show", "--db", db, "--batch", "missing")
	require.NoError(t, err)
	assert.Contains(t, out, "No literals found for batch: missing")
}

func TestStoreShowMissingBatchFlag(t *testing.T) {
	_, err := runStore(t, "text", "show", "--db", tempDB(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestStoreReplayEmptyDatabase(t *testing.T) {
	out, err := runStore(t, "text", "replay", "--db", tempDB(t))
	require.NoError(t, err)
	assert.Contains(t, out, "No batches found")
}

func TestStoreReplayConsistent(t *testing.T) {
	db := tempDB(t)

	_, err := runStore(t, "text", "put", "--db", db, "--batch", "b1", "14:30:00-05:00", "10:00")
	require.NoError(t, err)
	_, err = runStore(t, "text", "put", "--db", db, "--batch", "b2", "--datatype", "date", "2024-01-01")
	require.NoError(t, err)

	out, err := runStore(t, "text", "replay", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Replay Summary: 2 batch(es)")
	assert.Contains(t, out, "✓ Batch: b1")
	assert.Contains(t, out, "✓ Batch: b2")
	assert.Contains(t, out, "✓ All batches consistent")
}

func TestStoreReplayDrift(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	st, err := store.Open(db)
	require.NoError(t, err)
	rec, err := st.PutLiteral(ctx, "b1", literal.NewTime("14:30:00-05:00"))
	require.NoError(t, err)
	_, err = st.DB().ExecContext(ctx, "UPDATE literals SET canonical = ? WHERE id = ?", "14:30:00Z", rec.ID)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := runStore(t, "json", "replay", "--db", db, "--batch", "b1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse[ReplayResult](t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeDrift, resp.Error.Code)
	assert.False(t, resp.Data.AllConsistent)
	require.Len(t, resp.Data.Batches, 1)
	assert.Equal(t, []DriftView{{Seq: 1, Field: "canonical", Stored: "14:30:00Z", Fresh: "19:30:00Z"}}, resp.Data.Batches[0].Drifts)
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "short", truncateID("short"))
	assert.Equal(t, "01234567...89abcdef", truncateID("0123456789abcdef0123456789abcdef"))
}
