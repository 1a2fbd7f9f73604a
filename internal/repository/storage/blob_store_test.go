package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dafibh/gigledger/ledger-backend/internal/config"
	"github.com/dafibh/gigledger/ledger-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseBlobStore runs the behaviour every BlobStore must share
func exerciseBlobStore(t *testing.T, store domain.BlobStore) {
	t.Helper()
	ctx := context.Background()

	blob, found, err := store.Get(ctx, "earningsData")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, blob)

	require.NoError(t, store.Set(ctx, "earningsData", []byte(`{"monthlyGoal":1000}`)))
	blob, found, err = store.Get(ctx, "earningsData")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"monthlyGoal":1000}`, string(blob))

	require.NoError(t, store.Set(ctx, "earningsData", []byte(`{"monthlyGoal":2000}`)))
	blob, _, err = store.Get(ctx, "earningsData")
	require.NoError(t, err)
	assert.JSONEq(t, `{"monthlyGoal":2000}`, string(blob))

	_, found, err = store.Get(ctx, "otherKey")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryBlobStore(t *testing.T) {
	exerciseBlobStore(t, NewMemoryBlobStore())
}

func TestMemoryBlobStore_CopiesBlobs(t *testing.T) {
	store := NewMemoryBlobStore()
	ctx := context.Background()
	blob := []byte("abc")

	require.NoError(t, store.Set(ctx, "k", blob))
	blob[0] = 'z'

	got, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLiteBlobStore(t *testing.T) {
	store, err := NewSQLiteBlobStore(filepath.Join(t.TempDir(), "nested", "ledger.db"))
	require.NoError(t, err)
	defer store.Close()

	exerciseBlobStore(t, store)
}

func TestSQLiteBlobStore_SurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	store, err := NewSQLiteBlobStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "earningsData", []byte(`{"expenses":{}}`)))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteBlobStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	blob, found, err := reopened.Get(ctx, "earningsData")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"expenses":{}}`, string(blob))
}

// fakePgx is an in-memory stand-in for a pgx pool
type fakePgx struct {
	rows    map[string][]byte
	execErr error
	execs   int
	mu      sync.Mutex
}

type fakeRow struct {
	blob []byte
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.blob
	return nil
}

func (f *fakePgx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execs++
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	if len(args) == 2 {
		f.rows[args[0].(string)] = append([]byte(nil), args[1].([]byte)...)
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakePgx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	blob, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{blob: blob}
}

func TestPostgresBlobStore(t *testing.T) {
	db := &fakePgx{rows: map[string][]byte{}}

	store, err := newPostgresBlobStore(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, 1, db.execs, "table creation should run once")

	exerciseBlobStore(t, store)
}

func TestPostgresBlobStore_TableCreationFails(t *testing.T) {
	db := &fakePgx{rows: map[string][]byte{}, execErr: errors.New("permission denied")}

	_, err := newPostgresBlobStore(context.Background(), db)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger_blobs")
}

func TestPostgresBlobStore_SetFailure(t *testing.T) {
	db := &fakePgx{rows: map[string][]byte{}}
	store, err := newPostgresBlobStore(context.Background(), db)
	require.NoError(t, err)

	db.execErr = errors.New("connection reset")
	err = store.Set(context.Background(), "earningsData", []byte("{}"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

// fakeS3 is an in-memory stand-in for the S3 client
type fakeS3 struct {
	bucketExists  bool
	createdBucket bool
	objects       map[string][]byte
	getErr        error
	lastPutType   string
}

func (f *fakeS3) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if !f.bucketExists {
		return nil, &types.NotFound{}
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.bucketExists = true
	f.createdBucket = true
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	blob, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(blob))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	blob, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(params.Key)] = blob
	f.lastPutType = aws.ToString(params.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func TestS3BlobStore(t *testing.T) {
	client := &fakeS3{bucketExists: true, objects: map[string][]byte{}}
	store := &S3BlobStore{client: client, bucket: "ledgers", prefix: "riders"}

	exerciseBlobStore(t, store)

	assert.Contains(t, client.objects, "riders/earningsData.json")
	assert.Equal(t, "application/json", client.lastPutType)
}

func TestS3BlobStore_EnsureBucketCreatesMissingBucket(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{}}
	store := &S3BlobStore{client: client, bucket: "ledgers"}

	require.NoError(t, store.ensureBucket(context.Background()))
	assert.True(t, client.createdBucket)
}

func TestS3BlobStore_GetFailure(t *testing.T) {
	client := &fakeS3{bucketExists: true, objects: map[string][]byte{}, getErr: errors.New("throttled")}
	store := &S3BlobStore{client: client, bucket: "ledgers"}

	_, found, err := store.Get(context.Background(), "earningsData")

	require.Error(t, err)
	assert.False(t, found)
}

func TestNewBlobStore_Memory(t *testing.T) {
	store, cleanup, err := NewBlobStore(context.Background(), &config.Config{StorageBackend: config.StorageMemory})
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &MemoryBlobStore{}, store)
}

func TestNewBlobStore_SQLite(t *testing.T) {
	cfg := &config.Config{
		StorageBackend: config.StorageSQLite,
		SQLitePath:     filepath.Join(t.TempDir(), "ledger.db"),
	}

	store, cleanup, err := NewBlobStore(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &SQLiteBlobStore{}, store)
}

func TestNewBlobStore_Unsupported(t *testing.T) {
	_, cleanup, err := NewBlobStore(context.Background(), &config.Config{StorageBackend: "redis"})

	require.Error(t, err)
	assert.NotNil(t, cleanup)
}
