// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── db backend ───────────────────────────────────────────────────────────────

func TestDBBlobStore_PutGetDelete(t *testing.T) {
	db, mock := newTestDB(t)
	blobs := NewDBBlobStore(newDBFromSQL(db))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO snapshot_blobs (blob_key,data) VALUES ($1,$2) ON CONFLICT")).
		WithArgs("acme/v1", []byte("payload")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM snapshot_blobs WHERE blob_key = $1")).
		WithArgs("acme/v1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte("payload")))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM snapshot_blobs WHERE blob_key = $1")).
		WithArgs("acme/v1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := testContext()
	require.NoError(t, blobs.Put(ctx, "acme/v1", []byte("payload")))
	got, err := blobs.Get(ctx, "acme/v1")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
	require.NoError(t, blobs.Delete(ctx, "acme/v1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBBlobStore_GetMissing(t *testing.T) {
	db, mock := newTestDB(t)
	blobs := NewDBBlobStore(newDBFromSQL(db))

	mock.ExpectQuery("SELECT data FROM snapshot_blobs").WillReturnRows(sqlmock.NewRows([]string{"data"}))

	_, err := blobs.Get(testContext(), "nope")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

// ── s3 backend ───────────────────────────────────────────────────────────────

type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3BlobStore_PrefixAndNotFound(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	blobs := newS3BlobStore(fake, "bucket", "desk/")
	ctx := context.Background()

	require.NoError(t, blobs.Put(ctx, "acme/v1", []byte("payload")))
	assert.Contains(t, fake.objects, "desk/acme/v1")

	got, err := blobs.Get(ctx, "acme/v1")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	require.NoError(t, blobs.Delete(ctx, "acme/v1"))
	_, err = blobs.Get(ctx, "acme/v1")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}
