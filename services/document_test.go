package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"compliance-backend/apperr"
	"compliance-backend/storage"
)

func TestDocumentUploadRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewLocalStore(t.TempDir())
	svc := NewDocumentService(db, store)
	user := seedUser(t, db, "asha")

	doc, err := svc.Upload(context.Background(), UploadDocumentInput{
		OriginalFilename: "invoice.pdf",
		MimeType:         "application/pdf",
		Size:             11,
		UploadedBy:       user.ID,
	}, strings.NewReader("pdf-content"))
	require.NoError(t, err)
	require.Equal(t, "invoice.pdf", doc.OriginalFilename)
	require.True(t, strings.HasPrefix(doc.StoragePath, "documents/"))
	require.True(t, strings.HasSuffix(doc.StoragePath, ".pdf"))

	got, rc, err := svc.Open(context.Background(), doc.ID)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "pdf-content", string(data))
	require.Equal(t, doc.ID, got.ID)
}

func TestDocumentDeleteRemovesBlob(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewLocalStore(t.TempDir())
	svc := NewDocumentService(db, store)
	user := seedUser(t, db, "asha")

	doc, err := svc.Upload(context.Background(), UploadDocumentInput{
		OriginalFilename: "note.txt",
		MimeType:         "text/plain",
		Size:             5,
		UploadedBy:       user.ID,
	}, strings.NewReader("notes"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), doc.ID))
	_, err = svc.Get(context.Background(), doc.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = store.Get(context.Background(), doc.StoragePath)
	require.Error(t, err)
}

func TestDocumentListByClient(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewLocalStore(t.TempDir())
	svc := NewDocumentService(db, store)
	user := seedUser(t, db, "asha")
	client := seedClient(t, db, "Acme & Co")

	_, err := svc.Upload(context.Background(), UploadDocumentInput{
		OriginalFilename: "a.txt",
		MimeType:         "text/plain",
		ClientID:         &client.ID,
		UploadedBy:       user.ID,
	}, strings.NewReader("a"))
	require.NoError(t, err)
	_, err = svc.Upload(context.Background(), UploadDocumentInput{
		OriginalFilename: "b.txt",
		MimeType:         "text/plain",
		UploadedBy:       user.ID,
	}, strings.NewReader("b"))
	require.NoError(t, err)

	docs, err := svc.List(context.Background(), 0, 100, client.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "a.txt", docs[0].OriginalFilename)
}
