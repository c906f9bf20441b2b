// internal/services/attachment_service_test.go
package services

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkpharma/asset-registry/internal/apperrors"
	"github.com/dkpharma/asset-registry/internal/config"
	"github.com/dkpharma/asset-registry/internal/models"
)

// testUploadFile builds a real multipart file the way gin hands it to handlers.
func testUploadFile(t *testing.T, name string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	file, header, err := req.FormFile("file")
	require.NoError(t, err)
	return file, header
}

func newAttachmentFixture(t *testing.T) (*assetFixture, *AssetService, *AttachmentService) {
	t.Helper()

	fx, svc := newAssetFixture(t)
	// No AWS credentials: local development storage
	storage, err := NewStorageService(&config.Config{
		Server: config.ServerConfig{Port: "3005"},
	})
	require.NoError(t, err)
	return fx, svc, NewAttachmentService(svc.db, storage)
}

func TestUploadAssetImageSetsImageURL(t *testing.T) {
	fx, svc, attachments := newAttachmentFixture(t)

	asset, err := svc.CreateAsset(&CreateAssetRequest{
		AssetCode:     "EQ-001",
		Name:          "Pump",
		SubCategoryID: fx.subCategory.ID,
	}, nil)
	require.NoError(t, err)

	file, header := testUploadFile(t, "cover.png", []byte("png-bytes"))
	url, err := attachments.UploadAssetImage(asset.ID, file, header)
	require.NoError(t, err)
	assert.Contains(t, url, "asset-images/")

	var stored models.Asset
	require.NoError(t, svc.db.First(&stored, asset.ID).Error)
	assert.Equal(t, url, stored.ImageURL)
}

func TestUploadAssetImageRejectsWrongType(t *testing.T) {
	fx, svc, attachments := newAttachmentFixture(t)

	asset, err := svc.CreateAsset(&CreateAssetRequest{
		AssetCode:     "EQ-001",
		Name:          "Pump",
		SubCategoryID: fx.subCategory.ID,
	}, nil)
	require.NoError(t, err)

	file, header := testUploadFile(t, "manual.pdf", []byte("%PDF"))
	_, err = attachments.UploadAssetImage(asset.ID, file, header)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	var stored models.Asset
	require.NoError(t, svc.db.First(&stored, asset.ID).Error)
	assert.Empty(t, stored.ImageURL)
}

func TestAttachmentDownloadURL(t *testing.T) {
	fx, svc, attachments := newAttachmentFixture(t)

	asset, err := svc.CreateAsset(&CreateAssetRequest{
		AssetCode:     "EQ-001",
		Name:          "Pump",
		SubCategoryID: fx.subCategory.ID,
	}, nil)
	require.NoError(t, err)

	file, header := testUploadFile(t, "manual.pdf", []byte("%PDF"))
	attachment, err := attachments.UploadAttachment(asset.ID, file, header, "operator manual", nil)
	require.NoError(t, err)

	url, err := attachments.DownloadURL(asset.ID, attachment.ID)
	require.NoError(t, err)
	assert.Contains(t, url, attachment.FilePath)

	_, err = attachments.DownloadURL(asset.ID, attachment.ID+100)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
