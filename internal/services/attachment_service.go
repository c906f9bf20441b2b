// internal/services/attachment_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/dkpharma/asset-registry/internal/apperrors"
	"github.com/dkpharma/asset-registry/internal/models"
)

const downloadLinkTTL = 15 * time.Minute

// AttachmentService links uploaded files to assets. The binary goes to object
// storage first; the metadata row is only written once the upload succeeded.
type AttachmentService struct {
	db      *gorm.DB
	storage *StorageService
}

func NewAttachmentService(db *gorm.DB, storage *StorageService) *AttachmentService {
	return &AttachmentService{db: db, storage: storage}
}

func (s *AttachmentService) ListAttachments(assetID uint) ([]models.AssetAttachment, error) {
	var asset models.Asset
	if err := s.db.First(&asset, assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Asset not found")
		}
		return nil, apperrors.Internal("Error fetching asset", err)
	}

	var attachments []models.AssetAttachment
	if err := s.db.Preload("Uploader").Where("asset_id = ?", assetID).
		Order("uploaded_at DESC").Find(&attachments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch attachments: %w", err)
	}
	return attachments, nil
}

func (s *AttachmentService) UploadAttachment(assetID uint, file multipart.File, header *multipart.FileHeader, description string, uploadedBy *uint) (*models.AssetAttachment, error) {
	var asset models.Asset
	if err := s.db.First(&asset, assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Asset not found")
		}
		return nil, apperrors.Internal("Error fetching asset", err)
	}

	result, err := s.storage.UploadFile(file, header, AttachmentUploadOptions())
	if err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}

	attachment := &models.AssetAttachment{
		AssetID:     assetID,
		FileName:    header.Filename,
		FilePath:    result.Key,
		FileType:    result.MimeType,
		FileSize:    result.Size,
		Description: description,
		UploadedBy:  uploadedBy,
	}

	if err := s.db.Create(attachment).Error; err != nil {
		// Orphaned object; remove it so storage does not accumulate strays.
		if delErr := s.storage.DeleteFile(result.Key); delErr != nil {
			logrus.WithError(delErr).WithField("key", result.Key).Warn("failed to clean up uploaded object")
		}
		return nil, apperrors.Internal("Error saving attachment", err)
	}

	s.db.Preload("Uploader").First(attachment, attachment.ID)
	return attachment, nil
}

// DownloadURL issues a time-limited link for an attachment binary.
func (s *AttachmentService) DownloadURL(assetID, attachmentID uint) (string, error) {
	var attachment models.AssetAttachment
	if err := s.db.Where("id = ? AND asset_id = ?", attachmentID, assetID).
		First(&attachment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NotFound("Attachment not found")
		}
		return "", apperrors.Internal("Error fetching attachment", err)
	}

	url, err := s.storage.GeneratePresignedURL(attachment.FilePath, downloadLinkTTL)
	if err != nil {
		return "", apperrors.Internal("Error generating download link", err)
	}
	return url, nil
}

// UploadAssetImage stores an asset cover image and points the asset at it.
func (s *AttachmentService) UploadAssetImage(assetID uint, file multipart.File, header *multipart.FileHeader) (string, error) {
	var asset models.Asset
	if err := s.db.First(&asset, assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NotFound("Asset not found")
		}
		return "", apperrors.Internal("Error fetching asset", err)
	}

	result, err := s.storage.UploadFile(file, header, AssetImageUploadOptions())
	if err != nil {
		return "", apperrors.Validation("%s", err.Error())
	}

	if err := s.db.Model(&asset).Update("image_url", result.URL).Error; err != nil {
		if delErr := s.storage.DeleteFile(result.Key); delErr != nil {
			logrus.WithError(delErr).WithField("key", result.Key).Warn("failed to clean up uploaded object")
		}
		return "", apperrors.Internal("Error saving asset image", err)
	}
	return result.URL, nil
}

func (s *AttachmentService) DeleteAttachment(assetID, attachmentID uint) error {
	var attachment models.AssetAttachment
	if err := s.db.Where("id = ? AND asset_id = ?", attachmentID, assetID).
		First(&attachment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Attachment not found")
		}
		return apperrors.Internal("Error fetching attachment", err)
	}

	if err := s.db.Delete(&attachment).Error; err != nil {
		return apperrors.Internal("Error deleting attachment", err)
	}

	// Storage cleanup is best effort; the metadata row is already gone.
	if err := s.storage.DeleteFile(attachment.FilePath); err != nil {
		logrus.WithError(err).WithField("key", attachment.FilePath).Warn("failed to delete attachment object")
	}
	return nil
}
