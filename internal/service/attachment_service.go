package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/bitfantasy/parttrack/internal/model/entity"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// AttachmentService part file attachments backed by object storage
type AttachmentService struct {
	store       AttachmentStore
	parts       PartStore
	minioClient *minio.Client
	bucketName  string
}

func NewAttachmentService(store AttachmentStore, parts PartStore, minioClient *minio.Client, bucketName string) *AttachmentService {
	return &AttachmentService{
		store:       store,
		parts:       parts,
		minioClient: minioClient,
		bucketName:  bucketName,
	}
}

// ListFor lists a part's attachments.
func (s *AttachmentService) ListFor(ctx context.Context, partID string) ([]entity.PartAttachment, error) {
	if _, err := s.parts.FindByID(ctx, partID); err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	return s.store.ListFor(ctx, partID)
}

// Upload stores the file in object storage and records the attachment.
func (s *AttachmentService) Upload(ctx context.Context, partID, uploadedBy string, reader io.Reader, fileName string, fileSize int64, contentType, comment string) (*entity.PartAttachment, error) {
	part, err := s.parts.FindByID(ctx, partID)
	if err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	if s.minioClient == nil {
		return nil, fmt.Errorf("storage not configured")
	}

	objectName := fmt.Sprintf("part_files/%s/%s%s", part.ID, uuid.New().String()[:8], filepath.Ext(fileName))
	_, err = s.minioClient.PutObject(ctx, s.bucketName, objectName, reader, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	attachment := &entity.PartAttachment{
		ID:          newID(),
		PartID:      part.ID,
		FileName:    fileName,
		FileKey:     objectName,
		FileSize:    fileSize,
		ContentType: contentType,
		Comment:     comment,
		UploadedBy:  uploadedBy,
		CreatedAt:   time.Now(),
	}
	if err := s.store.Create(ctx, attachment); err != nil {
		return nil, fmt.Errorf("create attachment: %w", err)
	}
	return attachment, nil
}

// Download streams an attachment's file from object storage.
func (s *AttachmentService) Download(ctx context.Context, id string) (io.ReadCloser, *entity.PartAttachment, error) {
	attachment, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if s.minioClient == nil {
		return nil, attachment, fmt.Errorf("storage not configured")
	}

	object, err := s.minioClient.GetObject(ctx, s.bucketName, attachment.FileKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("get object: %w", err)
	}
	return object, attachment, nil
}

// Delete removes the attachment record. The stored object is left in place;
// object storage cleanup runs out of band.
func (s *AttachmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}
