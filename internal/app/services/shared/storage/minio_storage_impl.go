package storage

import (
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// objectPutter is the slice of *minio.Client the storage needs.
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioStorage struct {
	client        objectPutter
	publicBaseUrl string
	Log           *zap.Logger
}

func NewMinioStorage(minioClient *minio.Client, publicBaseUrl string, logger *zap.Logger) contracts.Storage {
	return newMinioStorage(minioClient, publicBaseUrl, logger)
}

func newMinioStorage(client objectPutter, publicBaseUrl string, logger *zap.Logger) *minioStorage {
	return &minioStorage{
		client:        client,
		publicBaseUrl: strings.TrimSuffix(publicBaseUrl, "/"),
		Log:           logger,
	}
}

func (m *minioStorage) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	m.Log.Info("minioStorage.PutObject called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketKey, bucketName),
		zap.String(constvars.LoggingObjectKey, objectName),
	)

	_, err := m.client.PutObject(ctx, bucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		m.Log.Error("minioStorage.PutObject error uploading object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioCreateObject(err, bucketName)
	}

	url := fmt.Sprintf("%s/%s/%s", m.publicBaseUrl, bucketName, objectName)
	m.Log.Info("minioStorage.PutObject succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectKey, url),
	)
	return url, nil
}
