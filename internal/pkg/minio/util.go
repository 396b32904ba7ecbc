package minio

import (
	"Inkstone/internal/api/config"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

// UploadFile 上传文件到MinIO
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, MainBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// DeleteFile 删除MinIO中的文件
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, MainBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetFileURL 获取文件的访问URL
// use_public_link 开启时直接拼接外部地址，否则生成预签名链接
func GetFileURL(ctx context.Context, objectName string) (string, error) {
	if objectName == "" {
		return "", nil
	}
	cfg := config.Cfg.MinIO

	if cfg.UsePublicLink {
		protocol := "http"
		if cfg.InternalUseSSL {
			protocol = "https"
		}
		return fmt.Sprintf("%s://%s/%s/%s", protocol, cfg.ExternalEndpoint, MainBucket, objectName), nil
	}

	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	presigned, err := Client.PresignedGetObject(ctx, MainBucket, objectName, 24*time.Hour, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign object url: %w", err)
	}
	return presigned.String(), nil
}
