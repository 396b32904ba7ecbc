package service

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/util"
	"bytes"
	"context"
	"image/jpeg"
	"io"
	log "log/slog"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

type MediaService interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (*dto.MediaUploadResultDTO, error)
	Delete(ctx context.Context, keys []string) error
}

type mediaServiceImpl struct{}

func NewMediaService() MediaService {
	return &mediaServiceImpl{}
}

// Upload 图片会解析尺寸并生成缩略图，视频原样入桶
func (s *mediaServiceImpl) Upload(ctx context.Context, file *multipart.FileHeader) (*dto.MediaUploadResultDTO, error) {
	maxSize := int64(config.Cfg.Blog.MaxUploadSizeMB) << 20
	if maxSize > 0 && file.Size > maxSize {
		return nil, ErrParamInvalid
	}

	reader, err := file.Open()
	if err != nil {
		return nil, ErrParamInvalid
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		return nil, ErrParamInvalid
	}

	isImage := strings.HasPrefix(contentType, consts.MimePrefixImage)
	isVideo := strings.HasPrefix(contentType, consts.MimePrefixVideo)
	if !isImage && !isVideo {
		return nil, ErrFileNotSupported
	}

	ext := path.Ext(file.Filename)
	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	result := &dto.MediaUploadResultDTO{}

	if isImage {
		img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
		if err != nil {
			return nil, ErrFileNotSupported
		}
		bounds := img.Bounds()
		result.Width = bounds.Dx()
		result.Height = bounds.Dy()

		if _, err = reader.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}

		key, err := minio.UploadFile(ctx, objectName, reader, file.Size, contentType)
		if err != nil {
			return nil, err
		}
		result.Key = key

		// 宽度超限时额外生成一份缩略图
		maxWidth := config.Cfg.Blog.ThumbnailMaxWidth
		if maxWidth > 0 && result.Width > maxWidth {
			thumb := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
			var buf bytes.Buffer
			if err = jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err == nil {
				thumbName := strings.TrimSuffix(objectName, ext) + "_thumb.jpg"
				thumbKey, err := minio.UploadFile(ctx, thumbName, &buf, int64(buf.Len()), "image/jpeg")
				if err != nil {
					log.WarnContext(ctx, "缩略图上传失败", "key", thumbName, "err", err)
				} else {
					result.ThumbnailKey = thumbKey
				}
			}
		}
	} else {
		key, err := minio.UploadFile(ctx, objectName, reader, file.Size, contentType)
		if err != nil {
			return nil, err
		}
		result.Key = key
	}

	result.URL, err = minio.GetFileURL(ctx, result.Key)
	if err != nil {
		log.WarnContext(ctx, "生成访问链接失败", "key", result.Key, "err", err)
	}

	log.InfoContext(ctx, "media upload success", "key", result.Key, "type", contentType)
	return result, nil
}

func (s *mediaServiceImpl) Delete(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if err := minio.DeleteFile(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
