package dto

// MediaUploadResultDTO 上传结果
type MediaUploadResultDTO struct {
	Key          string `json:"key"`
	URL          string `json:"url"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	ThumbnailKey string `json:"thumbnailKey,omitempty"`
}

// MediaDeleteDTO 对象删除 - 批量
type MediaDeleteDTO struct {
	Keys []string `json:"keys" binding:"required" validate:"min=1,max=50,dive,min=1,max=512"`
}

// MediaDeleteOneDTO 对象删除 - 单个
type MediaDeleteOneDTO struct {
	Key string `json:"key" binding:"required" validate:"min=1,max=512"`
}
