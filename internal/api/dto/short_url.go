package dto

// ShortURLCreateDTO 短链接 - 新增
type ShortURLCreateDTO struct {
	URL      string  `json:"url" binding:"required" validate:"url,max=2048"`
	BlogSlug *string `json:"blogSlug,omitempty" validate:"omitempty,max=255"`
}

// ShortURLDTO 短链接
type ShortURLDTO struct {
	ShortCode   string `json:"shortCode"`
	ShortURL    string `json:"shortUrl"`
	OriginalURL string `json:"originalUrl"`
	Clicks      int64  `json:"clicks"`
}
