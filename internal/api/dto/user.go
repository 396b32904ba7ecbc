package dto

// SessionDTO OAuth 档案换取会话
type SessionDTO struct {
	ExternalID string  `json:"externalId" binding:"required" validate:"min=1,max=64"`
	Name       string  `json:"name" binding:"required" validate:"min=1,max=100"`
	Username   string  `json:"username" binding:"required" validate:"min=1,max=50"`
	Email      string  `json:"email" binding:"required" validate:"email"`
	ImageKey   *string `json:"imageKey,omitempty"`
}

// TokenDTO 会话结果
type TokenDTO struct {
	Token string          `json:"token"`
	User  *UserProfileDTO `json:"user"`
}

// UserProfileDTO 用户档案
type UserProfileDTO struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Username  string  `json:"username"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL string  `json:"avatarUrl,omitempty"`
	CreatedAt string  `json:"createdAt"`

	FollowerCount  int64 `json:"followerCount"`
	FollowingCount int64 `json:"followingCount"`
	BlogCount      int64 `json:"blogCount"`
}

// ProfileUpdateDTO 用户档案 - 修改
type ProfileUpdateDTO struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	ImageKey *string `json:"imageKey,omitempty" validate:"omitempty,max=512"`
}

// FollowUserDTO 关注或粉丝列表条目
type FollowUserDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// FollowStatusDTO 关注状态
type FollowStatusDTO struct {
	Following     bool  `json:"following"`
	FollowerCount int64 `json:"followerCount"`
}
