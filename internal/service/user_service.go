package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserService interface {
	Session(ctx context.Context, req *dto.SessionDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, tokenString string) error
	GetProfileByUsername(ctx context.Context, username string) (*dto.UserProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uint64, req *dto.ProfileUpdateDTO) error
}

type userServiceImpl struct {
	userRepo   repository.UserRepo
	followRepo repository.UserFollowRepo
	blogRepo   repository.BlogRepo
}

func NewUserService(
	userRepo repository.UserRepo,
	followRepo repository.UserFollowRepo,
	blogRepo repository.BlogRepo,
) UserService {
	return &userServiceImpl{
		userRepo:   userRepo,
		followRepo: followRepo,
		blogRepo:   blogRepo,
	}
}

// Session 用外部 OAuth 档案换取本服务的 JWT，用户不存在则建档
func (s *userServiceImpl) Session(ctx context.Context, req *dto.SessionDTO) (*dto.TokenDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByExternalID(ctx, req.ExternalID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		exists, err := s.userRepo.UsernameExists(ctx, req.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUserUsernameExist
		}

		user = &model.User{
			ExternalID: req.ExternalID,
			Name:       req.Name,
			Username:   req.Username,
			Email:      req.Email,
			ImageKey:   req.ImageKey,
		}
		if err = s.userRepo.CreateUser(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := security.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	profile, err := s.buildProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{Token: token, User: profile}, nil
}

// Logout 将当前 Token 的签名拉黑到其剩余有效期
func (s *userServiceImpl) Logout(ctx context.Context, tokenString string) error {
	signature, err := security.ExtractSignature(tokenString)
	if err != nil {
		return ErrParamInvalid
	}
	return redis.SetWithExpiration(ctx, signature, "revoked", security.JWTExpirationTime)
}

func (s *userServiceImpl) GetProfileByUsername(ctx context.Context, username string) (*dto.UserProfileDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return s.buildProfile(ctx, user)
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID uint64, req *dto.ProfileUpdateDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.ImageKey != nil {
		user.ImageKey = req.ImageKey
	}
	return s.userRepo.UpdateUser(ctx, user)
}

func (s *userServiceImpl) buildProfile(ctx context.Context, user *model.User) (*dto.UserProfileDTO, error) {
	profile := &dto.UserProfileDTO{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if user.ImageKey != nil {
		profile.AvatarURL, _ = minio.GetFileURL(ctx, *user.ImageKey)
	}

	profile.FollowerCount, _ = s.followRepo.GetFollowerCount(ctx, user.ID)
	profile.FollowingCount, _ = s.followRepo.GetFollowingCount(ctx, user.ID)
	profile.BlogCount, _ = s.blogRepo.CountByUserID(ctx, user.ID)
	return profile, nil
}
