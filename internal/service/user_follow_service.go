package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/events"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/repository"
	"context"
	"strconv"
	"time"
)

type UserFollowService interface {
	ToggleFollow(ctx context.Context, followerID, followingID uint64) (*dto.FollowStatusDTO, error)
	CheckFollow(ctx context.Context, followerID, followingID uint64) (*dto.FollowStatusDTO, error)
	GetFollowerCount(ctx context.Context, userID uint64) (int64, error)
	ListFollowers(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.FollowUserDTO, error)
	ListFollowing(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.FollowUserDTO, error)
}

type userFollowServiceImpl struct {
	followRepo repository.UserFollowRepo
	userRepo   repository.UserRepo
	producer   *events.Producer
}

func NewUserFollowService(
	followRepo repository.UserFollowRepo,
	userRepo repository.UserRepo,
	producer *events.Producer,
) UserFollowService {
	return &userFollowServiceImpl{
		followRepo: followRepo,
		userRepo:   userRepo,
		producer:   producer,
	}
}

// ToggleFollow 已关注则取关，未关注则关注；不允许关注自己
func (s *userFollowServiceImpl) ToggleFollow(ctx context.Context, followerID, followingID uint64) (*dto.FollowStatusDTO, error) {
	if followerID == followingID {
		return nil, ErrUserFollowSelf
	}
	if _, err := s.userRepo.GetUserByID(ctx, followingID); err != nil {
		return nil, ErrUserNotFound
	}

	following, err := s.followRepo.CheckFollowExists(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}

	if following {
		if err = s.followRepo.DeleteFollow(ctx, followerID, followingID); err != nil {
			return nil, err
		}
	} else {
		err = s.followRepo.CreateFollow(ctx, &model.UserFollow{
			FollowerID:  followerID,
			FollowingID: followingID,
			CreatedAt:   time.Now(),
		})
		if err != nil && !isDuplicateError(err) {
			return nil, err
		}
		s.producer.Publish(ctx, events.EventUserFollowed, followerID, followingID)
	}

	key := consts.UserFollowerCountKey + strconv.FormatUint(followingID, 10)
	_ = redis.DeleteKey(ctx, key)

	count, err := s.GetFollowerCount(ctx, followingID)
	if err != nil {
		return nil, err
	}
	return &dto.FollowStatusDTO{Following: !following, FollowerCount: count}, nil
}

func (s *userFollowServiceImpl) CheckFollow(ctx context.Context, followerID, followingID uint64) (*dto.FollowStatusDTO, error) {
	following := false
	if followerID > 0 {
		var err error
		following, err = s.followRepo.CheckFollowExists(ctx, followerID, followingID)
		if err != nil {
			return nil, err
		}
	}

	count, err := s.GetFollowerCount(ctx, followingID)
	if err != nil {
		return nil, err
	}
	return &dto.FollowStatusDTO{Following: following, FollowerCount: count}, nil
}

func (s *userFollowServiceImpl) ListFollowers(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.FollowUserDTO, error) {
	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		return nil, ErrUserNotFound
	}
	ids, err := s.followRepo.GetFollowerIDs(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.listUsers(ctx, ids)
}

func (s *userFollowServiceImpl) ListFollowing(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.FollowUserDTO, error) {
	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		return nil, ErrUserNotFound
	}
	ids, err := s.followRepo.GetFollowingIDs(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.listUsers(ctx, ids)
}

// listUsers 按关注时间顺序返回用户条目，库里查不到的 ID 静默跳过
func (s *userFollowServiceImpl) listUsers(ctx context.Context, ids []uint64) ([]*dto.FollowUserDTO, error) {
	list := make([]*dto.FollowUserDTO, 0, len(ids))
	if len(ids) == 0 {
		return list, nil
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	for _, id := range ids {
		user, ok := byID[id]
		if !ok {
			continue
		}
		item := &dto.FollowUserDTO{
			ID:       user.ID,
			Name:     user.Name,
			Username: user.Username,
		}
		if user.ImageKey != nil {
			item.AvatarURL, _ = minio.GetFileURL(ctx, *user.ImageKey)
		}
		list = append(list, item)
	}
	return list, nil
}

func (s *userFollowServiceImpl) GetFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	key := consts.UserFollowerCountKey + strconv.FormatUint(userID, 10)
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	realCount, err := s.followRepo.GetFollowerCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	return realCount, nil
}
