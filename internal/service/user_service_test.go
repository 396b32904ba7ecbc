package service

import (
	"context"
	"testing"

	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

type fakeUserRepo struct {
	repository.UserRepo
	byExternalID map[string]*model.User
	byID         map[uint64]*model.User
	usernames    map[string]bool
	nextID       uint64
	updated      *model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byExternalID: map[string]*model.User{},
		byID:         map[uint64]*model.User{},
		usernames:    map[string]bool{},
		nextID:       1,
	}
}

func (f *fakeUserRepo) add(user *model.User) *model.User {
	user.ID = f.nextID
	f.nextID++
	f.byExternalID[user.ExternalID] = user
	f.byID[user.ID] = user
	f.usernames[user.Username] = true
	return user
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	f.add(user)
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uint64) (*model.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByExternalID(_ context.Context, externalID string) (*model.User, error) {
	user, ok := f.byExternalID[externalID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, user *model.User) error {
	f.updated = user
	return nil
}

func (f *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	return f.usernames[username], nil
}

type fakeFollowRepo struct {
	repository.UserFollowRepo
	followers    int64
	following    int64
	followerIDs  []uint64
	followingIDs []uint64
}

func (f *fakeFollowRepo) GetFollowerCount(_ context.Context, _ uint64) (int64, error) {
	return f.followers, nil
}

func (f *fakeFollowRepo) GetFollowingCount(_ context.Context, _ uint64) (int64, error) {
	return f.following, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (f *fakeFollowRepo) GetFollowerIDs(_ context.Context, _ uint64, limit, offset int) ([]uint64, error) {
	return page(f.followerIDs, limit, offset), nil
}

func (f *fakeFollowRepo) GetFollowingIDs(_ context.Context, _ uint64, limit, offset int) ([]uint64, error) {
	return page(f.followingIDs, limit, offset), nil
}

func (f *fakeUserRepo) GetUsersByIDs(_ context.Context, ids []uint64) ([]*model.User, error) {
	var users []*model.User
	// 反向追加，模拟数据库不保证返回顺序
	for i := len(ids) - 1; i >= 0; i-- {
		if user, ok := f.byID[ids[i]]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (f *fakeBlogRepo) CountByUserID(_ context.Context, _ uint64) (int64, error) {
	return 3, nil
}

func sessionRequest() *dto.SessionDTO {
	return &dto.SessionDTO{
		ExternalID: "oauth|1001",
		Name:       "墨石",
		Username:   "inkstone",
		Email:      "ink@example.com",
	}
}

func newUserService(userRepo *fakeUserRepo) *userServiceImpl {
	return &userServiceImpl{
		userRepo:   userRepo,
		followRepo: &fakeFollowRepo{followers: 10, following: 4},
		blogRepo:   &fakeBlogRepo{},
	}
}

func TestSessionCreatesUnknownUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)

	got, err := svc.Session(context.Background(), sessionRequest())
	require.NoError(t, err)
	require.NotNil(t, got.User)

	claims, err := security.ValidateToken(got.Token)
	require.NoError(t, err, "返回的 Token 应当可被本服务校验")
	assert.Equal(t, got.User.ID, claims.UserID)
	assert.Equal(t, "inkstone", claims.Username)

	assert.Equal(t, "墨石", got.User.Name)
	assert.Equal(t, int64(10), got.User.FollowerCount)
	assert.Equal(t, int64(4), got.User.FollowingCount)
	assert.Equal(t, int64(3), got.User.BlogCount)
	assert.Contains(t, repo.byExternalID, "oauth|1001")
}

func TestSessionReturnsExistingUser(t *testing.T) {
	repo := newFakeUserRepo()
	existing := repo.add(&model.User{ExternalID: "oauth|1001", Name: "旧名字", Username: "inkstone"})
	svc := newUserService(repo)

	got, err := svc.Session(context.Background(), sessionRequest())
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.User.ID)
	assert.Equal(t, "旧名字", got.User.Name, "已有用户不应被档案覆盖")
	assert.Equal(t, uint64(2), repo.nextID, "不应新建用户")
}

func TestSessionRejectsTakenUsername(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&model.User{ExternalID: "oauth|other", Username: "inkstone"})
	svc := newUserService(repo)

	_, err := svc.Session(context.Background(), sessionRequest())
	assert.ErrorIs(t, err, ErrUserUsernameExist)
}

func TestUpdateProfilePartial(t *testing.T) {
	repo := newFakeUserRepo()
	bio := "原简介"
	repo.add(&model.User{ExternalID: "oauth|1", Name: "原名", Username: "u", Bio: &bio})
	svc := newUserService(repo)

	newName := "新名"
	err := svc.UpdateProfile(context.Background(), 1, &dto.ProfileUpdateDTO{Name: &newName})
	require.NoError(t, err)
	require.NotNil(t, repo.updated)
	assert.Equal(t, "新名", repo.updated.Name)
	assert.Equal(t, "原简介", *repo.updated.Bio, "未提交的字段应保持原值")
}

func TestToggleFollowGuards(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&model.User{ExternalID: "oauth|1", Username: "a"})
	svc := &userFollowServiceImpl{
		followRepo: &fakeFollowRepo{},
		userRepo:   repo,
	}

	t.Run("cannot follow yourself", func(t *testing.T) {
		_, err := svc.ToggleFollow(context.Background(), 1, 1)
		assert.ErrorIs(t, err, ErrUserFollowSelf)
	})

	t.Run("target must exist", func(t *testing.T) {
		_, err := svc.ToggleFollow(context.Background(), 1, 99)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestListFollowers(t *testing.T) {
	usePublicMinio(t)

	users := newFakeUserRepo()
	target := users.add(&model.User{ExternalID: "oauth|1", Name: "目标", Username: "target"})
	alice := users.add(&model.User{ExternalID: "oauth|2", Name: "甲", Username: "alice", ImageKey: strPtr("avatars/a.png")})
	bob := users.add(&model.User{ExternalID: "oauth|3", Name: "乙", Username: "bob"})

	follows := &fakeFollowRepo{
		followerIDs:  []uint64{bob.ID, alice.ID, 404},
		followingIDs: []uint64{alice.ID},
	}
	svc := &userFollowServiceImpl{followRepo: follows, userRepo: users}
	ctx := context.Background()

	t.Run("follow order kept, avatar resolved", func(t *testing.T) {
		list, err := svc.ListFollowers(ctx, target.ID, 1, 10)
		require.NoError(t, err)
		require.Len(t, list, 2, "已注销的用户跳过")
		assert.Equal(t, "bob", list[0].Username)
		assert.Equal(t, "alice", list[1].Username)
		assert.Empty(t, list[0].AvatarURL)
		assert.Equal(t, "http://cdn.example.com/inkstone/avatars/a.png", list[1].AvatarURL)
	})

	t.Run("paged", func(t *testing.T) {
		list, err := svc.ListFollowers(ctx, target.ID, 1, 2)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "bob", list[0].Username)

		list, err = svc.ListFollowers(ctx, target.ID, 3, 2)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("following list", func(t *testing.T) {
		list, err := svc.ListFollowing(ctx, target.ID, 1, 10)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "alice", list[0].Username)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.ListFollowers(ctx, 999, 1, 10)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
