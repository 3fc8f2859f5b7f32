package repositories

import (
	"context"
	"strconv"
	"time"

	"galhub/internal/database"
	. "galhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	USER_CACHE_EXPIRY = 7 * 24 * time.Hour // 7 days
	USER_CACHE_PREFIX = "user:"
)

func cacheKeyForUser(uid int) string {
	return strconv.Itoa(uid)
}

type UserRepository interface {
	GetByUID(ctx context.Context, uid int) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, user *User) error
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) GetByUID(ctx context.Context, uid int) (*User, error) {
	log := r.log.Function("GetByUID")

	var user User
	if found := r.getCacheByUID(ctx, uid, &user); found {
		return &user, nil
	}

	if err := r.db.SQLWithContext(ctx).First(&user, "uid = ?", uid).Error; err != nil {
		return nil, err
	}

	if err := r.addUserToCache(ctx, &user); err != nil {
		log.Warn("failed to add user to cache", "uid", uid, "error", err)
	}

	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := r.db.SQLWithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]*User, error) {
	log := r.log.Function("GetAll")

	users := []*User{}
	if err := r.db.SQLWithContext(ctx).Order("uid ASC").Find(&users).Error; err != nil {
		return nil, log.Err("failed to list users", err)
	}

	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(user).Error; err != nil {
		return log.Err("failed to create user", err, "username", user.Username)
	}

	return nil
}

func (r *userRepository) Update(ctx context.Context, user *User) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(user).Error; err != nil {
		return log.Err("failed to update user", err, "uid", user.UID)
	}

	r.clearUserCache(ctx, user.UID)

	return nil
}

func (r *userRepository) Delete(ctx context.Context, user *User) error {
	log := r.log.Function("Delete")

	if err := r.db.SQLWithContext(ctx).Delete(user).Error; err != nil {
		return log.Err("failed to delete user", err, "uid", user.UID)
	}

	r.clearUserCache(ctx, user.UID)

	return nil
}

func (r *userRepository) getCacheByUID(ctx context.Context, uid int, user *User) bool {
	cacheKey := USER_CACHE_PREFIX + cacheKeyForUser(uid)
	found, err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).WithContext(ctx).Get(user)
	if err != nil {
		r.log.Function("getCacheByUID").
			Warn("failed to get user from cache", "uid", uid, "error", err)
		return false
	}

	return found
}

func (r *userRepository) addUserToCache(ctx context.Context, user *User) error {
	cacheKey := USER_CACHE_PREFIX + cacheKeyForUser(user.UID)
	return database.NewCacheBuilder(r.db.Cache.User, cacheKey).
		WithStruct(user).
		WithTTL(USER_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}

func (r *userRepository) clearUserCache(ctx context.Context, uid int) {
	log := r.log.Function("clearUserCache")

	cacheKey := USER_CACHE_PREFIX + cacheKeyForUser(uid)
	if err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).WithContext(ctx).Delete(); err != nil {
		log.Warn("failed to clear user cache", "uid", uid, "error", err)
	}
}
