package repositories

import (
	"context"

	"galhub/internal/database"
	. "galhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

type AdminRepository interface {
	GetByID(ctx context.Context, id int) (*Admin, error)
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	GetAll(ctx context.Context) ([]*Admin, error)
	Create(ctx context.Context, admin *Admin) error
	Delete(ctx context.Context, id int) (int64, error)
}

type adminRepository struct {
	db  database.DB
	log logger.Logger
}

func NewAdminRepository(db database.DB) AdminRepository {
	return &adminRepository{
		db:  db,
		log: logger.New("adminRepository"),
	}
}

func (r *adminRepository) GetByID(ctx context.Context, id int) (*Admin, error) {
	var admin Admin
	if err := r.db.SQLWithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	var admin Admin
	if err := r.db.SQLWithContext(ctx).First(&admin, "username = ?", username).Error; err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *adminRepository) GetAll(ctx context.Context) ([]*Admin, error) {
	log := r.log.Function("GetAll")

	admins := []*Admin{}
	if err := r.db.SQLWithContext(ctx).Order("id ASC").Find(&admins).Error; err != nil {
		return nil, log.Err("failed to list admins", err)
	}

	return admins, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *Admin) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(admin).Error; err != nil {
		return log.Err("failed to create admin", err, "username", admin.Username)
	}

	return nil
}

func (r *adminRepository) Delete(ctx context.Context, id int) (int64, error) {
	log := r.log.Function("Delete")

	result := r.db.SQLWithContext(ctx).Delete(&Admin{}, "id = ?", id)
	if result.Error != nil {
		return 0, log.Err("failed to delete admin", result.Error, "id", id)
	}

	return result.RowsAffected, nil
}
