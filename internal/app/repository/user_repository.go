package repository

import (
	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByLogin(login string) (*model.User, error)
	FindByLoginOrEmail(login, email string) (*model.User, error)
	FindAll() ([]model.User, error)
	DeleteWithOwnedData(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"login": user.Login,
		"email": user.Email,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"login": user.Login,
		})
		return err
	}
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByLogin(login string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("login = ?", login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByLoginOrEmail(login, email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("login = ? OR email = ?", login, email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		logger.Error("Failed to list users from database", err)
		return nil, err
	}
	return users, nil
}

// DeleteWithOwnedData removes the user together with all rows scoped to
// them: cart lines, ratings, favorites and comments (with their replies,
// which by construction belong to the same comment table).
func (r *userRepository) DeleteWithOwnedData(id uint) error {
	logger.Debug("Deleting user and owned data from database", map[string]interface{}{
		"user_id": id,
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.FavoriteItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}
