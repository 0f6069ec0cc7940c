package repository

import (
	"github.com/pharmasuccess/examportal/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByEmailAndType(email, userType string) (*model.User, error)
	FindStudentsByStatus(status string) ([]model.User, error)
	UpdateStatus(id uint, status string) error
	UpdatePasswordHash(id uint, hash string) error
	CountStudents() (int64, error)
	CountByStatus(status string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmailAndType(email, userType string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ? AND user_type = ?", email, userType).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindStudentsByStatus(status string) ([]model.User, error) {
	var users []model.User
	err := r.db.
		Where("user_type = ? AND status = ?", model.UserTypeStudent, status).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *userRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("status", status).Error
}

func (r *userRepository) UpdatePasswordHash(id uint, hash string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("password_hash", hash).Error
}

func (r *userRepository) CountStudents() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("user_type = ?", model.UserTypeStudent).Count(&count).Error
	return count, err
}

func (r *userRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
