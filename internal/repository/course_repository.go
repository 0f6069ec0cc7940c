package repository

import (
	"github.com/pharmasuccess/examportal/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	FindAll() ([]model.Course, error)
	FindByID(id uint) (*model.Course, error)
	Enroll(enrollment *model.Enrollment) error
	IsEnrolled(userID, courseID uint) (bool, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.Order("course_name ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) Enroll(enrollment *model.Enrollment) error {
	return r.db.Create(enrollment).Error
}

func (r *courseRepository) IsEnrolled(userID, courseID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}
