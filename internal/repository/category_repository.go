package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ashwinyue/faq-hub/internal/model"
)

// categoryRepositoryImpl 分类仓库的 gorm 实现
type categoryRepositoryImpl struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepositoryImpl{db: db}
}

// Create 创建分类
func (r *categoryRepositoryImpl) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// GetByID 获取分类
func (r *categoryRepositoryImpl) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetByName 按名称获取分类（忽略大小写）
func (r *categoryRepositoryImpl) GetByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListAll 列出所有分类，按名称升序
func (r *categoryRepositoryImpl) ListAll(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

// ListWithActiveFAQs 列出含活跃FAQ的分类，按名称升序
func (r *categoryRepositoryImpl) ListWithActiveFAQs(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	err := r.db.WithContext(ctx).
		Distinct("categories.*").
		Joins("JOIN faqs ON faqs.category_id = categories.id").
		Where("faqs.is_active = ?", true).
		Order("categories.name ASC").
		Find(&categories).Error
	return categories, err
}

// Search 按名称或描述搜索分类（忽略大小写）
func (r *categoryRepositoryImpl) Search(ctx context.Context, term string) ([]*model.Category, error) {
	var categories []*model.Category
	pattern := "%" + term + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

// ExistsByID 判断分类是否存在
func (r *categoryRepositoryImpl) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ExistsByName 判断名称是否已被占用（忽略大小写）
func (r *categoryRepositoryImpl) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	return count > 0, err
}

// CountFAQs 统计分类下的FAQ数量
func (r *categoryRepositoryImpl) CountFAQs(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FAQ{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// Update 更新分类
func (r *categoryRepositoryImpl) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete 删除分类
func (r *categoryRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id).Error
}
