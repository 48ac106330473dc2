package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ashwinyue/faq-hub/internal/model"
)

// faqRepositoryImpl FAQ仓库的 gorm 实现
type faqRepositoryImpl struct {
	db *gorm.DB
}

// NewFAQRepository 创建FAQ仓库
func NewFAQRepository(db *gorm.DB) FAQRepository {
	return &faqRepositoryImpl{db: db}
}

// Create 创建FAQ
func (r *faqRepositoryImpl) Create(ctx context.Context, faq *model.FAQ) error {
	return r.db.WithContext(ctx).Create(faq).Error
}

// GetByID 获取FAQ（含所属分类）
func (r *faqRepositoryImpl) GetByID(ctx context.Context, id string) (*model.FAQ, error) {
	var faq model.FAQ
	err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&faq).Error
	if err != nil {
		return nil, err
	}
	return &faq, nil
}

// ListActive 列出活跃FAQ，最新优先
func (r *faqRepositoryImpl) ListActive(ctx context.Context) ([]*model.FAQ, error) {
	var faqs []*model.FAQ
	err := r.db.WithContext(ctx).Preload("Category").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&faqs).Error
	return faqs, err
}

// ListActiveByCategory 列出分类下的活跃FAQ，最新优先
func (r *faqRepositoryImpl) ListActiveByCategory(ctx context.Context, categoryID string) ([]*model.FAQ, error) {
	var faqs []*model.FAQ
	err := r.db.WithContext(ctx).Preload("Category").
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Order("created_at DESC").
		Find(&faqs).Error
	return faqs, err
}

// SearchActive 按问题或答案搜索活跃FAQ（忽略大小写）
func (r *faqRepositoryImpl) SearchActive(ctx context.Context, term string) ([]*model.FAQ, error) {
	var faqs []*model.FAQ
	pattern := "%" + term + "%"
	err := r.db.WithContext(ctx).Preload("Category").
		Where("is_active = ?", true).
		Where("LOWER(question) LIKE LOWER(?) OR LOWER(answer) LIKE LOWER(?)", pattern, pattern).
		Order("created_at DESC").
		Find(&faqs).Error
	return faqs, err
}

// SearchActiveByCategory 在分类范围内搜索活跃FAQ
func (r *faqRepositoryImpl) SearchActiveByCategory(ctx context.Context, categoryID, term string) ([]*model.FAQ, error) {
	var faqs []*model.FAQ
	pattern := "%" + term + "%"
	err := r.db.WithContext(ctx).Preload("Category").
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Where("LOWER(question) LIKE LOWER(?) OR LOWER(answer) LIKE LOWER(?)", pattern, pattern).
		Order("created_at DESC").
		Find(&faqs).Error
	return faqs, err
}

// MostViewed 列出浏览量最高的活跃FAQ
// 排序规则：view_count 降序，并列时 created_at 降序
func (r *faqRepositoryImpl) MostViewed(ctx context.Context, limit int) ([]*model.FAQ, error) {
	var faqs []*model.FAQ
	err := r.db.WithContext(ctx).Preload("Category").
		Where("is_active = ?", true).
		Order("view_count DESC, created_at DESC").
		Limit(limit).
		Find(&faqs).Error
	return faqs, err
}

// MostViewedPage 分页列出有浏览量的活跃FAQ，返回总数
func (r *faqRepositoryImpl) MostViewedPage(ctx context.Context, offset, limit int) ([]*model.FAQ, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.FAQ{}).
		Where("is_active = ? AND view_count > 0", true).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var faqs []*model.FAQ
	err = r.db.WithContext(ctx).Preload("Category").
		Where("is_active = ? AND view_count > 0", true).
		Order("view_count DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&faqs).Error
	return faqs, total, err
}

// Recent 列出最新的活跃FAQ
func (r *faqRepositoryImpl) Recent(ctx context.Context, limit int) ([]*model.FAQ, error) {
	var faqs []*model.FAQ
	err := r.db.WithContext(ctx).Preload("Category").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&faqs).Error
	return faqs, err
}

// Related 列出同分类下的其他活跃FAQ，浏览量优先
func (r *faqRepositoryImpl) Related(ctx context.Context, categoryID, excludeID string, limit int) ([]*model.FAQ, error) {
	var faqs []*model.FAQ
	err := r.db.WithContext(ctx).Preload("Category").
		Where("category_id = ? AND id != ? AND is_active = ?", categoryID, excludeID, true).
		Order("view_count DESC, created_at DESC").
		Limit(limit).
		Find(&faqs).Error
	return faqs, err
}

// ExistsByID 判断FAQ是否存在
func (r *faqRepositoryImpl) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FAQ{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ExistsActiveByQuestion 判断是否已有同问题的活跃FAQ（忽略大小写）
func (r *faqRepositoryImpl) ExistsActiveByQuestion(ctx context.Context, question string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FAQ{}).
		Where("LOWER(question) = LOWER(?) AND is_active = ?", question, true).
		Count(&count).Error
	return count > 0, err
}

// IncrementViewCount 增加浏览次数
// 必须是存储端的原子自增，并发 N 次调用最终恰好 +N
func (r *faqRepositoryImpl) IncrementViewCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.FAQ{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// UpdateActiveStatus 更新启用状态
// 窄更新，不触碰其他列，也不重置 updated_at
func (r *faqRepositoryImpl) UpdateActiveStatus(ctx context.Context, id string, isActive bool) error {
	return r.db.WithContext(ctx).Model(&model.FAQ{}).Where("id = ?", id).
		UpdateColumn("is_active", isActive).Error
}

// Update 更新FAQ
func (r *faqRepositoryImpl) Update(ctx context.Context, faq *model.FAQ) error {
	return r.db.WithContext(ctx).Save(faq).Error
}

// Delete 删除FAQ
func (r *faqRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.FAQ{}, "id = ?", id).Error
}
