package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ashwinyue/faq-hub/internal/model"
)

// feedbackRepositoryImpl 反馈仓库的 gorm 实现
type feedbackRepositoryImpl struct {
	db *gorm.DB
}

// NewFeedbackRepository 创建反馈仓库
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepositoryImpl{db: db}
}

// Create 创建反馈
func (r *feedbackRepositoryImpl) Create(ctx context.Context, feedback *model.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

// GetByID 获取反馈
func (r *feedbackRepositoryImpl) GetByID(ctx context.Context, id string) (*model.Feedback, error) {
	var feedback model.Feedback
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&feedback).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

// GetByFAQAndIP 按去重键 (faq_id, user_ip) 获取反馈
func (r *feedbackRepositoryImpl) GetByFAQAndIP(ctx context.Context, faqID, userIP string) (*model.Feedback, error) {
	var feedback model.Feedback
	err := r.db.WithContext(ctx).
		Where("faq_id = ? AND user_ip = ?", faqID, userIP).
		First(&feedback).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

// ListByFAQ 列出FAQ的全部反馈
func (r *feedbackRepositoryImpl) ListByFAQ(ctx context.Context, faqID string) ([]*model.Feedback, error) {
	var feedbacks []*model.Feedback
	err := r.db.WithContext(ctx).Where("faq_id = ?", faqID).Find(&feedbacks).Error
	return feedbacks, err
}

// CountByFAQ 统计FAQ的反馈总数
func (r *feedbackRepositoryImpl) CountByFAQ(ctx context.Context, faqID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Where("faq_id = ?", faqID).
		Count(&count).Error
	return count, err
}

// CountByFAQAndType 统计FAQ下某类型的反馈数
func (r *feedbackRepositoryImpl) CountByFAQAndType(ctx context.Context, faqID, feedbackType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Where("faq_id = ? AND feedback_type = ?", faqID, feedbackType).
		Count(&count).Error
	return count, err
}

// CountAll 统计全部反馈数
func (r *feedbackRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).Count(&count).Error
	return count, err
}

// CountByType 统计某类型的反馈总数
func (r *feedbackRepositoryImpl) CountByType(ctx context.Context, feedbackType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Where("feedback_type = ?", feedbackType).
		Count(&count).Error
	return count, err
}

// RankByType 按某类型反馈数对FAQ排名
// 数量降序，并列时 faq_id 升序，保证输出确定
func (r *feedbackRepositoryImpl) RankByType(ctx context.Context, feedbackType string, limit int) ([]FAQFeedbackCount, error) {
	var results []FAQFeedbackCount
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Select("feedbacks.faq_id AS faq_id, faqs.question AS question, COUNT(*) AS count").
		Joins("JOIN faqs ON faqs.id = feedbacks.faq_id").
		Where("feedbacks.feedback_type = ?", feedbackType).
		Group("feedbacks.faq_id, faqs.question").
		Order("count DESC, faq_id ASC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

// UpdateType 只覆盖反馈类型，保持 id 和创建时间不变
func (r *feedbackRepositoryImpl) UpdateType(ctx context.Context, id, feedbackType string) error {
	return r.db.WithContext(ctx).Model(&model.Feedback{}).Where("id = ?", id).
		UpdateColumn("feedback_type", feedbackType).Error
}

// ExistsByID 判断反馈是否存在
func (r *feedbackRepositoryImpl) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Delete 删除反馈
func (r *feedbackRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Feedback{}, "id = ?", id).Error
}

// DeleteByFAQ 删除FAQ的全部反馈
func (r *feedbackRepositoryImpl) DeleteByFAQ(ctx context.Context, faqID string) error {
	return r.db.WithContext(ctx).Delete(&model.Feedback{}, "faq_id = ?", faqID).Error
}
