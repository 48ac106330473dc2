// Package repository 定义数据访问接口
// 接口抽象使依赖注入和单元测试成为可能
package repository

import (
	"context"

	"github.com/ashwinyue/faq-hub/internal/model"
)

// ========== CategoryRepository 接口 ==========

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id string) (*model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
	ListAll(ctx context.Context) ([]*model.Category, error)
	ListWithActiveFAQs(ctx context.Context) ([]*model.Category, error)
	Search(ctx context.Context, term string) ([]*model.Category, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	CountFAQs(ctx context.Context, categoryID string) (int64, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id string) error
}

// ========== FAQRepository 接口 ==========

// FAQRepository FAQ数据访问接口
type FAQRepository interface {
	Create(ctx context.Context, faq *model.FAQ) error
	GetByID(ctx context.Context, id string) (*model.FAQ, error)
	ListActive(ctx context.Context) ([]*model.FAQ, error)
	ListActiveByCategory(ctx context.Context, categoryID string) ([]*model.FAQ, error)
	SearchActive(ctx context.Context, term string) ([]*model.FAQ, error)
	SearchActiveByCategory(ctx context.Context, categoryID, term string) ([]*model.FAQ, error)
	MostViewed(ctx context.Context, limit int) ([]*model.FAQ, error)
	MostViewedPage(ctx context.Context, offset, limit int) ([]*model.FAQ, int64, error)
	Recent(ctx context.Context, limit int) ([]*model.FAQ, error)
	Related(ctx context.Context, categoryID, excludeID string, limit int) ([]*model.FAQ, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsActiveByQuestion(ctx context.Context, question string) (bool, error)
	IncrementViewCount(ctx context.Context, id string) error
	UpdateActiveStatus(ctx context.Context, id string, isActive bool) error
	Update(ctx context.Context, faq *model.FAQ) error
	Delete(ctx context.Context, id string) error
}

// ========== FeedbackRepository 接口 ==========

// FAQFeedbackCount 按FAQ聚合的反馈数量
type FAQFeedbackCount struct {
	FAQID    string `json:"faqId"`
	Question string `json:"question"`
	Count    int64  `json:"count"`
}

// FeedbackRepository 反馈数据访问接口
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	GetByID(ctx context.Context, id string) (*model.Feedback, error)
	GetByFAQAndIP(ctx context.Context, faqID, userIP string) (*model.Feedback, error)
	ListByFAQ(ctx context.Context, faqID string) ([]*model.Feedback, error)
	CountByFAQ(ctx context.Context, faqID string) (int64, error)
	CountByFAQAndType(ctx context.Context, faqID, feedbackType string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountByType(ctx context.Context, feedbackType string) (int64, error)
	RankByType(ctx context.Context, feedbackType string, limit int) ([]FAQFeedbackCount, error)
	UpdateType(ctx context.Context, id, feedbackType string) error
	ExistsByID(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
	DeleteByFAQ(ctx context.Context, faqID string) error
}

// 确保各实现满足接口
var (
	_ CategoryRepository = (*categoryRepositoryImpl)(nil)
	_ FAQRepository      = (*faqRepositoryImpl)(nil)
	_ FeedbackRepository = (*feedbackRepositoryImpl)(nil)
)
