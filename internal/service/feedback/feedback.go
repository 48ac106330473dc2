// Package feedback FAQ反馈服务
package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ashwinyue/faq-hub/internal/model"
	"github.com/ashwinyue/faq-hub/internal/repository"
)

// 服务级错误，由 handler 层映射为响应状态
var (
	ErrFAQNotFound      = errors.New("FAQ not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
)

// 管理端排行榜的长度上限
const adminRankLimit = 10

// Service 反馈服务
type Service struct {
	feedbacks repository.FeedbackRepository
	faqs      repository.FAQRepository
}

// NewService 创建反馈服务
func NewService(feedbacks repository.FeedbackRepository, faqs repository.FAQRepository) *Service {
	return &Service{feedbacks: feedbacks, faqs: faqs}
}

// FeedbackDTO 反馈传输对象
type FeedbackDTO struct {
	ID        string    `json:"id"`
	FAQID     string    `json:"faqId"`
	Type      string    `json:"feedbackType"`
	UserIP    string    `json:"userIp,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FeedbackRequest 提交反馈请求，userIp 由服务端从请求推导
type FeedbackRequest struct {
	FAQID string `json:"faqId" binding:"required"`
	Type  string `json:"feedbackType" binding:"required,oneof=POSITIVE NEGATIVE"`
}

// AdminStats 管理端反馈统计
type AdminStats struct {
	TotalFeedbacks int64                         `json:"totalFeedbacks"`
	TotalPositive  int64                         `json:"totalPositive"`
	TotalNegative  int64                         `json:"totalNegative"`
	MostLiked      []repository.FAQFeedbackCount `json:"mostLiked"`
	LeastLiked     []repository.FAQFeedbackCount `json:"leastLiked"`
}

// CreateOrUpdate 创建或覆盖反馈
// 以 (faqId, userIp) 为去重键：已有记录只覆盖类型，id 和创建时间不变
func (s *Service) CreateOrUpdate(ctx context.Context, req *FeedbackRequest, userIP string) (*FeedbackDTO, error) {
	if _, err := s.faqs.GetByID(ctx, req.FAQID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFAQNotFound
		}
		return nil, fmt.Errorf("failed to get FAQ: %w", err)
	}

	existing, err := s.feedbacks.GetByFAQAndIP(ctx, req.FAQID, userIP)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up feedback: %w", err)
	}

	if existing != nil {
		if err := s.feedbacks.UpdateType(ctx, existing.ID, req.Type); err != nil {
			return nil, fmt.Errorf("failed to update feedback: %w", err)
		}
		existing.Type = req.Type
		dto := toDTO(existing)
		return &dto, nil
	}

	feedback := &model.Feedback{
		ID:     uuid.New().String(),
		FAQID:  req.FAQID,
		Type:   req.Type,
		UserIP: userIP,
	}
	if err := s.feedbacks.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	dto := toDTO(feedback)
	return &dto, nil
}

// GetByFAQ 列出FAQ的全部反馈
func (s *Service) GetByFAQ(ctx context.Context, faqID string) ([]FeedbackDTO, error) {
	feedbacks, err := s.feedbacks.ListByFAQ(ctx, faqID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedbacks: %w", err)
	}

	dtos := make([]FeedbackDTO, 0, len(feedbacks))
	for _, f := range feedbacks {
		dtos = append(dtos, toDTO(f))
	}
	return dtos, nil
}

// GetStats 统计FAQ的正/负/总反馈数
func (s *Service) GetStats(ctx context.Context, faqID string) (map[string]int64, error) {
	positive, err := s.feedbacks.CountByFAQAndType(ctx, faqID, model.FeedbackPositive)
	if err != nil {
		return nil, fmt.Errorf("failed to count positive feedbacks: %w", err)
	}
	negative, err := s.feedbacks.CountByFAQAndType(ctx, faqID, model.FeedbackNegative)
	if err != nil {
		return nil, fmt.Errorf("failed to count negative feedbacks: %w", err)
	}
	total, err := s.feedbacks.CountByFAQ(ctx, faqID)
	if err != nil {
		return nil, fmt.Errorf("failed to count feedbacks: %w", err)
	}

	return map[string]int64{
		"positive": positive,
		"negative": negative,
		"total":    total,
	}, nil
}

// GetUserFeedback 按去重键获取单条反馈
func (s *Service) GetUserFeedback(ctx context.Context, faqID, userIP string) (*FeedbackDTO, error) {
	feedback, err := s.feedbacks.GetByFAQAndIP(ctx, faqID, userIP)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	dto := toDTO(feedback)
	return &dto, nil
}

// Delete 删除反馈
func (s *Service) Delete(ctx context.Context, id string) error {
	exists, err := s.feedbacks.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check feedback: %w", err)
	}
	if !exists {
		return ErrFeedbackNotFound
	}

	if err := s.feedbacks.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}
	return nil
}

// DeleteByFAQ 删除FAQ的全部反馈，没有记录也不算错误
func (s *Service) DeleteByFAQ(ctx context.Context, faqID string) error {
	if err := s.feedbacks.DeleteByFAQ(ctx, faqID); err != nil {
		return fmt.Errorf("failed to delete feedbacks: %w", err)
	}
	return nil
}

// GetAdminStats 管理端全局统计与排行榜
func (s *Service) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	total, err := s.feedbacks.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count feedbacks: %w", err)
	}
	positive, err := s.feedbacks.CountByType(ctx, model.FeedbackPositive)
	if err != nil {
		return nil, fmt.Errorf("failed to count positive feedbacks: %w", err)
	}
	negative, err := s.feedbacks.CountByType(ctx, model.FeedbackNegative)
	if err != nil {
		return nil, fmt.Errorf("failed to count negative feedbacks: %w", err)
	}

	mostLiked, err := s.feedbacks.RankByType(ctx, model.FeedbackPositive, adminRankLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank most liked FAQs: %w", err)
	}
	leastLiked, err := s.feedbacks.RankByType(ctx, model.FeedbackNegative, adminRankLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank least liked FAQs: %w", err)
	}

	return &AdminStats{
		TotalFeedbacks: total,
		TotalPositive:  positive,
		TotalNegative:  negative,
		MostLiked:      mostLiked,
		LeastLiked:     leastLiked,
	}, nil
}

// toDTO 实体转传输对象
func toDTO(feedback *model.Feedback) FeedbackDTO {
	return FeedbackDTO{
		ID:        feedback.ID,
		FAQID:     feedback.FAQID,
		Type:      feedback.Type,
		UserIP:    feedback.UserIP,
		CreatedAt: feedback.CreatedAt,
	}
}
