// Package faq FAQ服务
package faq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ashwinyue/faq-hub/internal/model"
	"github.com/ashwinyue/faq-hub/internal/repository"
	"github.com/ashwinyue/faq-hub/internal/service/category"
)

// 服务级错误，由 handler 层映射为响应状态
var (
	ErrFAQNotFound       = errors.New("FAQ not found")
	ErrDuplicateQuestion = errors.New("active FAQ with this question already exists")
)

// Service FAQ服务
type Service struct {
	faqs       repository.FAQRepository
	categories repository.CategoryRepository
	cache      *ListCache
}

// NewService 创建FAQ服务
// cache 可以为 nil，此时列表读取不走缓存
func NewService(faqs repository.FAQRepository, categories repository.CategoryRepository, cache *ListCache) *Service {
	return &Service{faqs: faqs, categories: categories, cache: cache}
}

// FAQDTO FAQ传输对象，冗余携带所属分类的ID和名称
type FAQDTO struct {
	ID           string    `json:"id"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	ViewCount    int       `json:"viewCount"`
	IsActive     bool      `json:"isActive"`
	Priority     int       `json:"priority"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
}

// FAQSummaryDTO 相关FAQ的精简投影
type FAQSummaryDTO struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	ViewCount int       `json:"viewCount"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ViewStatsResponse 浏览量分页信封
type ViewStatsResponse struct {
	Items         []FAQDTO `json:"items"`
	CurrentPage   int      `json:"currentPage"`
	TotalPages    int      `json:"totalPages"`
	TotalElements int64    `json:"totalElements"`
	PageSize      int      `json:"pageSize"`
	HasNext       bool     `json:"hasNext"`
	HasPrevious   bool     `json:"hasPrevious"`
}

// FAQRequest 创建/更新FAQ请求
type FAQRequest struct {
	Question   string `json:"question" binding:"required,min=5,max=500"`
	Answer     string `json:"answer" binding:"required,min=10,max=3000"`
	CategoryID string `json:"categoryId" binding:"required"`
	Priority   *int   `json:"priority"`
	IsActive   *bool  `json:"isActive"`
}

// FindAllActive 列出所有活跃FAQ，最新优先
func (s *Service) FindAllActive(ctx context.Context) ([]FAQDTO, error) {
	faqs, err := s.faqs.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list FAQs: %w", err)
	}
	return toDTOs(faqs), nil
}

// FindByID 按ID获取FAQ，不区分启用状态
func (s *Service) FindByID(ctx context.Context, id string) (*FAQDTO, error) {
	faq, err := s.faqs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFAQNotFound
		}
		return nil, fmt.Errorf("failed to get FAQ: %w", err)
	}
	dto := toDTO(faq)
	return &dto, nil
}

// FindByIDAndIncrementView 读取活跃FAQ并原子增加浏览量
// 返回的浏览量必须是自增之后的值，所以增加后重新读取
func (s *Service) FindByIDAndIncrementView(ctx context.Context, id string) (*FAQDTO, error) {
	faq, err := s.faqs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFAQNotFound
		}
		return nil, fmt.Errorf("failed to get FAQ: %w", err)
	}
	if !faq.IsActive {
		return nil, ErrFAQNotFound
	}

	if err := s.faqs.IncrementViewCount(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to increment view count: %w", err)
	}

	faq, err = s.faqs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload FAQ: %w", err)
	}
	dto := toDTO(faq)
	return &dto, nil
}

// FindByCategory 列出分类下的活跃FAQ
func (s *Service) FindByCategory(ctx context.Context, categoryID string) ([]FAQDTO, error) {
	faqs, err := s.faqs.ListActiveByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list FAQs by category: %w", err)
	}
	return toDTOs(faqs), nil
}

// Search 搜索活跃FAQ，空关键词退化为全量活跃列表
func (s *Service) Search(ctx context.Context, term string) ([]FAQDTO, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.FindAllActive(ctx)
	}

	faqs, err := s.faqs.SearchActive(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search FAQs: %w", err)
	}
	return toDTOs(faqs), nil
}

// SearchByCategory 在分类范围内搜索活跃FAQ
func (s *Service) SearchByCategory(ctx context.Context, categoryID, term string) ([]FAQDTO, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.FindByCategory(ctx, categoryID)
	}

	faqs, err := s.faqs.SearchActiveByCategory(ctx, categoryID, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search FAQs by category: %w", err)
	}
	return toDTOs(faqs), nil
}

// FindMostViewed 列出浏览量最高的活跃FAQ
// 并列时更新的记录排前，保证顺序确定
func (s *Service) FindMostViewed(ctx context.Context, limit int) ([]FAQDTO, error) {
	key := fmt.Sprintf("faq:list:most-viewed:%d", limit)
	var cached []FAQDTO
	if s.cache.get(ctx, key, &cached) {
		return cached, nil
	}

	faqs, err := s.faqs.MostViewed(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list most viewed FAQs: %w", err)
	}

	dtos := toDTOs(faqs)
	s.cache.set(ctx, key, dtos)
	return dtos, nil
}

// FindMostViewedPaged 分页列出有浏览量的活跃FAQ
// page 从 0 开始
func (s *Service) FindMostViewedPaged(ctx context.Context, page, size int) (*ViewStatsResponse, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 10
	}

	faqs, total, err := s.faqs.MostViewedPage(ctx, page*size, size)
	if err != nil {
		return nil, fmt.Errorf("failed to page most viewed FAQs: %w", err)
	}

	totalPages := int(total) / size
	if int(total)%size > 0 {
		totalPages++
	}

	return &ViewStatsResponse{
		Items:         toDTOs(faqs),
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalElements: total,
		PageSize:      size,
		HasNext:       page+1 < totalPages,
		HasPrevious:   page > 0,
	}, nil
}

// FindRecent 列出最新的活跃FAQ
func (s *Service) FindRecent(ctx context.Context, limit int) ([]FAQDTO, error) {
	key := fmt.Sprintf("faq:list:recent:%d", limit)
	var cached []FAQDTO
	if s.cache.get(ctx, key, &cached) {
		return cached, nil
	}

	faqs, err := s.faqs.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent FAQs: %w", err)
	}

	dtos := toDTOs(faqs)
	s.cache.set(ctx, key, dtos)
	return dtos, nil
}

// FindRelated 列出同分类下的相关FAQ
// 源FAQ不存在时返回空列表而非错误
func (s *Service) FindRelated(ctx context.Context, faqID string, limit int) ([]FAQSummaryDTO, error) {
	faq, err := s.faqs.GetByID(ctx, faqID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []FAQSummaryDTO{}, nil
		}
		return nil, fmt.Errorf("failed to get FAQ: %w", err)
	}

	related, err := s.faqs.Related(ctx, faq.CategoryID, faqID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list related FAQs: %w", err)
	}

	summaries := make([]FAQSummaryDTO, 0, len(related))
	for _, f := range related {
		summaries = append(summaries, toSummaryDTO(f))
	}
	return summaries, nil
}

// Create 创建FAQ
func (s *Service) Create(ctx context.Context, req *FAQRequest) (*FAQDTO, error) {
	cat, err := s.categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	exists, err := s.faqs.ExistsActiveByQuestion(ctx, req.Question)
	if err != nil {
		return nil, fmt.Errorf("failed to check question: %w", err)
	}
	if exists {
		return nil, ErrDuplicateQuestion
	}

	faq := &model.FAQ{
		ID:         uuid.New().String(),
		Question:   req.Question,
		Answer:     req.Answer,
		CategoryID: cat.ID,
		Category:   *cat,
		IsActive:   true,
		Priority:   1,
	}
	if req.Priority != nil {
		faq.Priority = *req.Priority
	}
	if req.IsActive != nil {
		faq.IsActive = *req.IsActive
	}

	if err := s.faqs.Create(ctx, faq); err != nil {
		return nil, fmt.Errorf("failed to create FAQ: %w", err)
	}

	s.cache.invalidate(ctx)
	dto := toDTO(faq)
	return &dto, nil
}

// Update 更新FAQ
func (s *Service) Update(ctx context.Context, id string, req *FAQRequest) (*FAQDTO, error) {
	faq, err := s.faqs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFAQNotFound
		}
		return nil, fmt.Errorf("failed to get FAQ: %w", err)
	}

	cat, err := s.categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	faq.Question = req.Question
	faq.Answer = req.Answer
	faq.CategoryID = cat.ID
	faq.Category = *cat
	if req.IsActive != nil {
		faq.IsActive = *req.IsActive
	}

	if err := s.faqs.Update(ctx, faq); err != nil {
		return nil, fmt.Errorf("failed to update FAQ: %w", err)
	}

	s.cache.invalidate(ctx)
	dto := toDTO(faq)
	return &dto, nil
}

// UpdateActiveStatus 启用/停用FAQ
func (s *Service) UpdateActiveStatus(ctx context.Context, id string, isActive bool) error {
	exists, err := s.faqs.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check FAQ: %w", err)
	}
	if !exists {
		return ErrFAQNotFound
	}

	if err := s.faqs.UpdateActiveStatus(ctx, id, isActive); err != nil {
		return fmt.Errorf("failed to update FAQ status: %w", err)
	}

	s.cache.invalidate(ctx)
	return nil
}

// Delete 删除FAQ
func (s *Service) Delete(ctx context.Context, id string) error {
	exists, err := s.faqs.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check FAQ: %w", err)
	}
	if !exists {
		return ErrFAQNotFound
	}

	if err := s.faqs.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete FAQ: %w", err)
	}

	s.cache.invalidate(ctx)
	return nil
}

// toDTO 实体转传输对象
func toDTO(faq *model.FAQ) FAQDTO {
	return FAQDTO{
		ID:           faq.ID,
		Question:     faq.Question,
		Answer:       faq.Answer,
		ViewCount:    faq.ViewCount,
		IsActive:     faq.IsActive,
		Priority:     faq.Priority,
		CreatedAt:    faq.CreatedAt,
		UpdatedAt:    faq.UpdatedAt,
		CategoryID:   faq.CategoryID,
		CategoryName: faq.Category.Name,
	}
}

// toSummaryDTO 实体转精简投影
func toSummaryDTO(faq *model.FAQ) FAQSummaryDTO {
	return FAQSummaryDTO{
		ID:        faq.ID,
		Question:  faq.Question,
		ViewCount: faq.ViewCount,
		IsActive:  faq.IsActive,
		CreatedAt: faq.CreatedAt,
		UpdatedAt: faq.UpdatedAt,
	}
}

// toDTOs 批量转换
func toDTOs(faqs []*model.FAQ) []FAQDTO {
	dtos := make([]FAQDTO, 0, len(faqs))
	for _, f := range faqs {
		dtos = append(dtos, toDTO(f))
	}
	return dtos
}
