// Package category 分类服务
package category

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
)

// 服务级错误，由 handler 层映射为响应状态
var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrDuplicateCategoryName = errors.New("category name already exists")
	ErrCategoryHasFAQs       = errors.New("category still has FAQs")
)

// Service 分类服务
type Service struct {
	repo repository.CategoryRepository
}

// NewService 创建分类服务
func NewService(repo repository.CategoryRepository) *Service {
	return &Service{repo: repo}
}

// CategoryDTO 分类传输对象
type CategoryDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CategoryRequest 创建/更新分类请求
type CategoryRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Description  string `json:"description" binding:"max=500"`
	DisplayOrder int    `json:"displayOrder"`
}

// FindAll 列出所有分类，按名称升序
func (s *Service) FindAll(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return toDTOs(categories), nil
}

// FindByID 按ID获取分类
func (s *Service) FindByID(ctx context.Context, id string) (*CategoryDTO, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	dto := toDTO(category)
	return &dto, nil
}

// FindWithActiveFAQs 列出含活跃FAQ的分类
func (s *Service) FindWithActiveFAQs(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListWithActiveFAQs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories with active FAQs: %w", err)
	}
	return toDTOs(categories), nil
}

// Search 搜索分类，空关键词退化为全量列表
func (s *Service) Search(ctx context.Context, term string) ([]CategoryDTO, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.FindAll(ctx)
	}

	categories, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search categories: %w", err)
	}
	return toDTOs(categories), nil
}

// Create 创建分类
func (s *Service) Create(ctx context.Context, req *CategoryRequest) (*CategoryDTO, error) {
	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, ErrDuplicateCategoryName
	}

	category := &model.Category{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	dto := toDTO(category)
	return &dto, nil
}

// Update 更新分类的名称和描述
func (s *Service) Update(ctx context.Context, id string, req *CategoryRequest) (*CategoryDTO, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	// 名称冲突检查要排除自己
	existing, err := s.repo.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if existing != nil && existing.ID != id {
		return nil, ErrDuplicateCategoryName
	}

	category.Name = req.Name
	category.Description = req.Description

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	dto := toDTO(category)
	return &dto, nil
}

// Delete 删除分类，仍有FAQ关联时拒绝
func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to get category: %w", err)
	}

	count, err := s.repo.CountFAQs(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count category FAQs: %w", err)
	}
	if count > 0 {
		return ErrCategoryHasFAQs
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// ExistsByID 判断分类是否存在
func (s *Service) ExistsByID(ctx context.Context, id string) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}
	return exists, nil
}

// toDTO 实体转传输对象
func toDTO(category *model.Category) CategoryDTO {
	return CategoryDTO{
		ID:           category.ID,
		Name:         category.Name,
		Description:  category.Description,
		DisplayOrder: category.DisplayOrder,
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
}

// toDTOs 批量转换
func toDTOs(categories []*model.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, toDTO(c))
	}
	return dtos
}
