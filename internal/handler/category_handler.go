package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/faq-hub/internal/service"
	"github.com/ashwinyue/faq-hub/internal/service/category"
)

// CategoryHandler 分类处理器
type CategoryHandler struct {
	svc *service.Services
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(svc *service.Services) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// ListCategories 列出所有分类
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.Category.FindAll(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, categories)
}

// GetCategory 获取分类
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id := c.Param("id")

	dto, err := h.svc.Category.FindByID(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, dto)
}

// ListCategoriesWithFAQs 列出含活跃FAQ的分类
func (h *CategoryHandler) ListCategoriesWithFAQs(c *gin.Context) {
	categories, err := h.svc.Category.FindWithActiveFAQs(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, categories)
}

// SearchCategories 搜索分类，空关键词退化为全量列表
func (h *CategoryHandler) SearchCategories(c *gin.Context) {
	term := c.Query("q")

	categories, err := h.svc.Category.Search(c.Request.Context(), term)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, categories)
}

// CreateCategory 创建分类
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req category.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	dto, err := h.svc.Category.Create(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	created(c, dto)
}

// UpdateCategory 更新分类
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id := c.Param("id")
	var req category.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	dto, err := h.svc.Category.Update(c.Request.Context(), id, &req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, dto)
}

// DeleteCategory 删除分类
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Category.Delete(c.Request.Context(), id); err != nil {
		errorResponse(c, err)
		return
	}
	noContent(c)
}

// CategoryExists 判断分类是否存在
func (h *CategoryHandler) CategoryExists(c *gin.Context) {
	id := c.Param("id")

	exists, err := h.svc.Category.ExistsByID(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, gin.H{"exists": exists})
}
