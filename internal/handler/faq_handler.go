package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/faq-hub/internal/service"
	"github.com/ashwinyue/faq-hub/internal/service/faq"
)

// FAQHandler FAQ处理器
type FAQHandler struct {
	svc *service.Services
}

// NewFAQHandler 创建FAQ处理器
func NewFAQHandler(svc *service.Services) *FAQHandler {
	return &FAQHandler{svc: svc}
}

// ListActiveFAQs 列出所有活跃FAQ
func (h *FAQHandler) ListActiveFAQs(c *gin.Context) {
	faqs, err := h.svc.FAQ.FindAllActive(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, faqs)
}

// GetViewStatsPage 分页列出有浏览量的FAQ
func (h *FAQHandler) GetViewStatsPage(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	resp, err := h.svc.FAQ.FindMostViewedPaged(c.Request.Context(), page, size)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, resp)
}

// GetFAQ 获取FAQ
func (h *FAQHandler) GetFAQ(c *gin.Context) {
	id := c.Param("id")

	dto, err := h.svc.FAQ.FindByID(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, dto)
}

// ViewFAQ 获取FAQ并增加浏览量
func (h *FAQHandler) ViewFAQ(c *gin.Context) {
	id := c.Param("id")

	dto, err := h.svc.FAQ.FindByIDAndIncrementView(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, dto)
}

// ListFAQsByCategory 列出分类下的活跃FAQ
func (h *FAQHandler) ListFAQsByCategory(c *gin.Context) {
	categoryID := c.Param("categoryId")

	faqs, err := h.svc.FAQ.FindByCategory(c.Request.Context(), categoryID)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, faqs)
}

// SearchFAQs 搜索活跃FAQ，可选按分类过滤
func (h *FAQHandler) SearchFAQs(c *gin.Context) {
	term := c.Query("q")
	categoryID := c.Query("categoryId")

	var (
		faqs []faq.FAQDTO
		err  error
	)
	if categoryID != "" {
		faqs, err = h.svc.FAQ.SearchByCategory(c.Request.Context(), categoryID, term)
	} else {
		faqs, err = h.svc.FAQ.Search(c.Request.Context(), term)
	}
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, faqs)
}

// ListMostViewedFAQs 列出浏览量最高的FAQ
func (h *FAQHandler) ListMostViewedFAQs(c *gin.Context) {
	limit := getLimit(c, 10)

	faqs, err := h.svc.FAQ.FindMostViewed(c.Request.Context(), limit)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, faqs)
}

// ListRecentFAQs 列出最新的FAQ
func (h *FAQHandler) ListRecentFAQs(c *gin.Context) {
	limit := getLimit(c, 10)

	faqs, err := h.svc.FAQ.FindRecent(c.Request.Context(), limit)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, faqs)
}

// ListRelatedFAQs 列出相关FAQ
func (h *FAQHandler) ListRelatedFAQs(c *gin.Context) {
	id := c.Param("id")
	limit := getLimit(c, 5)

	summaries, err := h.svc.FAQ.FindRelated(c.Request.Context(), id, limit)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, summaries)
}

// CreateFAQ 创建FAQ
func (h *FAQHandler) CreateFAQ(c *gin.Context) {
	var req faq.FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	dto, err := h.svc.FAQ.Create(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	created(c, dto)
}

// UpdateFAQ 更新FAQ
func (h *FAQHandler) UpdateFAQ(c *gin.Context) {
	id := c.Param("id")
	var req faq.FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	dto, err := h.svc.FAQ.Update(c.Request.Context(), id, &req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, dto)
}

// StatusRequest 启用状态更新请求
type StatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UpdateFAQStatus 启用/停用FAQ
func (h *FAQHandler) UpdateFAQStatus(c *gin.Context) {
	id := c.Param("id")
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.svc.FAQ.UpdateActiveStatus(c.Request.Context(), id, *req.IsActive); err != nil {
		errorResponse(c, err)
		return
	}
	success(c, gin.H{"id": id, "isActive": *req.IsActive})
}

// DeleteFAQ 删除FAQ
func (h *FAQHandler) DeleteFAQ(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.FAQ.Delete(c.Request.Context(), id); err != nil {
		errorResponse(c, err)
		return
	}
	noContent(c)
}

// getLimit 获取截断参数，越界时退回默认值
func getLimit(c *gin.Context, fallback int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(fallback)))
	if err != nil || limit <= 0 || limit > 100 {
		return fallback
	}
	return limit
}
