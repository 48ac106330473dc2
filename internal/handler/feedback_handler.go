package handler

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/faq-hub/internal/service"
	"github.com/ashwinyue/faq-hub/internal/service/feedback"
)

// FeedbackHandler 反馈处理器
type FeedbackHandler struct {
	svc *service.Services
}

// NewFeedbackHandler 创建反馈处理器
func NewFeedbackHandler(svc *service.Services) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// CreateOrUpdateFeedback 提交反馈，按 (faqId, 来源IP) 去重
func (h *FeedbackHandler) CreateOrUpdateFeedback(c *gin.Context) {
	var req feedback.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	dto, err := h.svc.Feedback.CreateOrUpdate(c.Request.Context(), &req, clientIP(c))
	if err != nil {
		errorResponse(c, err)
		return
	}
	created(c, dto)
}

// ListFeedbacksByFAQ 列出FAQ的全部反馈
func (h *FeedbackHandler) ListFeedbacksByFAQ(c *gin.Context) {
	faqID := c.Param("faqId")

	feedbacks, err := h.svc.Feedback.GetByFAQ(c.Request.Context(), faqID)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, feedbacks)
}

// GetFeedbackStats FAQ的反馈统计
func (h *FeedbackHandler) GetFeedbackStats(c *gin.Context) {
	faqID := c.Param("faqId")

	stats, err := h.svc.Feedback.GetStats(c.Request.Context(), faqID)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, stats)
}

// GetUserFeedback 当前调用方对FAQ的反馈
func (h *FeedbackHandler) GetUserFeedback(c *gin.Context) {
	faqID := c.Param("faqId")

	dto, err := h.svc.Feedback.GetUserFeedback(c.Request.Context(), faqID, clientIP(c))
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, dto)
}

// DeleteFeedback 删除反馈
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	id := c.Param("feedbackId")

	if err := h.svc.Feedback.Delete(c.Request.Context(), id); err != nil {
		errorResponse(c, err)
		return
	}
	noContent(c)
}

// DeleteFeedbacksByFAQ 删除FAQ的全部反馈
func (h *FeedbackHandler) DeleteFeedbacksByFAQ(c *gin.Context) {
	faqID := c.Param("faqId")

	if err := h.svc.Feedback.DeleteByFAQ(c.Request.Context(), faqID); err != nil {
		errorResponse(c, err)
		return
	}
	noContent(c)
}

// GetAdminFeedbackStats 管理端全局统计与排行榜
func (h *FeedbackHandler) GetAdminFeedbackStats(c *gin.Context) {
	stats, err := h.svc.Feedback.GetAdminStats(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, stats)
}

// clientIP 推导提交方IP
// 取 X-Forwarded-For 的第一个条目，没有则取对端地址
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
