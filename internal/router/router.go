package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashwinyue/faq-hub/internal/handler"
	"github.com/ashwinyue/faq-hub/internal/middleware"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API
	api := r.Group("/api")
	{
		// Category 分类
		categories := api.Group("/categories")
		{
			categories.GET("", h.Category.ListCategories)
			categories.GET("/with-faqs", h.Category.ListCategoriesWithFAQs)
			categories.GET("/search", h.Category.SearchCategories)
			categories.GET("/:id", h.Category.GetCategory)
			categories.GET("/:id/exists", h.Category.CategoryExists)
			categories.POST("", h.Category.CreateCategory)
			categories.PUT("/:id", h.Category.UpdateCategory)
			categories.DELETE("/:id", h.Category.DeleteCategory)
		}

		// FAQ 常见问题
		faqs := api.Group("/faqs")
		{
			faqs.GET("", h.FAQ.ListActiveFAQs)
			faqs.GET("/views", h.FAQ.GetViewStatsPage)
			faqs.GET("/search", h.FAQ.SearchFAQs)
			faqs.GET("/most-viewed", h.FAQ.ListMostViewedFAQs)
			faqs.GET("/view-stats", h.FAQ.ListMostViewedFAQs)
			faqs.GET("/recent", h.FAQ.ListRecentFAQs)
			faqs.GET("/category/:categoryId", h.FAQ.ListFAQsByCategory)
			faqs.GET("/:id", h.FAQ.GetFAQ)
			faqs.GET("/:id/view", h.FAQ.ViewFAQ)
			faqs.GET("/:id/related", h.FAQ.ListRelatedFAQs)
			faqs.POST("", h.FAQ.CreateFAQ)
			faqs.PUT("/:id", h.FAQ.UpdateFAQ)
			faqs.PATCH("/:id/status", h.FAQ.UpdateFAQStatus)
			faqs.DELETE("/:id", h.FAQ.DeleteFAQ)
		}

		// Feedback 反馈
		feedbacks := api.Group("/feedback")
		{
			feedbacks.POST("", h.Feedback.CreateOrUpdateFeedback)
			feedbacks.GET("/faq/:faqId", h.Feedback.ListFeedbacksByFAQ)
			feedbacks.GET("/faq/:faqId/stats", h.Feedback.GetFeedbackStats)
			feedbacks.GET("/faq/:faqId/user", h.Feedback.GetUserFeedback)
			feedbacks.DELETE("/faq/:faqId", h.Feedback.DeleteFeedbacksByFAQ)
			feedbacks.DELETE("/:feedbackId", h.Feedback.DeleteFeedback)
			feedbacks.GET("/admin/stats", h.Feedback.GetAdminFeedbackStats)
		}
	}

	return r
}
