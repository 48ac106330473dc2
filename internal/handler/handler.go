// Package handler HTTP适配层
package handler

import (
	"github.com/ashwinyue/faq-hub/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Category *CategoryHandler
	FAQ      *FAQHandler
	Feedback *FeedbackHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Category: NewCategoryHandler(svc),
		FAQ:      NewFAQHandler(svc),
		Feedback: NewFeedbackHandler(svc),
	}
}
