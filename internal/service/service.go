// Package service 聚合各业务服务
package service

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ashwinyue/faq-hub/internal/config"
	"github.com/ashwinyue/faq-hub/internal/repository"
	"github.com/ashwinyue/faq-hub/internal/service/category"
	"github.com/ashwinyue/faq-hub/internal/service/faq"
	"github.com/ashwinyue/faq-hub/internal/service/feedback"
)

// Services 服务集合
type Services struct {
	Category *category.Service
	FAQ      *faq.Service
	Feedback *feedback.Service

	// 配置
	Config *config.Config
}

// NewServices 创建所有服务
// redisClient 为 nil 时列表缓存关闭
func NewServices(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client) *Services {
	var listCache *faq.ListCache
	if redisClient != nil {
		listCache = faq.NewListCache(redisClient, time.Duration(cfg.Redis.CacheTTL)*time.Second)
	}

	return &Services{
		Category: category.NewService(repo.Category),
		FAQ:      faq.NewService(repo.FAQ, repo.Category, listCache),
		Feedback: feedback.NewService(repo.Feedback, repo.FAQ),
		Config:   cfg,
	}
}
