package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/ashwinyue/faq-hub/internal/model"
	"github.com/ashwinyue/faq-hub/internal/repository"
)

// Store 内存数据存储，为服务层测试提供仓库实现
// 行为与 gorm 实现保持一致：缺失记录返回 gorm.ErrRecordNotFound，
// 列表按相同的排序规则返回
type Store struct {
	mu         sync.Mutex
	categories map[string]*model.Category
	faqs       map[string]*model.FAQ
	feedbacks  map[string]*model.Feedback
}

// NewStore 创建内存存储
func NewStore() *Store {
	return &Store{
		categories: make(map[string]*model.Category),
		faqs:       make(map[string]*model.FAQ),
		feedbacks:  make(map[string]*model.Feedback),
	}
}

// Categories 返回分类仓库视图
func (s *Store) Categories() repository.CategoryRepository {
	return &fakeCategoryRepo{store: s}
}

// FAQs 返回FAQ仓库视图
func (s *Store) FAQs() repository.FAQRepository {
	return &fakeFAQRepo{store: s}
}

// Feedbacks 返回反馈仓库视图
func (s *Store) Feedbacks() repository.FeedbackRepository {
	return &fakeFeedbackRepo{store: s}
}

// AddCategory 预置一条分类数据
func (s *Store) AddCategory(c *model.Category) *model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	stampCategory(c)
	s.categories[c.ID] = c
	return c
}

// AddFAQ 预置一条FAQ数据
func (s *Store) AddFAQ(f *model.FAQ) *model.FAQ {
	s.mu.Lock()
	defer s.mu.Unlock()
	stampFAQ(f)
	s.faqs[f.ID] = f
	return f
}

// AddFeedback 预置一条反馈数据
func (s *Store) AddFeedback(fb *model.Feedback) *model.Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now()
	}
	s.feedbacks[fb.ID] = fb
	return fb
}

func stampCategory(c *model.Category) {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
}

func stampFAQ(f *model.FAQ) {
	now := time.Now()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = now
	}
}

func foldContains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ========== 分类仓库 ==========

type fakeCategoryRepo struct {
	store *Store
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stampCategory(category)
	cp := *category
	r.store.categories[cp.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) GetByName(ctx context.Context, name string) (*model.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.categories {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCategoryRepo) ListAll(ctx context.Context) ([]*model.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return sortCategories(r.store.categories, func(*model.Category) bool { return true }), nil
}

func (r *fakeCategoryRepo) ListWithActiveFAQs(ctx context.Context) ([]*model.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	active := make(map[string]bool)
	for _, f := range r.store.faqs {
		if f.IsActive {
			active[f.CategoryID] = true
		}
	}
	return sortCategories(r.store.categories, func(c *model.Category) bool {
		return active[c.ID]
	}), nil
}

func (r *fakeCategoryRepo) Search(ctx context.Context, term string) ([]*model.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return sortCategories(r.store.categories, func(c *model.Category) bool {
		return foldContains(c.Name, term) || foldContains(c.Description, term)
	}), nil
}

func (r *fakeCategoryRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.categories[id]
	return ok, nil
}

func (r *fakeCategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.categories {
		if strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) CountFAQs(ctx context.Context, categoryID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, f := range r.store.faqs {
		if f.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *model.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *category
	cp.UpdatedAt = time.Now()
	r.store.categories[cp.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.categories, id)
	return nil
}

func sortCategories(m map[string]*model.Category, keep func(*model.Category) bool) []*model.Category {
	out := make([]*model.Category, 0, len(m))
	for _, c := range m {
		if keep(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ========== FAQ仓库 ==========

type fakeFAQRepo struct {
	store *Store
}

// attachCategory 模拟 Preload("Category")
func (r *fakeFAQRepo) attachCategory(f *model.FAQ) {
	if c, ok := r.store.categories[f.CategoryID]; ok {
		f.Category = *c
	}
}

func (r *fakeFAQRepo) Create(ctx context.Context, faq *model.FAQ) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stampFAQ(faq)
	cp := *faq
	r.store.faqs[cp.ID] = &cp
	return nil
}

func (r *fakeFAQRepo) GetByID(ctx context.Context, id string) (*model.FAQ, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f, ok := r.store.faqs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f
	r.attachCategory(&cp)
	return &cp, nil
}

func (r *fakeFAQRepo) ListActive(ctx context.Context) ([]*model.FAQ, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := r.filter(func(f *model.FAQ) bool { return f.IsActive })
	sortByCreatedDesc(out)
	return out, nil
}

func (r *fakeFAQRepo) ListActiveByCategory(ctx context.Context, categoryID string) ([]*model.FAQ, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := r.filter(func(f *model.FAQ) bool { return f.IsActive && f.CategoryID == categoryID })
	sortByCreatedDesc(out)
	return out, nil
}

func (r *fakeFAQRepo) SearchActive(ctx context.Context, term string) ([]*model.FAQ, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := r.filter(func(f *model.FAQ) bool {
		return f.IsActive && (foldContains(f.Question, term) || foldContains(f.Answer, term))
	})
	sortByCreatedDesc(out)
	return out, nil
}

func (r *fakeFAQRepo) SearchActiveByCategory(ctx context.Context, categoryID, term string) ([]*model.FAQ, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := r.filter(func(f *model.FAQ) bool {
		return f.IsActive && f.CategoryID == categoryID &&
			(foldContains(f.Question, term) || foldContains(f.Answer, term))
	})
	sortByCreatedDesc(out)
	return out, nil
}

func (r *fakeFAQRepo) MostViewed(ctx context.Context, limit int) ([]*model.FAQ, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := r.filter(func(f *model.FAQ) bool { return f.IsActive })
	sortByViewsDesc(out)
	return truncate(out, limit), nil
}

func (r *fakeFAQRepo) MostViewedPage(ctx context.Context, offset, limit int) ([]*model.FAQ, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := r.filter(func(f *model.FAQ) bool { return f.IsActive && f.ViewCount > 0 })
	sortByViewsDesc(out)
	total := int64(len(out))
	if offset >= len(out) {
		return []*model.FAQ{}, total, nil
	}
	out = out[offset:]
	return truncate(out, limit), total, nil
}

func (r *fakeFAQRepo) Recent(ctx context.Context, limit int) ([]*model.FAQ, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := r.filter(func(f *model.FAQ) bool { return f.IsActive })
	sortByCreatedDesc(out)
	return truncate(out, limit), nil
}

func (r *fakeFAQRepo) Related(ctx context.Context, categoryID, excludeID string, limit int) ([]*model.FAQ, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := r.filter(func(f *model.FAQ) bool {
		return f.IsActive && f.CategoryID == categoryID && f.ID != excludeID
	})
	sortByViewsDesc(out)
	return truncate(out, limit), nil
}

func (r *fakeFAQRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.faqs[id]
	return ok, nil
}

func (r *fakeFAQRepo) ExistsActiveByQuestion(ctx context.Context, question string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, f := range r.store.faqs {
		if f.IsActive && strings.EqualFold(f.Question, question) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFAQRepo) IncrementViewCount(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if f, ok := r.store.faqs[id]; ok {
		f.ViewCount++
	}
	return nil
}

func (r *fakeFAQRepo) UpdateActiveStatus(ctx context.Context, id string, isActive bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if f, ok := r.store.faqs[id]; ok {
		f.IsActive = isActive
	}
	return nil
}

func (r *fakeFAQRepo) Update(ctx context.Context, faq *model.FAQ) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *faq
	cp.UpdatedAt = time.Now()
	r.store.faqs[cp.ID] = &cp
	return nil
}

func (r *fakeFAQRepo) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.faqs, id)
	return nil
}

func (r *fakeFAQRepo) filter(keep func(*model.FAQ) bool) []*model.FAQ {
	out := make([]*model.FAQ, 0, len(r.store.faqs))
	for _, f := range r.store.faqs {
		if keep(f) {
			cp := *f
			r.attachCategory(&cp)
			out = append(out, &cp)
		}
	}
	return out
}

func sortByCreatedDesc(faqs []*model.FAQ) {
	sort.Slice(faqs, func(i, j int) bool {
		return faqs[i].CreatedAt.After(faqs[j].CreatedAt)
	})
}

func sortByViewsDesc(faqs []*model.FAQ) {
	sort.Slice(faqs, func(i, j int) bool {
		if faqs[i].ViewCount != faqs[j].ViewCount {
			return faqs[i].ViewCount > faqs[j].ViewCount
		}
		return faqs[i].CreatedAt.After(faqs[j].CreatedAt)
	})
}

func truncate(faqs []*model.FAQ, limit int) []*model.FAQ {
	if limit >= 0 && len(faqs) > limit {
		return faqs[:limit]
	}
	return faqs
}

// ========== 反馈仓库 ==========

type fakeFeedbackRepo struct {
	store *Store
}

func (r *fakeFeedbackRepo) Create(ctx context.Context, feedback *model.Feedback) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now()
	}
	cp := *feedback
	r.store.feedbacks[cp.ID] = &cp
	return nil
}

func (r *fakeFeedbackRepo) GetByID(ctx context.Context, id string) (*model.Feedback, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	fb, ok := r.store.feedbacks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *fb
	return &cp, nil
}

func (r *fakeFeedbackRepo) GetByFAQAndIP(ctx context.Context, faqID, userIP string) (*model.Feedback, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, fb := range r.store.feedbacks {
		if fb.FAQID == faqID && fb.UserIP == userIP {
			cp := *fb
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFeedbackRepo) ListByFAQ(ctx context.Context, faqID string) ([]*model.Feedback, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*model.Feedback, 0)
	for _, fb := range r.store.feedbacks {
		if fb.FAQID == faqID {
			cp := *fb
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeFeedbackRepo) CountByFAQ(ctx context.Context, faqID string) (int64, error) {
	return r.count(func(fb *model.Feedback) bool { return fb.FAQID == faqID })
}

func (r *fakeFeedbackRepo) CountByFAQAndType(ctx context.Context, faqID, feedbackType string) (int64, error) {
	return r.count(func(fb *model.Feedback) bool {
		return fb.FAQID == faqID && fb.Type == feedbackType
	})
}

func (r *fakeFeedbackRepo) CountAll(ctx context.Context) (int64, error) {
	return r.count(func(*model.Feedback) bool { return true })
}

func (r *fakeFeedbackRepo) CountByType(ctx context.Context, feedbackType string) (int64, error) {
	return r.count(func(fb *model.Feedback) bool { return fb.Type == feedbackType })
}

func (r *fakeFeedbackRepo) RankByType(ctx context.Context, feedbackType string, limit int) ([]repository.FAQFeedbackCount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	counts := make(map[string]int64)
	for _, fb := range r.store.feedbacks {
		if fb.Type == feedbackType {
			counts[fb.FAQID]++
		}
	}
	out := make([]repository.FAQFeedbackCount, 0, len(counts))
	for faqID, count := range counts {
		question := ""
		if f, ok := r.store.faqs[faqID]; ok {
			question = f.Question
		}
		out = append(out, repository.FAQFeedbackCount{FAQID: faqID, Question: question, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].FAQID < out[j].FAQID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeFeedbackRepo) UpdateType(ctx context.Context, id, feedbackType string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if fb, ok := r.store.feedbacks[id]; ok {
		fb.Type = feedbackType
	}
	return nil
}

func (r *fakeFeedbackRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.feedbacks[id]
	return ok, nil
}

func (r *fakeFeedbackRepo) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.feedbacks, id)
	return nil
}

func (r *fakeFeedbackRepo) DeleteByFAQ(ctx context.Context, faqID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, fb := range r.store.feedbacks {
		if fb.FAQID == faqID {
			delete(r.store.feedbacks, id)
		}
	}
	return nil
}

func (r *fakeFeedbackRepo) count(keep func(*model.Feedback) bool) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, fb := range r.store.feedbacks {
		if keep(fb) {
			count++
		}
	}
	return count, nil
}

// 确保内存实现满足仓库接口
var (
	_ repository.CategoryRepository = (*fakeCategoryRepo)(nil)
	_ repository.FAQRepository      = (*fakeFAQRepo)(nil)
	_ repository.FeedbackRepository = (*fakeFeedbackRepo)(nil)
)
