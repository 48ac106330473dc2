package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashwinyue/faq-hub/internal/handler"
	"github.com/ashwinyue/faq-hub/internal/model"
	"github.com/ashwinyue/faq-hub/internal/router"
	"github.com/ashwinyue/faq-hub/internal/service"
	"github.com/ashwinyue/faq-hub/internal/service/category"
	"github.com/ashwinyue/faq-hub/internal/service/faq"
	"github.com/ashwinyue/faq-hub/internal/service/feedback"
	"github.com/ashwinyue/faq-hub/internal/testutil"
)

func newTestRouter(store *testutil.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svcs := &service.Services{
		Category: category.NewService(store.Categories()),
		FAQ:      faq.NewService(store.FAQs(), store.Categories(), nil),
		Feedback: feedback.NewService(store.Feedbacks(), store.FAQs()),
	}
	return router.SetupRouter(handler.NewHandlers(svcs), zap.NewNop())
}

func doJSON(r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

// ========== 基础 ==========

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(testutil.NewStore())
	w := doJSON(r, http.MethodGet, "/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestGetMissingFAQReturnsEmpty404(t *testing.T) {
	r := newTestRouter(testutil.NewStore())
	w := doJSON(r, http.MethodGet, "/api/faqs/missing", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("not-found body must be empty, got %q", w.Body.String())
	}
}

// ========== 分类 ==========

func TestCreateCategoryReturns201(t *testing.T) {
	r := newTestRouter(testutil.NewStore())
	w := doJSON(r, http.MethodPost, "/api/categories", map[string]interface{}{
		"name":        "Account",
		"description": "login and profile",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var dto category.CategoryDTO
	decode(t, w, &dto)
	if dto.ID == "" || dto.Name != "Account" {
		t.Fatalf("unexpected body: %+v", dto)
	}
}

func TestCreateDuplicateCategoryReturnsEnvelope(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "Account"})

	r := newTestRouter(store)
	w := doJSON(r, http.MethodPost, "/api/categories", map[string]interface{}{"name": "account"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var body handler.ErrorBody
	decode(t, w, &body)
	if body.Status != http.StatusBadRequest || body.Path != "/api/categories" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
	if body.Message == "" || body.Timestamp.IsZero() {
		t.Fatalf("envelope missing message or timestamp: %+v", body)
	}
}

func TestCreateCategoryValidation(t *testing.T) {
	r := newTestRouter(testutil.NewStore())
	w := doJSON(r, http.MethodPost, "/api/categories", map[string]interface{}{"name": "A"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var body handler.ErrorBody
	decode(t, w, &body)
	if body.Message != "validation failed" {
		t.Fatalf("expected validation envelope, got %+v", body)
	}
	if _, ok := body.ValidationErrors["name"]; !ok {
		t.Fatalf("expected error keyed by json field name, got %v", body.ValidationErrors)
	}
}

func TestDeleteCategoryWithFAQsReturns400(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "Account"})
	store.AddFAQ(&model.FAQ{ID: "f1", Question: "q", CategoryID: "c1", IsActive: true})

	r := newTestRouter(store)
	w := doJSON(r, http.MethodDelete, "/api/categories/c1", nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCategoryExists(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "Account"})

	r := newTestRouter(store)
	w := doJSON(r, http.MethodGet, "/api/categories/c1/exists", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]bool
	decode(t, w, &body)
	if !body["exists"] {
		t.Fatalf("expected exists=true, got %v", body)
	}
}

// ========== FAQ ==========

func TestViewEndpointIncrements(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "General"})
	store.AddFAQ(&model.FAQ{ID: "f1", Question: "q", CategoryID: "c1", IsActive: true, ViewCount: 1})

	r := newTestRouter(store)
	w := doJSON(r, http.MethodGet, "/api/faqs/f1/view", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var dto faq.FAQDTO
	decode(t, w, &dto)
	if dto.ViewCount != 2 {
		t.Fatalf("expected viewCount 2, got %d", dto.ViewCount)
	}
}

func TestViewStatsPageEnvelope(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "General"})
	for i, id := range []string{"f1", "f2", "f3"} {
		store.AddFAQ(&model.FAQ{ID: id, Question: id, CategoryID: "c1", IsActive: true, ViewCount: 10 - i})
	}

	r := newTestRouter(store)
	w := doJSON(r, http.MethodGet, "/api/faqs/views?page=0&size=2", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body faq.ViewStatsResponse
	decode(t, w, &body)
	if body.TotalElements != 3 || body.TotalPages != 2 || !body.HasNext || body.HasPrevious {
		t.Fatalf("unexpected page envelope: %+v", body)
	}
	if len(body.Items) != 2 || body.Items[0].ID != "f1" {
		t.Fatalf("unexpected page items: %+v", body.Items)
	}
}

func TestViewStatsAliasListsMostViewed(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "General"})
	store.AddFAQ(&model.FAQ{ID: "f1", Question: "q1", CategoryID: "c1", IsActive: true, ViewCount: 9})
	store.AddFAQ(&model.FAQ{ID: "f2", Question: "q2", CategoryID: "c1", IsActive: true, ViewCount: 3})

	r := newTestRouter(store)
	w := doJSON(r, http.MethodGet, "/api/faqs/view-stats", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []faq.FAQDTO
	decode(t, w, &body)
	if len(body) != 2 || body[0].ID != "f1" {
		t.Fatalf("unexpected ranking: %+v", body)
	}
}

func TestCreateFAQValidationFieldNames(t *testing.T) {
	r := newTestRouter(testutil.NewStore())
	w := doJSON(r, http.MethodPost, "/api/faqs", map[string]interface{}{
		"question": "hi",
		"answer":   "short",
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var body handler.ErrorBody
	decode(t, w, &body)
	for _, field := range []string{"question", "answer", "categoryId"} {
		if _, ok := body.ValidationErrors[field]; !ok {
			t.Errorf("expected validation error for %q, got %v", field, body.ValidationErrors)
		}
	}
}

func TestUpdateFAQStatus(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "General"})
	store.AddFAQ(&model.FAQ{ID: "f1", Question: "q", CategoryID: "c1", IsActive: true})

	r := newTestRouter(store)
	w := doJSON(r, http.MethodPatch, "/api/faqs/f1/status", map[string]interface{}{"isActive": false}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// 停用后浏览入口拒绝访问
	w = doJSON(r, http.MethodGet, "/api/faqs/f1/view", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("inactive FAQ view should 404, got %d", w.Code)
	}
}

func TestDeleteFAQReturns204(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "General"})
	store.AddFAQ(&model.FAQ{ID: "f1", Question: "q", CategoryID: "c1", IsActive: true})

	r := newTestRouter(store)
	w := doJSON(r, http.MethodDelete, "/api/faqs/f1", nil, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	w = doJSON(r, http.MethodDelete, "/api/faqs/f1", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete should 404, got %d", w.Code)
	}
}

// ========== 反馈 ==========

func TestFeedbackDedupedByForwardedIP(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "General"})
	store.AddFAQ(&model.FAQ{ID: "f1", Question: "q", CategoryID: "c1", IsActive: true})

	r := newTestRouter(store)
	submit := func(ip, kind string) *httptest.ResponseRecorder {
		return doJSON(r, http.MethodPost, "/api/feedback", map[string]interface{}{
			"faqId":        "f1",
			"feedbackType": kind,
		}, map[string]string{"X-Forwarded-For": ip + ", 10.0.0.254"})
	}

	// 同一转发IP重复提交：覆盖类型，两次都是 201
	if w := submit("203.0.113.7", "POSITIVE"); w.Code != http.StatusCreated {
		t.Fatalf("first submit expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if w := submit("203.0.113.7", "NEGATIVE"); w.Code != http.StatusCreated {
		t.Fatalf("resubmit expected 201, got %d", w.Code)
	}
	// 不同转发IP是另一条记录
	if w := submit("203.0.113.8", "POSITIVE"); w.Code != http.StatusCreated {
		t.Fatalf("second IP expected 201, got %d", w.Code)
	}

	w := doJSON(r, http.MethodGet, "/api/feedback/faq/f1/stats", nil, nil)
	var stats map[string]int64
	decode(t, w, &stats)
	if stats["total"] != 2 || stats["positive"] != 1 || stats["negative"] != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}
}

func TestFeedbackRejectsUnknownType(t *testing.T) {
	r := newTestRouter(testutil.NewStore())
	w := doJSON(r, http.MethodPost, "/api/feedback", map[string]interface{}{
		"faqId":        "f1",
		"feedbackType": "MEH",
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var body handler.ErrorBody
	decode(t, w, &body)
	if _, ok := body.ValidationErrors["feedbackType"]; !ok {
		t.Fatalf("expected feedbackType validation error, got %v", body.ValidationErrors)
	}
}

func TestFeedbackMissingFAQReturns404(t *testing.T) {
	r := newTestRouter(testutil.NewStore())
	w := doJSON(r, http.MethodPost, "/api/feedback", map[string]interface{}{
		"faqId":        "missing",
		"feedbackType": "POSITIVE",
	}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAdminFeedbackStats(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "General"})
	store.AddFAQ(&model.FAQ{ID: "f1", Question: "q1", CategoryID: "c1", IsActive: true})
	store.AddFeedback(&model.Feedback{ID: "fb1", FAQID: "f1", Type: model.FeedbackPositive, UserIP: "10.0.0.1"})
	store.AddFeedback(&model.Feedback{ID: "fb2", FAQID: "f1", Type: model.FeedbackNegative, UserIP: "10.0.0.2"})

	r := newTestRouter(store)
	w := doJSON(r, http.MethodGet, "/api/feedback/admin/stats", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var stats feedback.AdminStats
	decode(t, w, &stats)
	if stats.TotalFeedbacks != 2 || stats.TotalPositive != 1 || stats.TotalNegative != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(stats.MostLiked) != 1 || stats.MostLiked[0].FAQID != "f1" {
		t.Fatalf("unexpected most liked: %+v", stats.MostLiked)
	}
}
