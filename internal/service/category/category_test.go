package category_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ashwinyue/faq-hub/internal/model"
	"github.com/ashwinyue/faq-hub/internal/service/category"
	"github.com/ashwinyue/faq-hub/internal/testutil"
)

func newService(store *testutil.Store) *category.Service {
	return category.NewService(store.Categories())
}

// ========== 查询 ==========

func TestFindAllOrderedByName(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c2", Name: "Billing"})
	store.AddCategory(&model.Category{ID: "c1", Name: "Account"})
	store.AddCategory(&model.Category{ID: "c3", Name: "Shipping"})

	svc := newService(store)
	got, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(got))
	}
	want := []string{"Account", "Billing", "Shipping"}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, got[i].Name)
		}
	}
}

func TestFindByIDNotFound(t *testing.T) {
	svc := newService(testutil.NewStore())
	_, err := svc.FindByID(context.Background(), "missing")
	if !errors.Is(err, category.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestFindWithActiveFAQsFiltersEmptyCategories(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "Account"})
	store.AddCategory(&model.Category{ID: "c2", Name: "Billing"})
	store.AddCategory(&model.Category{ID: "c3", Name: "Shipping"})
	store.AddFAQ(&model.FAQ{ID: "f1", Question: "q1", CategoryID: "c1", IsActive: true})
	store.AddFAQ(&model.FAQ{ID: "f2", Question: "q2", CategoryID: "c2", IsActive: false})

	svc := newService(store)
	got, err := svc.FindWithActiveFAQs(context.Background())
	if err != nil {
		t.Fatalf("FindWithActiveFAQs failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c1" {
		t.Fatalf("expected only category c1, got %+v", got)
	}
}

func TestSearchBlankTermReturnsAll(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "Account"})
	store.AddCategory(&model.Category{ID: "c2", Name: "Billing"})

	svc := newService(store)
	got, err := svc.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("blank search should return all categories, got %d", len(got))
	}
}

func TestSearchMatchesNameAndDescription(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "Account", Description: "login and profile"})
	store.AddCategory(&model.Category{ID: "c2", Name: "Billing", Description: "invoices"})

	svc := newService(store)

	got, err := svc.Search(context.Background(), "LOGIN")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c1" {
		t.Fatalf("case-insensitive description match failed, got %+v", got)
	}
}

// ========== 写入 ==========

func TestCreateRejectsDuplicateNameCaseInsensitive(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "Account"})

	svc := newService(store)
	_, err := svc.Create(context.Background(), &category.CategoryRequest{Name: "ACCOUNT"})
	if !errors.Is(err, category.ErrDuplicateCategoryName) {
		t.Fatalf("expected ErrDuplicateCategoryName, got %v", err)
	}
}

func TestCreateAssignsID(t *testing.T) {
	svc := newService(testutil.NewStore())
	got, err := svc.Create(context.Background(), &category.CategoryRequest{
		Name:         "Account",
		Description:  "login and profile",
		DisplayOrder: 3,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got.ID == "" {
		t.Error("expected generated ID")
	}
	if got.DisplayOrder != 3 {
		t.Errorf("expected displayOrder 3, got %d", got.DisplayOrder)
	}
}

func TestUpdateKeepsOwnName(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "Account", DisplayOrder: 7})

	svc := newService(store)
	got, err := svc.Update(context.Background(), "c1", &category.CategoryRequest{
		Name:        "Account",
		Description: "updated",
	})
	if err != nil {
		t.Fatalf("Update with unchanged name failed: %v", err)
	}
	if got.Description != "updated" {
		t.Errorf("expected updated description, got %q", got.Description)
	}
	// 更新不触碰排序字段
	if got.DisplayOrder != 7 {
		t.Errorf("displayOrder should survive update, got %d", got.DisplayOrder)
	}
}

func TestUpdateRejectsNameOfOtherCategory(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "Account"})
	store.AddCategory(&model.Category{ID: "c2", Name: "Billing"})

	svc := newService(store)
	_, err := svc.Update(context.Background(), "c2", &category.CategoryRequest{Name: "account"})
	if !errors.Is(err, category.ErrDuplicateCategoryName) {
		t.Fatalf("expected ErrDuplicateCategoryName, got %v", err)
	}
}

func TestDeleteRejectedWhileFAQsAttached(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "Account"})
	store.AddFAQ(&model.FAQ{ID: "f1", Question: "q", CategoryID: "c1", IsActive: false})

	svc := newService(store)
	err := svc.Delete(context.Background(), "c1")
	if !errors.Is(err, category.ErrCategoryHasFAQs) {
		t.Fatalf("expected ErrCategoryHasFAQs, got %v", err)
	}

	// 分类仍然存在
	if _, err := svc.FindByID(context.Background(), "c1"); err != nil {
		t.Fatalf("category should still exist: %v", err)
	}
}

func TestDeleteEmptyCategory(t *testing.T) {
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "Account", CreatedAt: time.Now()})

	svc := newService(store)
	if err := svc.Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := svc.FindByID(context.Background(), "c1")
	if !errors.Is(err, category.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound after delete, got %v", err)
	}
}

func TestDeleteMissingCategory(t *testing.T) {
	svc := newService(testutil.NewStore())
	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, category.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestExistsByID(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	store := testutil.NewStore()
	store.AddCategory(&model.Category{ID: "c1", Name: "Account"})

	svc := newService(store)
	exists, err := svc.ExistsByID(context.Background(), "c1")
	assert.NoError(err, "ExistsByID c1")
	assert.True(exists, "c1 should exist")

	exists, err = svc.ExistsByID(context.Background(), "missing")
	assert.NoError(err, "ExistsByID missing")
	assert.False(exists, "missing should not exist")
}
