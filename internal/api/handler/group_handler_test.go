package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/groupcast/groupcast-api/internal/api/middleware"
	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

type stubGroupService struct {
	listFn   func(ctx context.Context, userID int64) ([]domain.Group, error)
	createFn func(ctx context.Context, userID int64, in ports.CreateGroupInput) (*domain.Group, error)
	updateFn func(ctx context.Context, userID, id int64, in ports.UpdateGroupInput) error
	deleteFn func(ctx context.Context, userID, id int64) error
}

func (s *stubGroupService) List(ctx context.Context, userID int64) ([]domain.Group, error) {
	return s.listFn(ctx, userID)
}

func (s *stubGroupService) Create(ctx context.Context, userID int64, in ports.CreateGroupInput) (*domain.Group, error) {
	return s.createFn(ctx, userID, in)
}

func (s *stubGroupService) Update(ctx context.Context, userID, id int64, in ports.UpdateGroupInput) error {
	return s.updateFn(ctx, userID, id, in)
}

func (s *stubGroupService) Delete(ctx context.Context, userID, id int64) error {
	return s.deleteFn(ctx, userID, id)
}

func newGroupContext(t *testing.T, method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		middleware.SetIdentity(c, domain.Identity{User: user})
	}
	return c, rec
}

func TestGroupHandler_List(t *testing.T) {
	alice := &domain.User{ID: 5}
	stub := &stubGroupService{
		listFn: func(ctx context.Context, userID int64) ([]domain.Group, error) {
			if userID != 5 {
				t.Fatalf("userID = %d, want 5", userID)
			}
			return []domain.Group{{ID: 1, UserID: 5, GroupName: "Gardeners"}}, nil
		},
	}
	h := NewGroupHandler(stub)

	c, rec := newGroupContext(t, http.MethodGet, "/v1/groups", "", alice)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Gardeners") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGroupHandler_List_NoIdentity(t *testing.T) {
	h := NewGroupHandler(&stubGroupService{})

	c, _ := newGroupContext(t, http.MethodGet, "/v1/groups", "", nil)
	err := h.List(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}

func TestGroupHandler_Create(t *testing.T) {
	alice := &domain.User{ID: 5}
	stub := &stubGroupService{
		createFn: func(ctx context.Context, userID int64, in ports.CreateGroupInput) (*domain.Group, error) {
			if in.GroupID != "fb-123" || in.GroupName != "Gardeners" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Group{ID: 9, UserID: userID, GroupID: in.GroupID, GroupName: in.GroupName}, nil
		},
	}
	h := NewGroupHandler(stub)

	body := `{"group_id":"fb-123","group_name":"Gardeners"}`
	c, rec := newGroupContext(t, http.MethodPost, "/v1/groups", body, alice)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestGroupHandler_Update_Foreign(t *testing.T) {
	alice := &domain.User{ID: 5}
	stub := &stubGroupService{
		updateFn: func(ctx context.Context, userID, id int64, in ports.UpdateGroupInput) error {
			return domain.ErrForbidden
		},
	}
	h := NewGroupHandler(stub)

	c, _ := newGroupContext(t, http.MethodPatch, "/v1/groups/3", `{"group_name":"Taken"}`, alice)
	c.SetParamNames("id")
	c.SetParamValues("3")

	err := h.Update(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestGroupHandler_Update_BadID(t *testing.T) {
	alice := &domain.User{ID: 5}
	h := NewGroupHandler(&stubGroupService{})

	c, _ := newGroupContext(t, http.MethodPatch, "/v1/groups/abc", `{"group_name":"X"}`, alice)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.Update(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("err = %v, want 404", err)
	}
}

func TestGroupHandler_Delete(t *testing.T) {
	alice := &domain.User{ID: 5}
	var deleted int64
	stub := &stubGroupService{
		deleteFn: func(ctx context.Context, userID, id int64) error {
			deleted = id
			return nil
		},
	}
	h := NewGroupHandler(stub)

	c, rec := newGroupContext(t, http.MethodDelete, "/v1/groups/3", "", alice)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != 3 {
		t.Errorf("deleted id = %d, want 3", deleted)
	}
}
