package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func doCreateFollow(t *testing.T, h *FollowHandler, userID, followingID uint) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := newTestEcho()
	body := fmt.Sprintf(`{"following":%d}`, followingID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user_profile_follows", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	authenticate(c, userID)
	return rec, h.CreateFollow(c)
}

func TestCreateFollow(t *testing.T) {
	store := newFakeStore()
	h := NewFollowHandler(store, store)
	alice, _ := seedUserWithProfile(store, "a@example.com", "alice")
	bob, _ := seedUserWithProfile(store, "b@example.com", "bob")

	rec, err := doCreateFollow(t, h, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("CreateFollow: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if len(store.follows) != 1 {
		t.Fatalf("stored %d follows, want 1", len(store.follows))
	}
}

func TestCreateFollowRejectsSelf(t *testing.T) {
	store := newFakeStore()
	h := NewFollowHandler(store, store)
	alice, _ := seedUserWithProfile(store, "a@example.com", "alice")

	_, err := doCreateFollow(t, h, alice.ID, alice.ID)
	if code := httpStatus(t, err); code != http.StatusBadRequest {
		t.Fatalf("self-follow status = %d, want 400", code)
	}
	if len(store.follows) != 0 {
		t.Fatal("no follow may be stored for a self-follow attempt")
	}
}

func TestCreateFollowRejectsDuplicate(t *testing.T) {
	store := newFakeStore()
	h := NewFollowHandler(store, store)
	alice, _ := seedUserWithProfile(store, "a@example.com", "alice")
	bob, _ := seedUserWithProfile(store, "b@example.com", "bob")

	if _, err := doCreateFollow(t, h, alice.ID, bob.ID); err != nil {
		t.Fatalf("first follow: %v", err)
	}
	_, err := doCreateFollow(t, h, alice.ID, bob.ID)
	if code := httpStatus(t, err); code != http.StatusConflict {
		t.Fatalf("duplicate follow status = %d, want 409", code)
	}
	if len(store.follows) != 1 {
		t.Fatalf("stored %d follows, want 1", len(store.follows))
	}
}

func TestCreateFollowUnknownTarget(t *testing.T) {
	store := newFakeStore()
	h := NewFollowHandler(store, store)
	alice, _ := seedUserWithProfile(store, "a@example.com", "alice")

	_, err := doCreateFollow(t, h, alice.ID, 999)
	if code := httpStatus(t, err); code != http.StatusNotFound {
		t.Fatalf("unknown target status = %d, want 404", code)
	}
}
