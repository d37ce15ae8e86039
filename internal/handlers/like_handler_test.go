package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/olekh/social-media-api/internal/models"
)

func doCreateLike(t *testing.T, h *LikeHandler, userID, postID uint) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := newTestEcho()
	body := fmt.Sprintf(`{"post":%d}`, postID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/likes", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	authenticate(c, userID)
	return rec, h.CreateLike(c)
}

func TestCreateLikeRejectsDuplicate(t *testing.T) {
	store := newFakeStore()
	h := NewLikeHandler(store, store)
	alice, profile := seedUserWithProfile(store, "a@example.com", "alice")
	bob, _ := seedUserWithProfile(store, "b@example.com", "bob")

	post := &models.Post{ProfileID: profile.ID, CreatedByID: alice.ID, Content: "p", IsVisible: true}
	store.CreatePost(nil, post)

	rec, err := doCreateLike(t, h, bob.ID, post.ID)
	if err != nil {
		t.Fatalf("first like: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	_, err = doCreateLike(t, h, bob.ID, post.ID)
	if code := httpStatus(t, err); code != http.StatusConflict {
		t.Fatalf("duplicate like status = %d, want 409", code)
	}
	if len(store.likes) != 1 {
		t.Fatalf("stored %d likes, want 1", len(store.likes))
	}
}

func TestCreateLikeUnknownPost(t *testing.T) {
	store := newFakeStore()
	h := NewLikeHandler(store, store)
	alice, _ := seedUserWithProfile(store, "a@example.com", "alice")

	_, err := doCreateLike(t, h, alice.ID, 42)
	if code := httpStatus(t, err); code != http.StatusNotFound {
		t.Fatalf("unknown post status = %d, want 404", code)
	}
}
