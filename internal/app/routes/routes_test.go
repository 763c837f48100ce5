package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/controllers"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/services"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/middleware"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/apperrors"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/auth"
)

// memItemStore backs the real item service with an in-memory map so
// item routes can be exercised end to end.
type memItemStore struct {
	items map[string]*models.Item
}

func (m *memItemStore) List(_ context.Context, all bool) ([]*models.Item, error) {
	out := make([]*models.Item, 0, len(m.items))
	for _, it := range m.items {
		if !all && !it.IsVerified {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (m *memItemStore) FindByID(_ context.Context, id string) (*models.Item, error) {
	if it, ok := m.items[id]; ok {
		return it, nil
	}
	return nil, apperrors.ErrItemNotFound
}

func (m *memItemStore) Insert(_ context.Context, item *models.Item) (*models.Item, error) {
	stored := *item
	m.items[stored.ID] = &stored
	return &stored, nil
}

func (m *memItemStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Item, error) {
	it, err := m.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := fields["status"].(string); ok {
		it.Status = models.ItemStatus(v)
	}
	if v, ok := fields["title"].(string); ok {
		it.Title = v
	}
	if v, ok := fields["isVerified"].(bool); ok {
		it.IsVerified = v
	}
	return it, nil
}

func (m *memItemStore) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return apperrors.ErrItemNotFound
	}
	delete(m.items, id)
	return nil
}

// stubAuthService and stubMessageService satisfy the controller
// constructors; their routes are not under test here.
type stubAuthService struct{}

func (stubAuthService) Signup(context.Context, string, string) (*models.User, string, error) {
	return nil, "", apperrors.ErrValidationFailed
}
func (stubAuthService) Login(context.Context, string) (*models.User, string, error) {
	return nil, "", apperrors.ErrUserNotFound
}
func (stubAuthService) UpdateProfile(context.Context, string, map[string]interface{}) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}
func (stubAuthService) ListUsers(context.Context) ([]*models.User, error) {
	return nil, nil
}

type stubMessageService struct{}

func (stubMessageService) ListForUser(context.Context, string) ([]*models.Message, error) {
	return nil, nil
}
func (stubMessageService) ListAll(context.Context) ([]*models.Message, error) {
	return nil, nil
}
func (stubMessageService) Send(_ context.Context, msg *models.Message) (*models.Message, error) {
	return msg, nil
}

type routerFixture struct {
	router *gin.Engine
	store  *memItemStore
	jwt    *auth.JWTService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "route-test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "aau-found-it",
	})

	store := &memItemStore{items: map[string]*models.Item{
		"item-1": {
			ID:         "item-1",
			Title:      "Black backpack",
			Status:     models.StatusLost,
			Category:   models.CategoryOthers,
			PosterID:   "poster-1",
			PosterName: "Ada",
			IsVerified: true,
		},
	}}

	lgr := zerolog.Nop()
	limiter := middleware.NewLimiterStore(60, 10, time.Minute)
	t.Cleanup(limiter.Stop)

	router := gin.New()
	SetupRouter(router,
		controllers.NewAuthController(stubAuthService{}, lgr),
		controllers.NewItemController(services.NewItemService(store), lgr),
		controllers.NewMessageController(stubMessageService{}, lgr),
		controllers.NewUserController(stubAuthService{}, lgr),
		middleware.NewAuthMiddleware(jwtSvc),
		limiter,
	)

	return &routerFixture{router: router, store: store, jwt: jwtSvc}
}

func (f *routerFixture) put(t *testing.T, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, "/api/items", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func memberToken(t *testing.T, jwtSvc *auth.JWTService, id string) string {
	t.Helper()
	token, err := jwtSvc.GenerateToken(&models.User{
		ID:    id,
		Name:  "Member",
		Email: id + "@aau.edu.ng",
	})
	require.NoError(t, err)
	return token
}

func TestPosterCanReclaimViaPut(t *testing.T) {
	f := newRouterFixture(t)
	token := memberToken(t, f.jwt, "poster-1")

	w := f.put(t, token, `{"itemId":"item-1","status":"RECLAIMED"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusReclaimed, f.store.items["item-1"].Status)
}

func TestStrangerCannotReclaim(t *testing.T) {
	f := newRouterFixture(t)
	token := memberToken(t, f.jwt, "someone-else")

	w := f.put(t, token, `{"itemId":"item-1","status":"RECLAIMED"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, models.StatusLost, f.store.items["item-1"].Status)
}

func TestMemberCannotEditOtherFields(t *testing.T) {
	f := newRouterFixture(t)
	token := memberToken(t, f.jwt, "poster-1")

	w := f.put(t, token, `{"itemId":"item-1","title":"Red backpack"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Black backpack", f.store.items["item-1"].Title)
}

func TestAnonymousPutIsRejected(t *testing.T) {
	f := newRouterFixture(t)

	w := f.put(t, "", `{"itemId":"item-1","status":"RECLAIMED"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminCanEditAnyField(t *testing.T) {
	f := newRouterFixture(t)
	token, err := f.jwt.GenerateToken(&models.User{
		ID:    models.AdminID,
		Name:  models.AdminName,
		Email: models.AdminEmail,
	})
	require.NoError(t, err)

	w := f.put(t, token, `{"itemId":"item-1","title":"Red backpack","status":"FOUND"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Red backpack", f.store.items["item-1"].Title)
	assert.Equal(t, models.StatusFound, f.store.items["item-1"].Status)
}
