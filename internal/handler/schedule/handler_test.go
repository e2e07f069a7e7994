package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmiyata/schedule-api/internal/model"
	slotService "github.com/hmiyata/schedule-api/internal/service/slot"
	staffService "github.com/hmiyata/schedule-api/internal/service/staff"
	"github.com/hmiyata/schedule-api/internal/viewcache"
	apperrors "github.com/hmiyata/schedule-api/pkg/errors"
)

type fakeStaffRepo struct {
	staff   []*model.Staff
	listErr error
}

func (f *fakeStaffRepo) Create(ctx context.Context, staff *model.Staff, passwordHash string) error {
	return nil
}

func (f *fakeStaffRepo) Get(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	return nil, apperrors.NotFound("staff member", nil)
}

func (f *fakeStaffRepo) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	return nil, apperrors.NotFound("staff member", nil)
}

func (f *fakeStaffRepo) GetCredential(ctx context.Context, staffID uuid.UUID) (*model.StaffCredential, error) {
	return nil, apperrors.NotFound("credential", nil)
}

func (f *fakeStaffRepo) List(ctx context.Context) ([]*model.Staff, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.staff, nil
}

func (f *fakeStaffRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeSlotRepo struct {
	slots     []*model.AvailableSlot
	listCalls int
}

func (f *fakeSlotRepo) CreateBatch(ctx context.Context, staffID uuid.UUID, date model.Date, windows []model.TimeWindow) ([]*model.AvailableSlot, error) {
	return nil, nil
}

func (f *fakeSlotRepo) Get(ctx context.Context, id uuid.UUID) (*model.AvailableSlot, error) {
	return nil, apperrors.NotFound("slot", nil)
}

func (f *fakeSlotRepo) List(ctx context.Context, filters *model.SlotFilters) ([]*model.AvailableSlot, error) {
	f.listCalls++
	result := []*model.AvailableSlot{}
	for _, s := range f.slots {
		if filters != nil && filters.StaffID != nil && s.StaffID != *filters.StaffID {
			continue
		}
		if filters != nil && filters.Date != nil && s.Date.String() != filters.Date.String() {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeSlotRepo) SetFull(ctx context.Context, id uuid.UUID, isFull bool) error { return nil }
func (f *fakeSlotRepo) Delete(ctx context.Context, id uuid.UUID) error               { return nil }

type fakePasswordHasher struct{}

func (fakePasswordHasher) Hash(password string) (string, error) { return password, nil }
func (fakePasswordHasher) Compare(hash, password string) error  { return nil }

func newTestRouter(staffRepo *fakeStaffRepo, slotRepo *fakeSlotRepo) (*gin.Engine, *viewcache.Cache) {
	gin.SetMode(gin.TestMode)

	views := viewcache.New(gocache.New(time.Minute, time.Minute), nil, zerolog.Nop())
	staffSvc := staffService.NewService(staffRepo, fakePasswordHasher{}, views, zerolog.Nop())
	slotSvc := slotService.NewService(slotRepo, views, zerolog.Nop())

	engine := gin.New()
	h := NewHandler(staffSvc, slotSvc, views)
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine, views
}

func doGet(t *testing.T, engine *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestListStaffPublic(t *testing.T) {
	staffRepo := &fakeStaffRepo{staff: []*model.Staff{
		{ID: uuid.New(), Name: "Sato Yuki", Email: "sato@example.com"},
		{ID: uuid.New(), Name: "Tanaka Hana", Email: "tanaka@example.com"},
	}}
	engine, _ := newTestRouter(staffRepo, &fakeSlotRepo{})

	w, body := doGet(t, engine, "/api/v1/schedule/staff")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", body["status"])
	assert.Len(t, body["data"], 2)
}

func TestListStaffUnavailable(t *testing.T) {
	staffRepo := &fakeStaffRepo{listErr: errors.New("connection refused")}
	engine, _ := newTestRouter(staffRepo, &fakeSlotRepo{})

	w, body := doGet(t, engine, "/api/v1/schedule/staff")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "error", body["status"])
}

func TestListSlotsFilters(t *testing.T) {
	mine := uuid.New()
	other := uuid.New()
	day := model.NewDate(2025, time.June, 2)
	slotRepo := &fakeSlotRepo{slots: []*model.AvailableSlot{
		{ID: uuid.New(), StaffID: mine, Date: day},
		{ID: uuid.New(), StaffID: other, Date: day},
	}}
	engine, _ := newTestRouter(&fakeStaffRepo{}, slotRepo)

	w, body := doGet(t, engine, "/api/v1/schedule/slots?staff_id="+mine.String()+"&date=2025-06-02")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["data"], 1)
}

func TestListSlotsBadStaffID(t *testing.T) {
	engine, _ := newTestRouter(&fakeStaffRepo{}, &fakeSlotRepo{})

	w, body := doGet(t, engine, "/api/v1/schedule/slots?staff_id=not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", body["status"])
}

func TestListSlotsBadDate(t *testing.T) {
	engine, _ := newTestRouter(&fakeStaffRepo{}, &fakeSlotRepo{})

	w, _ := doGet(t, engine, "/api/v1/schedule/slots?date=02-06-2025")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListSlotsServedFromCache(t *testing.T) {
	slotRepo := &fakeSlotRepo{slots: []*model.AvailableSlot{
		{ID: uuid.New(), StaffID: uuid.New(), Date: model.NewDate(2025, time.June, 2)},
	}}
	engine, views := newTestRouter(&fakeStaffRepo{}, slotRepo)

	doGet(t, engine, "/api/v1/schedule/slots")
	doGet(t, engine, "/api/v1/schedule/slots")
	assert.Equal(t, 1, slotRepo.listCalls, "second read should hit the cache")

	// a mutation elsewhere flushes the views, so the next read goes to the store
	views.Refresh(context.Background())
	doGet(t, engine, "/api/v1/schedule/slots")
	assert.Equal(t, 2, slotRepo.listCalls)
}
