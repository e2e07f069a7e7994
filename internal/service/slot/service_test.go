package slot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmiyata/schedule-api/internal/model"
	apperrors "github.com/hmiyata/schedule-api/pkg/errors"
)

type fakeSlotRepo struct {
	createErr   error
	listErr     error
	setFullErr  error
	deleteErr   error
	listResult  []*model.AvailableSlot
	createCalls int
	setFullArgs []bool
	deleted     []uuid.UUID
}

func (f *fakeSlotRepo) CreateBatch(ctx context.Context, staffID uuid.UUID, date model.Date, windows []model.TimeWindow) ([]*model.AvailableSlot, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	slots := make([]*model.AvailableSlot, 0, len(windows))
	for _, w := range windows {
		slots = append(slots, &model.AvailableSlot{
			ID:        uuid.New(),
			StaffID:   staffID,
			Date:      date,
			StartTime: w.Start,
			EndTime:   w.End,
		})
	}
	return slots, nil
}

func (f *fakeSlotRepo) Get(ctx context.Context, id uuid.UUID) (*model.AvailableSlot, error) {
	return nil, apperrors.NotFound("slot", nil)
}

func (f *fakeSlotRepo) List(ctx context.Context, filters *model.SlotFilters) ([]*model.AvailableSlot, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if filters != nil && filters.StaffID != nil {
		filtered := []*model.AvailableSlot{}
		for _, s := range f.listResult {
			if s.StaffID == *filters.StaffID {
				filtered = append(filtered, s)
			}
		}
		return filtered, nil
	}
	return f.listResult, nil
}

func (f *fakeSlotRepo) SetFull(ctx context.Context, id uuid.UUID, isFull bool) error {
	if f.setFullErr != nil {
		return f.setFullErr
	}
	f.setFullArgs = append(f.setFullArgs, isFull)
	return nil
}

func (f *fakeSlotRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRefresher struct {
	calls int
}

func (f *fakeRefresher) Refresh(ctx context.Context) { f.calls++ }

func mustClock(t *testing.T, s string) model.ClockTime {
	t.Helper()
	c, err := model.ParseClockTime(s)
	require.NoError(t, err)
	return c
}

func validBatchRequest(t *testing.T) *model.CreateSlotBatchRequest {
	t.Helper()
	return &model.CreateSlotBatchRequest{
		StaffID: uuid.New(),
		Date:    model.NewDate(2025, time.June, 2),
		Windows: []model.TimeWindow{
			{Start: mustClock(t, "09:00"), End: mustClock(t, "10:00")},
			{Start: mustClock(t, "10:00"), End: mustClock(t, "11:00")},
			{Start: mustClock(t, "14:00"), End: mustClock(t, "15:30")},
		},
	}
}

func TestCreateBatch(t *testing.T) {
	repo := &fakeSlotRepo{}
	refresher := &fakeRefresher{}
	svc := NewService(repo, refresher, zerolog.Nop())

	req := validBatchRequest(t)
	slots, err := svc.CreateBatch(context.Background(), req)

	require.NoError(t, err)
	assert.Len(t, slots, len(req.Windows))
	for i, s := range slots {
		assert.Equal(t, req.StaffID, s.StaffID)
		assert.Equal(t, req.Windows[i].Start.String(), s.StartTime.String())
		assert.False(t, s.IsFull)
	}
	assert.Equal(t, 1, refresher.calls)
}

func TestCreateBatchEmptyWindows(t *testing.T) {
	repo := &fakeSlotRepo{}
	refresher := &fakeRefresher{}
	svc := NewService(repo, refresher, zerolog.Nop())

	req := validBatchRequest(t)
	req.Windows = nil

	_, err := svc.CreateBatch(context.Background(), req)

	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.Zero(t, repo.createCalls, "nothing should reach the store")
	assert.Zero(t, refresher.calls)
}

func TestCreateBatchReversedWindow(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc := NewService(repo, &fakeRefresher{}, zerolog.Nop())

	req := validBatchRequest(t)
	req.Windows[1] = model.TimeWindow{
		Start: mustClock(t, "11:00"),
		End:   mustClock(t, "10:00"),
	}

	_, err := svc.CreateBatch(context.Background(), req)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, err.Error(), "window 2")
	assert.Zero(t, repo.createCalls)
}

func TestCreateBatchDuplicate(t *testing.T) {
	repo := &fakeSlotRepo{createErr: apperrors.DuplicateSlot()}
	refresher := &fakeRefresher{}
	svc := NewService(repo, refresher, zerolog.Nop())

	_, err := svc.CreateBatch(context.Background(), validBatchRequest(t))

	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicateSlot))
	assert.Zero(t, refresher.calls)
}

func TestCreateBatchStoreFailure(t *testing.T) {
	repo := &fakeSlotRepo{createErr: errors.New("connection reset")}
	svc := NewService(repo, &fakeRefresher{}, zerolog.Nop())

	_, err := svc.CreateBatch(context.Background(), validBatchRequest(t))

	assert.True(t, apperrors.Is(err, apperrors.ErrStore))
}

func TestListEmpty(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, &fakeRefresher{}, zerolog.Nop())

	slots, err := svc.List(context.Background(), nil)

	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestListOwnerFilter(t *testing.T) {
	mine := uuid.New()
	other := uuid.New()
	repo := &fakeSlotRepo{listResult: []*model.AvailableSlot{
		{ID: uuid.New(), StaffID: mine},
		{ID: uuid.New(), StaffID: other},
		{ID: uuid.New(), StaffID: mine},
	}}
	svc := NewService(repo, &fakeRefresher{}, zerolog.Nop())

	slots, err := svc.List(context.Background(), &model.SlotFilters{StaffID: &mine})

	require.NoError(t, err)
	require.Len(t, slots, 2)
	for _, s := range slots {
		assert.Equal(t, mine, s.StaffID)
	}
}

func TestListStoreFailure(t *testing.T) {
	repo := &fakeSlotRepo{listErr: errors.New("connection refused")}
	svc := NewService(repo, &fakeRefresher{}, zerolog.Nop())

	_, err := svc.List(context.Background(), nil)

	// a failed read must not masquerade as an empty schedule
	assert.True(t, apperrors.Is(err, apperrors.ErrUnavailable))
}

func TestSetCapacity(t *testing.T) {
	repo := &fakeSlotRepo{}
	refresher := &fakeRefresher{}
	svc := NewService(repo, refresher, zerolog.Nop())
	id := uuid.New()

	require.NoError(t, svc.SetCapacity(context.Background(), id, true))
	require.NoError(t, svc.SetCapacity(context.Background(), id, false))

	assert.Equal(t, []bool{true, false}, repo.setFullArgs)
	assert.Equal(t, 2, refresher.calls)
}

func TestSetCapacityNotFound(t *testing.T) {
	repo := &fakeSlotRepo{setFullErr: apperrors.NotFound("slot", nil)}
	refresher := &fakeRefresher{}
	svc := NewService(repo, refresher, zerolog.Nop())

	err := svc.SetCapacity(context.Background(), uuid.New(), true)

	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.Zero(t, refresher.calls)
}

func TestDelete(t *testing.T) {
	repo := &fakeSlotRepo{}
	refresher := &fakeRefresher{}
	svc := NewService(repo, refresher, zerolog.Nop())
	id := uuid.New()

	require.NoError(t, svc.Delete(context.Background(), id))

	assert.Equal(t, []uuid.UUID{id}, repo.deleted)
	assert.Equal(t, 1, refresher.calls)
}

func TestDeleteNotFound(t *testing.T) {
	repo := &fakeSlotRepo{deleteErr: apperrors.NotFound("slot", nil)}
	svc := NewService(repo, &fakeRefresher{}, zerolog.Nop())

	err := svc.Delete(context.Background(), uuid.New())

	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
