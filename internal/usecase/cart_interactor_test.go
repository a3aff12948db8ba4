package usecase

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/GoArmGo/ShopCart/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

// fakeCartStorage эмулирует семантику настоящего хранилища:
// upsert с накоплением quantity по (user_id, product_id)
// и фильтрацию владения по (id, user_id).
type fakeCartStorage struct {
	mu    sync.Mutex
	lines map[uuid.UUID]*domain.CartLine
}

func newFakeCartStorage() *fakeCartStorage {
	return &fakeCartStorage{lines: make(map[uuid.UUID]*domain.CartLine)}
}

func (f *fakeCartStorage) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.CartLine
	for _, l := range f.lines {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeCartStorage) AddOrIncrement(ctx context.Context, line *domain.CartLine) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.lines {
		if existing.UserID == line.UserID && existing.ProductID == line.ProductID {
			existing.Quantity += line.Quantity
			existing.UpdatedAt = time.Now()
			*line = *existing
			return false, nil
		}
	}
	line.ID = uuid.New()
	now := time.Now()
	line.CreatedAt = now
	line.UpdatedAt = now
	cp := *line
	f.lines[line.ID] = &cp
	return true, nil
}

func (f *fakeCartStorage) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*domain.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.lines[lineID]
	if !ok || l.UserID != userID {
		return nil, domain.ErrNotFound
	}
	l.Quantity = quantity
	l.UpdatedAt = time.Now()
	cp := *l
	return &cp, nil
}

func (f *fakeCartStorage) Delete(ctx context.Context, userID, lineID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.lines[lineID]
	if !ok || l.UserID != userID {
		return domain.ErrNotFound
	}
	delete(f.lines, lineID)
	return nil
}

func newCartUC(f *fakeCartStorage) CartUseCase {
	return NewCartUseCase(f, slog.Default())
}

// --- tests ---

func TestAddAccumulatesQuantity(t *testing.T) {
	f := newFakeCartStorage()
	uc := newCartUC(f)
	userID := uuid.New()
	ctx := context.Background()

	input := AddLineInput{ProductID: 42, Title: "Ring", Price: 10.0, Image: "x.png", Quantity: 1}

	line1, created, err := uc.Add(ctx, userID, input)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, line1.Quantity)

	input.Quantity = 2
	line2, created, err := uc.Add(ctx, userID, input)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 3, line2.Quantity)
	assert.Equal(t, line1.ID, line2.ID, "повторное добавление не должно создавать вторую строку")

	lines, _, err := uc.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestAddValidation(t *testing.T) {
	f := newFakeCartStorage()
	uc := newCartUC(f)
	userID := uuid.New()
	ctx := context.Background()

	valid := AddLineInput{ProductID: 1, Title: "Ring", Price: 10, Image: "x.png", Quantity: 1}

	cases := []struct {
		name   string
		mutate func(*AddLineInput)
	}{
		{"missing product id", func(i *AddLineInput) { i.ProductID = 0 }},
		{"empty title", func(i *AddLineInput) { i.Title = "  " }},
		{"negative price", func(i *AddLineInput) { i.Price = -0.01 }},
		{"empty image", func(i *AddLineInput) { i.Image = "" }},
		{"zero quantity", func(i *AddLineInput) { i.Quantity = 0 }},
		{"negative quantity", func(i *AddLineInput) { i.Quantity = -2 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)
			_, _, err := uc.Add(ctx, userID, input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	// ни одна невалидная попытка не оставила частичных эффектов
	lines, _, err := uc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestAddZeroPriceAllowed(t *testing.T) {
	f := newFakeCartStorage()
	uc := newCartUC(f)

	_, created, err := uc.Add(context.Background(), uuid.New(),
		AddLineInput{ProductID: 7, Title: "Sample", Price: 0, Image: "s.png", Quantity: 1})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestListTotalRounding(t *testing.T) {
	f := newFakeCartStorage()
	uc := newCartUC(f)
	userID := uuid.New()
	ctx := context.Background()

	_, _, err := uc.Add(ctx, userID, AddLineInput{ProductID: 1, Title: "A", Price: 10.555, Image: "a", Quantity: 2})
	require.NoError(t, err)
	_, _, err = uc.Add(ctx, userID, AddLineInput{ProductID: 2, Title: "B", Price: 0.1, Image: "b", Quantity: 3})
	require.NoError(t, err)

	_, total, err := uc.List(ctx, userID)
	require.NoError(t, err)
	// 10.555*2 + 0.1*3 = 21.41
	assert.Equal(t, 21.41, total)
}

func TestUpdateAbsoluteSet(t *testing.T) {
	f := newFakeCartStorage()
	uc := newCartUC(f)
	userID := uuid.New()
	ctx := context.Background()

	line, _, err := uc.Add(ctx, userID, AddLineInput{ProductID: 1, Title: "A", Price: 5, Image: "a", Quantity: 4})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, userID, line.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Quantity, "Update выставляет точное значение, а не инкремент")

	// идемпотентность: повторный Update с тем же значением ничего не меняет
	updated, err = uc.Update(ctx, userID, line.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Quantity)
}

func TestUpdateZeroQuantityRejected(t *testing.T) {
	f := newFakeCartStorage()
	uc := newCartUC(f)
	userID := uuid.New()
	ctx := context.Background()

	line, _, err := uc.Add(ctx, userID, AddLineInput{ProductID: 1, Title: "A", Price: 5, Image: "a", Quantity: 4})
	require.NoError(t, err)

	_, err = uc.Update(ctx, userID, line.ID, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// строка не изменилась
	lines, _, err := uc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Quantity)
}

func TestOwnershipIsolation(t *testing.T) {
	f := newFakeCartStorage()
	uc := newCartUC(f)
	ctx := context.Background()

	owner := uuid.New()
	intruder := uuid.New()

	line, _, err := uc.Add(ctx, owner, AddLineInput{ProductID: 1, Title: "A", Price: 5, Image: "a", Quantity: 4})
	require.NoError(t, err)

	// чужой Update и Remove неотличимы от несуществующей строки
	_, err = uc.Update(ctx, intruder, line.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.Remove(ctx, intruder, line.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// строка владельца не пострадала
	lines, _, err := uc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Quantity)
}

func TestRemoveTwice(t *testing.T) {
	f := newFakeCartStorage()
	uc := newCartUC(f)
	userID := uuid.New()
	ctx := context.Background()

	line, _, err := uc.Add(ctx, userID, AddLineInput{ProductID: 1, Title: "A", Price: 5, Image: "a", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, uc.Remove(ctx, userID, line.ID))
	assert.ErrorIs(t, uc.Remove(ctx, userID, line.ID), domain.ErrNotFound)
}

func TestConcurrentAddsCollapseToOneLine(t *testing.T) {
	f := newFakeCartStorage()
	uc := newCartUC(f)
	userID := uuid.New()
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _, err := uc.Add(ctx, userID,
				AddLineInput{ProductID: 42, Title: "Ring", Price: 10, Image: "x.png", Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	lines, total, err := uc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1, "конкурентные добавления не должны создавать дубликаты")
	assert.Equal(t, n, lines[0].Quantity)
	assert.Equal(t, float64(n*10), total)
}
