package feed

import (
	"context"
	"slices"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDefer(t *testing.T) {
	order := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name  string
		index int
		gap   int
		want  []string
	}{
		{"middle", 1, 2, []string{"a", "c", "d", "b", "e"}},
		{"clamped to end", 3, 10, []string{"a", "b", "c", "e", "d"}},
		{"last stays last", 4, 3, []string{"a", "b", "c", "d", "e"}},
		{"first by one", 0, 1, []string{"b", "a", "c", "d", "e"}},
		{"out of range", 9, 2, order},
		{"zero gap", 2, 0, order},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Defer(order, tt.index, tt.gap)
			assert.Equal(t, tt.want, got)
			assert.ElementsMatch(t, order, got)
		})
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, order, "input must not change")
}

type mockSource struct {
	mock.Mock
}

func (m *mockSource) RecentIDs(ctx context.Context, limit int) ([]string, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]string), args.Error(1)
}

type memQueue map[string][]string

func (q memQueue) Load(_ context.Context, userID string) ([]string, error) {
	return slices.Clone(q[userID]), nil
}

func (q memQueue) Save(_ context.Context, userID string, order []string) error {
	q[userID] = slices.Clone(order)
	return nil
}

func TestServiceRefillAndSkip(t *testing.T) {
	ctx := context.Background()
	src := &mockSource{}
	src.On("RecentIDs", mock.Anything, 12).Return([]string{"g1", "g2", "g3", "g4"}, nil).Once()
	q := memQueue{}
	svc := NewService(src, q, 2, zerolog.Nop())

	ids, err := svc.Next(ctx, "u1", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g2", "g3"}, ids)
	assert.Len(t, q["u1"], 4)

	order, err := svc.Skip(ctx, "u1", "g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"g2", "g3", "g1", "g4"}, order)

	_, err = svc.Skip(ctx, "u1", "nope")
	assert.ErrorIs(t, err, ErrNotQueued)

	ids, err = svc.Next(ctx, "u1", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"g2", "g3"}, ids)
	src.AssertExpectations(t)
}
