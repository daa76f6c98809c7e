package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marqueehq/marquee/internal/contract"
	"github.com/marqueehq/marquee/internal/event"
)

func TestService_AttachContract_UpdatesRollups(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := &event.Event{
		ID:          "ev-1",
		Name:        "Summer Gala",
		EventDate:   time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC),
		ContractIDs: []string{},
	}

	repo := event.NewMockRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), "ev-1").Return(stored, nil).Times(2)
	repo.EXPECT().Update(gomock.Any(), stored).Return(nil).Times(2)

	svc := event.NewService(repo)

	_, err := svc.AttachContract(context.Background(), "ev-1", &contract.Contract{
		ID:               "ct-1",
		PaymentDirection: contract.DirectionReceivable,
		ContractValue:    120_000,
	})
	require.NoError(t, err)

	got, err := svc.AttachContract(context.Background(), "ev-1", &contract.Contract{
		ID:               "ct-2",
		PaymentDirection: contract.DirectionPayable,
		ContractValue:    45_000,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ct-1", "ct-2"}, got.ContractIDs)
	assert.Equal(t, int64(120_000), got.TotalReceivable)
	assert.Equal(t, int64(45_000), got.TotalPayable)
	assert.Equal(t, int64(75_000), got.NetRevenue)
}

func TestService_AttachContract_IsIdempotentPerContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := &event.Event{
		ID:              "ev-1",
		ContractIDs:     []string{"ct-1"},
		TotalReceivable: 100,
		NetRevenue:      100,
	}

	repo := event.NewMockRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), "ev-1").Return(stored, nil)

	svc := event.NewService(repo)

	got, err := svc.AttachContract(context.Background(), "ev-1", &contract.Contract{
		ID:               "ct-1",
		PaymentDirection: contract.DirectionReceivable,
		ContractValue:    100,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.TotalReceivable)
	assert.Equal(t, []string{"ct-1"}, got.ContractIDs)
}

func TestService_DetachContract_BacksValueOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := &event.Event{
		ID:              "ev-1",
		ContractIDs:     []string{"ct-1", "ct-2"},
		TotalReceivable: 300,
		TotalPayable:    50,
		NetRevenue:      250,
	}

	repo := event.NewMockRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), "ev-1").Return(stored, nil)
	repo.EXPECT().Update(gomock.Any(), stored).Return(nil)

	svc := event.NewService(repo)

	got, err := svc.DetachContract(context.Background(), "ev-1", &contract.Contract{
		ID:               "ct-1",
		PaymentDirection: contract.DirectionReceivable,
		ContractValue:    300,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ct-2"}, got.ContractIDs)
	assert.Equal(t, int64(0), got.TotalReceivable)
	assert.Equal(t, int64(-50), got.NetRevenue)
}
