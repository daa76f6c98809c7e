package contract_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marqueehq/marquee/internal/contract"
	"github.com/marqueehq/marquee/internal/payment"
)

func newServiceWithMocks(t *testing.T) (*contract.Service, *contract.MockRepository, *contract.MockPayments, *contract.MockDirectory) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := contract.NewMockRepository(ctrl)
	payments := contract.NewMockPayments(ctrl)
	directory := contract.NewMockDirectory(ctrl)

	return contract.NewService(repo, payments, directory), repo, payments, directory
}

func TestService_Save_CreatesPaymentSchedule(t *testing.T) {
	svc, repo, payments, directory := newServiceWithMocks(t)

	directory.EXPECT().CounterpartyName(gomock.Any(), "cp-1").Return("Maria Lopes", nil)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *contract.Contract) error {
			c.ID = "ct-1"
			return nil
		})

	var created []*payment.Payment

	payments.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *payment.Payment) error {
			created = append(created, p)
			return nil
		})

	got, err := svc.Save(context.Background(), contract.CreateParams{
		Type:             contract.TypeServiceProvision,
		ContractNumber:   "SC-2024-001",
		OwnerUID:         "user-1",
		CounterpartyID:   "cp-1",
		PaymentDirection: contract.DirectionReceivable,
		ContractValue:    150_000,
		Currency:         "EUR",
		StartDate:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria Lopes", got.CounterpartyName)
	assert.Equal(t, contract.StatusUnpaid, got.PaymentStatus)

	require.Len(t, created, 1)
	assert.Equal(t, "ct-1", created[0].ContractID)
	assert.Equal(t, int64(150_000), created[0].Amount)
	assert.Equal(t, payment.StatusDue, created[0].Status)
}

func TestService_Save_RecurringInstallmentsSumToValue(t *testing.T) {
	svc, repo, payments, directory := newServiceWithMocks(t)

	directory.EXPECT().CounterpartyName(gomock.Any(), "cp-1").Return("Grand Hall", nil)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *contract.Contract) error {
			c.ID = "ct-2"
			return nil
		})

	var created []*payment.Payment

	payments.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Times(3).
		DoAndReturn(func(_ context.Context, p *payment.Payment) error {
			created = append(created, p)
			return nil
		})

	_, err := svc.Save(context.Background(), contract.CreateParams{
		Type:             contract.TypeVenueRental,
		OwnerUID:         "user-1",
		CounterpartyID:   "cp-1",
		PaymentDirection: contract.DirectionPayable,
		ContractValue:    100_000,
		Recurring:        true,
		Installments:     3,
		StartDate:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, created, 3)

	var sum int64
	for _, p := range created {
		sum += p.Amount
	}

	assert.Equal(t, int64(100_000), sum)
	assert.Equal(t, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), created[2].DueDate)
}

func TestService_Save_LookupMissFallsBackToSentinel(t *testing.T) {
	svc, repo, payments, directory := newServiceWithMocks(t)

	directory.EXPECT().CounterpartyName(gomock.Any(), "cp-gone").Return("", errors.New("not found"))
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *contract.Contract) error {
			c.ID = "ct-3"
			return nil
		})
	payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Save(context.Background(), contract.CreateParams{
		Type:           contract.TypeCatering,
		OwnerUID:       "user-1",
		CounterpartyID: "cp-gone",
	})
	require.NoError(t, err)
	assert.Equal(t, contract.UnknownCounterpartyName, got.CounterpartyName)
}

func TestService_SetPaymentStatus_TogglesAuditPairTogether(t *testing.T) {
	svc, repo, payments, _ := newServiceWithMocks(t)

	stored := &contract.Contract{
		ID:            "ct-1",
		Type:          contract.TypeServiceProvision,
		PaymentStatus: contract.StatusUnpaid,
		ContractValue: 5000,
	}
	existing := &payment.Payment{ID: "pay-1", ContractID: "ct-1", Status: payment.StatusDue}

	repo.EXPECT().Get(gomock.Any(), contract.TypeServiceProvision, "ct-1").Return(stored, nil).Times(2)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	payments.EXPECT().ListByContract(gomock.Any(), "ct-1").Return([]*payment.Payment{existing}, nil).Times(2)
	payments.EXPECT().Update(gomock.Any(), existing).Return(nil).Times(2)

	got, err := svc.SetPaymentStatus(context.Background(), contract.TypeServiceProvision, "ct-1", true, "user-2")
	require.NoError(t, err)
	assert.Equal(t, contract.StatusPaid, got.PaymentStatus)
	require.NotNil(t, got.PaidAt)
	require.NotNil(t, got.PaidBy)
	assert.Equal(t, "user-2", *got.PaidBy)
	assert.Equal(t, payment.StatusPaid, existing.Status)

	got, err = svc.SetPaymentStatus(context.Background(), contract.TypeServiceProvision, "ct-1", false, "user-2")
	require.NoError(t, err)
	assert.Equal(t, contract.StatusUnpaid, got.PaymentStatus)
	assert.Nil(t, got.PaidAt)
	assert.Nil(t, got.PaidBy)
	assert.Equal(t, payment.StatusDue, existing.Status)
	assert.Nil(t, existing.PaidAt)
}

func TestService_SetPaymentStatus_LazilyCreatesPayment(t *testing.T) {
	svc, repo, payments, _ := newServiceWithMocks(t)

	stored := &contract.Contract{
		ID:            "ct-old",
		Type:          contract.TypeEventPlanning,
		PaymentStatus: contract.StatusUnpaid,
		ContractValue: 80_000,
	}

	repo.EXPECT().Get(gomock.Any(), contract.TypeEventPlanning, "ct-old").Return(stored, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	lazy := &payment.Payment{ID: "pay-lazy", ContractID: "ct-old", Status: payment.StatusPaid}

	gomock.InOrder(
		payments.EXPECT().ListByContract(gomock.Any(), "ct-old").Return(nil, nil),
		payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
		payments.EXPECT().ListByContract(gomock.Any(), "ct-old").Return([]*payment.Payment{lazy}, nil),
		payments.EXPECT().Update(gomock.Any(), lazy).Return(nil),
	)

	_, err := svc.SetPaymentStatus(context.Background(), contract.TypeEventPlanning, "ct-old", true, "user-1")
	require.NoError(t, err)
}

func TestService_Update_RejectsInvariantViolations(t *testing.T) {
	now := time.Now()
	by := "user-1"

	type testCase struct {
		name    string
		c       contract.Contract
		wantErr bool
	}

	tests := []testCase{
		{
			name: "PaidWithoutAudit",
			c: contract.Contract{
				ID: "ct-1", Type: contract.TypeStaffing,
				PaymentStatus: contract.StatusPaid,
			},
			wantErr: true,
		},
		{
			name: "UnpaidWithAudit",
			c: contract.Contract{
				ID: "ct-1", Type: contract.TypeStaffing,
				PaymentStatus: contract.StatusUnpaid,
				PaidAt:        &now, PaidBy: &by,
			},
			wantErr: true,
		},
		{
			name: "PaidComplete",
			c: contract.Contract{
				ID: "ct-1", Type: contract.TypeStaffing,
				PaymentStatus: contract.StatusPaid,
				PaidAt:        &now, PaidBy: &by,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newServiceWithMocks(t)

			if !tt.wantErr {
				repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := svc.Update(context.Background(), &tt.c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Delete_CascadesToPayments(t *testing.T) {
	svc, repo, payments, _ := newServiceWithMocks(t)

	gomock.InOrder(
		repo.EXPECT().Delete(gomock.Any(), contract.TypeSponsorship, "ct-9").Return(nil),
		payments.EXPECT().DeleteByContract(gomock.Any(), "ct-9").Return(nil),
	)

	require.NoError(t, svc.Delete(context.Background(), contract.TypeSponsorship, "ct-9"))
}
