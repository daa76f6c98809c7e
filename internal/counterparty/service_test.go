package counterparty_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marqueehq/marquee/internal/counterparty"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name       string
		params     counterparty.CreateParams
		setupMock  func(m *counterparty.MockRepository)
		wantErr    bool
		wantClient string
	}

	tests := []testCase{
		{
			name: "Success",
			params: counterparty.CreateParams{
				Type:     counterparty.TypeVenue,
				Name:     "Grand Hall",
				OwnerUID: "user-1",
			},
			setupMock: func(m *counterparty.MockRepository) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, cp *counterparty.Counterparty) error {
						cp.ID = "cp-1"
						return nil
					})
			},
		},
		{
			name: "ClientTypeDefaulted",
			params: counterparty.CreateParams{
				Type:     counterparty.TypeClient,
				Name:     "Maria Lopes",
				OwnerUID: "user-1",
			},
			setupMock: func(m *counterparty.MockRepository) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, cp *counterparty.Counterparty) error {
						cp.ID = "cp-2"
						return nil
					})
			},
			wantClient: counterparty.DefaultClientType,
		},
		{
			name: "UnknownType",
			params: counterparty.CreateParams{
				Type: counterparty.Type("landlord"),
				Name: "Nope",
			},
			wantErr: true,
		},
		{
			name: "RepoError",
			params: counterparty.CreateParams{
				Type: counterparty.TypePerformer,
				Name: "The Strays",
			},
			setupMock: func(m *counterparty.MockRepository) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := counterparty.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := counterparty.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.False(t, got.CreatedAt.IsZero())

			if tt.wantClient != "" {
				assert.Equal(t, tt.wantClient, got.ClientType)
			}
		})
	}
}

func TestService_Update_RejectsUnknownType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := counterparty.NewMockRepository(ctrl)
	svc := counterparty.NewService(repo)

	err := svc.Update(context.Background(), &counterparty.Counterparty{
		ID:   "cp-1",
		Type: counterparty.Type("mystery"),
	})
	assert.Error(t, err)
}

func TestService_List_Filtered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	venue := counterparty.TypeVenue
	filter := counterparty.ListFilter{Type: &venue}

	repo := counterparty.NewMockRepository(ctrl)
	repo.EXPECT().
		List(gomock.Any(), filter).
		Return([]*counterparty.Counterparty{{ID: "cp-1", Type: venue}}, nil)

	svc := counterparty.NewService(repo)
	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
