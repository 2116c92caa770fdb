package receipt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"receiptpoints/internal/receipt"
)

func sampleReceipt(t *testing.T) receipt.Receipt {
	t.Helper()

	return receipt.Receipt{
		Retailer:     "Target",
		PurchaseDate: "2022-01-01",
		PurchaseTime: "13:01",
		Items: []receipt.Item{
			{ShortDescription: "Pepsi - 12-oz", Price: amount(t, "1.25")},
		},
		Total: amount(t, "1.25"),
	}
}

func TestService_Process(t *testing.T) {
	type testCase struct {
		name      string
		receipt   func(t *testing.T) receipt.Receipt
		setupMock func(m *receipt.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:    "Success",
			receipt: sampleReceipt,
			setupMock: func(m *receipt.MockRepository) {
				m.EXPECT().
					CreateReceipt(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rec *receipt.StoredReceipt) error {
						assert.Equal(t, 37, rec.Points)
						_, err := uuid.Parse(rec.ID)
						assert.NoError(t, err)
						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "MalformedDateStillStored",
			receipt: func(t *testing.T) receipt.Receipt {
				r := sampleReceipt(t)
				r.PurchaseDate = "2022-13-40"
				return r
			},
			setupMock: func(m *receipt.MockRepository) {
				m.EXPECT().
					CreateReceipt(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rec *receipt.StoredReceipt) error {
						// Odd-day rule does not apply: 6 + 25.
						assert.Equal(t, 31, rec.Points)
						return nil
					})
			},
			wantErr: false,
		},
		{
			name:    "RepoError",
			receipt: sampleReceipt,
			setupMock: func(m *receipt.MockRepository) {
				m.EXPECT().
					CreateReceipt(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := receipt.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := receipt.NewService(repo)
			id, err := svc.Process(context.Background(), tt.receipt(t))

			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, id)

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, id)
		})
	}
}

func TestService_Process_DistinctIdentifiers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := receipt.NewMockRepository(ctrl)
	repo.EXPECT().CreateReceipt(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	svc := receipt.NewService(repo)

	first, err := svc.Process(context.Background(), sampleReceipt(t))
	require.NoError(t, err)

	second, err := svc.Process(context.Background(), sampleReceipt(t))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestService_Points(t *testing.T) {
	type testCase struct {
		name       string
		id         string
		setupMock  func(m *receipt.MockRepository)
		wantPoints int
		wantErr    error
	}

	tests := []testCase{
		{
			name: "Success",
			id:   "some-id",
			setupMock: func(m *receipt.MockRepository) {
				m.EXPECT().
					GetPoints(gomock.Any(), "some-id").
					Return(37, nil)
			},
			wantPoints: 37,
		},
		{
			name: "NotFound",
			id:   "missing-id",
			setupMock: func(m *receipt.MockRepository) {
				m.EXPECT().
					GetPoints(gomock.Any(), "missing-id").
					Return(0, receipt.ErrNotFound)
			},
			wantErr: receipt.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := receipt.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := receipt.NewService(repo)
			points, err := svc.Points(context.Background(), tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantPoints, points)
		})
	}
}
