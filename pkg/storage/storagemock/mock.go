package storagemock

import (
	"context"

	"github.com/kilowatch/kilowatch/pkg/storage"
	"github.com/kilowatch/kilowatch/pkg/types"
	"github.com/stretchr/testify/mock"
)

type MockDatabase struct {
	mock.Mock
}

var _ storage.Database = (*MockDatabase)(nil)

func (m *MockDatabase) GetCatalogue(ctx context.Context) (storage.Catalogue, error) {
	args := m.Called(ctx)
	if len(args) > 0 {
		return args.Get(0).(storage.Catalogue), args.Error(1)
	}
	return storage.Catalogue{}, nil
}

func (m *MockDatabase) SetCatalogue(ctx context.Context, c storage.Catalogue) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockDatabase) GetTDURates(ctx context.Context) (map[string]types.TDURates, error) {
	args := m.Called(ctx)
	if len(args) > 0 {
		if rates, ok := args.Get(0).(map[string]types.TDURates); ok {
			return rates, args.Error(1)
		}
		return nil, args.Error(1)
	}
	return nil, nil
}

func (m *MockDatabase) SetTDURates(ctx context.Context, rates map[string]types.TDURates) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

func (m *MockDatabase) Close() error {
	args := m.Called()
	return args.Error(0)
}
