package frontend

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/youtNa/doris/meta"
)

var _ Client = (*ClientMock)(nil)

type ClientMock struct {
	mock.Mock
}

func (m *ClientMock) FetchTableMetadata(ctx context.Context, request *meta.FetchRequest) (*meta.FetchResult, error) {
	args := m.Called(request)

	if result := args.Get(0); result != nil {
		return result.(*meta.FetchResult), args.Error(1)
	}

	return nil, args.Error(1)
}
