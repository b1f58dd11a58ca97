package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/warehouse-backend/internal/entity"
	"github.com/rocketscienceinc/warehouse-backend/internal/repository"
)

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)

	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type mockLocker struct {
	mock.Mock
	unlocked int
}

func (that *mockLocker) Lock(ctx context.Context, gameID string) (repository.Unlock, error) {
	args := that.Called(ctx, gameID)
	if err := args.Error(0); err != nil {
		return nil, err
	}

	return func(context.Context) error {
		that.unlocked++
		return nil
	}, nil
}
