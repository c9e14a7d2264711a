package cache

import (
	"context"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/fee"
	"github.com/outletfc/club-treasury/internal/domain/player"
	basecache "github.com/outletfc/club-treasury/internal/platform/cache"
)

const (
	playerPrefix = "player:"
	feePrefix    = "fee:"
)

// PlayerRepository caches roster reads. Profiles are edited outside this
// service, so entries simply age out with the store TTL.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	items, err := basecache.GetOrLoad(ctx, r.cache, playerPrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	cached, err := basecache.GetOrLoad(ctx, r.cache, playerPrefix+"id:"+playerID, func(ctx context.Context) (cachedLookup[player.Player], error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return cachedLookup[player.Player]{}, err
		}
		return cachedLookup[player.Player]{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value, cached.exists, nil
}

// FeeRepository caches the fee schedule, which every reconciliation reads in
// full. Writes go through and drop all fee entries.
type FeeRepository struct {
	next  fee.Repository
	cache *basecache.Store
}

func NewFeeRepository(next fee.Repository, cache *basecache.Store) *FeeRepository {
	return &FeeRepository{next: next, cache: cache}
}

func (r *FeeRepository) List(ctx context.Context) ([]fee.Entry, error) {
	items, err := basecache.GetOrLoad(ctx, r.cache, feePrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]fee.Entry(nil), items...), nil
}

func (r *FeeRepository) Upsert(ctx context.Context, entries []fee.Entry) error {
	defer r.cache.Invalidate(feePrefix)
	return r.next.Upsert(ctx, entries)
}

func (r *FeeRepository) GetSetting(ctx context.Context, month calendar.Month) (fee.MonthlySetting, bool, error) {
	cached, err := basecache.GetOrLoad(ctx, r.cache, feePrefix+"setting:"+month.String(), func(ctx context.Context) (cachedLookup[fee.MonthlySetting], error) {
		item, exists, err := r.next.GetSetting(ctx, month)
		if err != nil {
			return cachedLookup[fee.MonthlySetting]{}, err
		}
		return cachedLookup[fee.MonthlySetting]{value: item, exists: exists}, nil
	})
	if err != nil {
		return fee.MonthlySetting{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *FeeRepository) UpsertSetting(ctx context.Context, setting fee.MonthlySetting) error {
	defer r.cache.Invalidate(feePrefix)
	return r.next.UpsertSetting(ctx, setting)
}

type cachedLookup[T any] struct {
	value  T
	exists bool
}
