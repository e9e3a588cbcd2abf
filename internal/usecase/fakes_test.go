package usecase

import (
	"context"
	"sort"
	"time"

	"store-ratings/internal/data/entity"
	"store-ratings/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repositories mirroring the SQL behaviour: lookups that miss
// return (nil, nil), upserts key on (user_id, store_id), cascades remove
// dependent ratings.

type fakeUserRepo struct {
	users   map[uuid.UUID]*entity.User
	order   []uuid.UUID
	ratings *fakeRatingRepo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	cp := *user
	f.users[user.ID] = &cp
	f.order = append(f.order, user.ID)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, id := range f.order {
		if u, ok := f.users[id]; ok && u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for i, id := range f.order {
		if i < offset {
			continue
		}
		if len(out) >= limit {
			break
		}
		if u, ok := f.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) DeleteWithRatings(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	if f.ratings != nil {
		f.ratings.deleteWhere(func(rt *entity.Rating) bool { return rt.UserID == id })
	}
	return nil
}

type fakeStoreRepo struct {
	stores  map[uuid.UUID]*entity.Store
	order   []uuid.UUID
	ratings *fakeRatingRepo
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{stores: make(map[uuid.UUID]*entity.Store)}
}

func (f *fakeStoreRepo) Create(_ context.Context, store *entity.Store) error {
	cp := *store
	f.stores[store.ID] = &cp
	f.order = append(f.order, store.ID)
	return nil
}

func (f *fakeStoreRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Store, error) {
	s, ok := f.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStoreRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Store, error) {
	ids := make([]uuid.UUID, len(f.order))
	copy(ids, f.order)
	sort.Slice(ids, func(i, j int) bool {
		return f.stores[ids[i]].Name < f.stores[ids[j]].Name
	})
	var out []*entity.Store
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(out) >= limit {
			break
		}
		cp := *f.stores[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeStoreRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*entity.Store, error) {
	var out []*entity.Store
	for _, id := range f.order {
		if s, ok := f.stores[id]; ok && s.OwnerID == ownerID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStoreRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.stores)), nil
}

func (f *fakeStoreRepo) CountByOwnerID(_ context.Context, ownerID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range f.stores {
		if s.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStoreRepo) Update(_ context.Context, store *entity.Store) error {
	cp := *store
	f.stores[store.ID] = &cp
	return nil
}

func (f *fakeStoreRepo) DeleteWithRatings(_ context.Context, id uuid.UUID) error {
	delete(f.stores, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	if f.ratings != nil {
		f.ratings.deleteWhere(func(rt *entity.Rating) bool { return rt.StoreID == id })
	}
	return nil
}

type fakeRatingRepo struct {
	ratings map[uuid.UUID]*entity.Rating
	order   []uuid.UUID
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[uuid.UUID]*entity.Rating)}
}

func (f *fakeRatingRepo) deleteWhere(match func(*entity.Rating) bool) {
	var kept []uuid.UUID
	for _, id := range f.order {
		if rt, ok := f.ratings[id]; ok && match(rt) {
			delete(f.ratings, id)
			continue
		}
		kept = append(kept, id)
	}
	f.order = kept
}

func (f *fakeRatingRepo) Upsert(_ context.Context, rating *entity.Rating) error {
	for _, id := range f.order {
		ex := f.ratings[id]
		if ex.UserID == rating.UserID && ex.StoreID == rating.StoreID {
			ex.Value = rating.Value
			ex.Comment = rating.Comment
			ex.UpdatedAt = time.Now()
			// the caller sees the surviving row
			rating.ID = ex.ID
			rating.CreatedAt = ex.CreatedAt
			rating.UpdatedAt = ex.UpdatedAt
			return nil
		}
	}
	cp := *rating
	f.ratings[rating.ID] = &cp
	f.order = append(f.order, rating.ID)
	return nil
}

func (f *fakeRatingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Rating, error) {
	rt, ok := f.ratings[id]
	if !ok {
		return nil, nil
	}
	cp := *rt
	return &cp, nil
}

func (f *fakeRatingRepo) FindByStoreID(_ context.Context, storeID uuid.UUID, limit, offset int) ([]*entity.Rating, error) {
	var out []*entity.Rating
	skipped := 0
	for _, id := range f.order {
		rt, ok := f.ratings[id]
		if !ok || rt.StoreID != storeID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(out) >= limit {
			break
		}
		cp := *rt
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRatingRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Rating, error) {
	var out []*entity.Rating
	skipped := 0
	for _, id := range f.order {
		rt, ok := f.ratings[id]
		if !ok || rt.UserID != userID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(out) >= limit {
			break
		}
		cp := *rt
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRatingRepo) FindByUserAndStore(_ context.Context, userID, storeID uuid.UUID) (*entity.Rating, error) {
	for _, id := range f.order {
		if rt, ok := f.ratings[id]; ok && rt.UserID == userID && rt.StoreID == storeID {
			cp := *rt
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRatingRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Rating, error) {
	var out []*entity.Rating
	for i, id := range f.order {
		if i < offset {
			continue
		}
		if len(out) >= limit {
			break
		}
		cp := *f.ratings[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRatingRepo) FindRecent(_ context.Context, limit int) ([]*entity.Rating, error) {
	ids := make([]uuid.UUID, len(f.order))
	copy(ids, f.order)
	sort.Slice(ids, func(i, j int) bool {
		return f.ratings[ids[i]].UpdatedAt.After(f.ratings[ids[j]].UpdatedAt)
	})
	var out []*entity.Rating
	for _, id := range ids {
		if len(out) >= limit {
			break
		}
		cp := *f.ratings[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRatingRepo) CountByStoreID(_ context.Context, storeID uuid.UUID) (int64, error) {
	var n int64
	for _, rt := range f.ratings {
		if rt.StoreID == storeID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRatingRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.ratings)), nil
}

func (f *fakeRatingRepo) Update(_ context.Context, rating *entity.Rating) error {
	cp := *rating
	f.ratings[rating.ID] = &cp
	return nil
}

func (f *fakeRatingRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.ratings, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeRatingRepo) GetStoreRatingStats(_ context.Context, storeID uuid.UUID) (float64, int64, error) {
	var sum, n int64
	for _, rt := range f.ratings {
		if rt.StoreID == storeID {
			sum += int64(rt.Value)
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(n), n, nil
}

// testRepo wires the fakes together so cascades cross repositories the way
// the SQL transactions do.
func newTestRepo() (*repository.Repository, *fakeUserRepo, *fakeStoreRepo, *fakeRatingRepo) {
	users := newFakeUserRepo()
	stores := newFakeStoreRepo()
	ratings := newFakeRatingRepo()
	users.ratings = ratings
	stores.ratings = ratings
	return &repository.Repository{
		User:   users,
		Store:  stores,
		Rating: ratings,
	}, users, stores, ratings
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func seedUser(users *fakeUserRepo, role entity.UserRole, email string) *entity.User {
	now := time.Now()
	u := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         "Test " + string(role),
		Email:        email,
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotare",
		Role:         role,
	}
	users.Create(context.Background(), u)
	return u
}

func seedStore(stores *fakeStoreRepo, ownerID uuid.UUID, name string) *entity.Store {
	now := time.Now()
	s := &entity.Store{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:    name,
		Email:   name + "@stores.test",
		Address: "1 Test Street",
		OwnerID: ownerID,
	}
	stores.Create(context.Background(), s)
	return s
}
