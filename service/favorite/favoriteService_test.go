package favoritesvc_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Maksim124512M/LibraFlow/model"
	favoritesvc "github.com/Maksim124512M/LibraFlow/service/favorite"
)

type repoMock struct {
	checkBookFn func(ctx context.Context, bookID int64) (bool, error)
	insertFn    func(ctx context.Context, bookID, userID int64) (*model.Favorite, bool, error)
	findFn      func(ctx context.Context, bookID, userID int64) (*model.Favorite, error)
	deleteFn    func(ctx context.Context, favoriteID int64) error
	listFn      func(ctx context.Context, userID int64) ([]favoritesvc.ListRow, error)
}

func (m *repoMock) CheckBookExists(ctx context.Context, bookID int64) (bool, error) {
	return m.checkBookFn(ctx, bookID)
}
func (m *repoMock) InsertIfAbsent(ctx context.Context, bookID, userID int64) (*model.Favorite, bool, error) {
	return m.insertFn(ctx, bookID, userID)
}
func (m *repoMock) Find(ctx context.Context, bookID, userID int64) (*model.Favorite, error) {
	return m.findFn(ctx, bookID, userID)
}
func (m *repoMock) Delete(ctx context.Context, favoriteID int64) error {
	return m.deleteFn(ctx, favoriteID)
}
func (m *repoMock) ListByUser(ctx context.Context, userID int64) ([]favoritesvc.ListRow, error) {
	return m.listFn(ctx, userID)
}

func TestAdd_IdempotentDuplicate(t *testing.T) {
	row := &model.Favorite{ID: 3, BookID: 42, UserID: 7}
	calls := 0
	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return true, nil },
		insertFn: func(ctx context.Context, bookID, userID int64) (*model.Favorite, bool, error) {
			calls++
			return row, calls == 1, nil
		},
	}
	s := favoritesvc.New(m)

	first, err := s.Add(context.Background(), 7, 42)
	if err != nil || first.Already {
		t.Fatalf("first add: out=%+v err=%v", first, err)
	}
	second, err := s.Add(context.Background(), 7, 42)
	if err != nil {
		t.Fatalf("second add error: %v", err)
	}
	if !second.Already || second.Favorite.ID != row.ID {
		t.Fatalf("second add should report the existing row, got %+v", second)
	}
}

func TestAdd_BookNotFound(t *testing.T) {
	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return false, nil },
	}
	s := favoritesvc.New(m)
	_, err := s.Add(context.Background(), 7, 404)
	if favoritesvc.Code(err) != favoritesvc.ErrBookNotFound {
		t.Fatalf("got %v; want BOOK_NOT_FOUND", err)
	}
}

func TestRemove_NotFound(t *testing.T) {
	m := &repoMock{
		findFn: func(ctx context.Context, bookID, userID int64) (*model.Favorite, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := favoritesvc.New(m)
	err := s.Remove(context.Background(), 7, 42)
	if favoritesvc.Code(err) != favoritesvc.ErrFavoriteNotFound {
		t.Fatalf("got %v; want FAVORITE_NOT_FOUND", err)
	}
}

func TestRemove_Success(t *testing.T) {
	var deletedID int64
	m := &repoMock{
		findFn: func(ctx context.Context, bookID, userID int64) (*model.Favorite, error) {
			return &model.Favorite{ID: 3, BookID: bookID, UserID: userID}, nil
		},
		deleteFn: func(ctx context.Context, favoriteID int64) error {
			deletedID = favoriteID
			return nil
		},
	}
	s := favoritesvc.New(m)
	if err := s.Remove(context.Background(), 7, 42); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if deletedID != 3 {
		t.Fatalf("deleted id %d; want 3", deletedID)
	}
}
