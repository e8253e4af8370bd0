package rating

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/Maksim124512M/LibraFlow/model"
)

type repoMock struct {
	checkBookFn func(ctx context.Context, bookID int64) (bool, error)
	insertFn    func(ctx context.Context, tx *sql.Tx, bookID, userID int64) (*model.Rating, bool, error)
	findFn      func(ctx context.Context, tx *sql.Tx, bookID, preferUser int64) (*model.Rating, error)
	deleteFn    func(ctx context.Context, tx *sql.Tx, ratingID int64) error
	adjustFn    func(ctx context.Context, tx *sql.Tx, bookID int64, delta int64) error
}

func (m *repoMock) CheckBookExists(ctx context.Context, bookID int64) (bool, error) {
	return m.checkBookFn(ctx, bookID)
}
func (m *repoMock) InsertIfAbsent(ctx context.Context, tx *sql.Tx, bookID, userID int64) (*model.Rating, bool, error) {
	return m.insertFn(ctx, tx, bookID, userID)
}
func (m *repoMock) FindForBookForUpdate(ctx context.Context, tx *sql.Tx, bookID, preferUser int64) (*model.Rating, error) {
	return m.findFn(ctx, tx, bookID, preferUser)
}
func (m *repoMock) Delete(ctx context.Context, tx *sql.Tx, ratingID int64) error {
	return m.deleteFn(ctx, tx, ratingID)
}
func (m *repoMock) AdjustBookRating(ctx context.Context, tx *sql.Tx, bookID int64, delta int64) error {
	return m.adjustFn(ctx, tx, bookID, delta)
}

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestLike_IncrementsOnceInsideTx(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var deltas []int64
	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return true, nil },
		insertFn: func(ctx context.Context, tx *sql.Tx, bookID, userID int64) (*model.Rating, bool, error) {
			return &model.Rating{ID: 1, BookID: bookID, UserID: userID}, true, nil
		},
		adjustFn: func(ctx context.Context, tx *sql.Tx, bookID int64, delta int64) error {
			deltas = append(deltas, delta)
			return nil
		},
	}
	s := New(db, m)

	out, err := s.Like(context.Background(), 7, 42)
	require.NoError(t, err)
	require.False(t, out.Already)
	require.Equal(t, []int64{1}, deltas)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLike_DuplicateDoesNotIncrement(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return true, nil },
		insertFn: func(ctx context.Context, tx *sql.Tx, bookID, userID int64) (*model.Rating, bool, error) {
			return &model.Rating{ID: 1, BookID: bookID, UserID: userID}, false, nil
		},
		adjustFn: func(ctx context.Context, tx *sql.Tx, bookID int64, delta int64) error {
			t.Fatal("counter must not move on duplicate like")
			return nil
		},
	}
	s := New(db, m)

	out, err := s.Like(context.Background(), 7, 42)
	require.NoError(t, err)
	require.True(t, out.Already)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLike_BookNotFound(t *testing.T) {
	db, _ := newDB(t)
	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return false, nil },
	}
	s := New(db, m)

	_, err := s.Like(context.Background(), 7, 404)
	require.Equal(t, ErrBookNotFound, Code(err))
}

func TestLike_RollsBackWhenCounterUpdateFails(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := sql.ErrConnDone
	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return true, nil },
		insertFn: func(ctx context.Context, tx *sql.Tx, bookID, userID int64) (*model.Rating, bool, error) {
			return &model.Rating{ID: 1}, true, nil
		},
		adjustFn: func(ctx context.Context, tx *sql.Tx, bookID int64, delta int64) error {
			return boom
		},
	}
	s := New(db, m)

	_, err := s.Like(context.Background(), 7, 42)
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDislike_DeletesAndDecrements(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var deltas []int64
	deleted := false
	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return true, nil },
		findFn: func(ctx context.Context, tx *sql.Tx, bookID, preferUser int64) (*model.Rating, error) {
			return &model.Rating{ID: 5, BookID: bookID, UserID: 7}, nil
		},
		deleteFn: func(ctx context.Context, tx *sql.Tx, ratingID int64) error {
			deleted = true
			return nil
		},
		adjustFn: func(ctx context.Context, tx *sql.Tx, bookID int64, delta int64) error {
			deltas = append(deltas, delta)
			return nil
		},
	}
	s := New(db, m)

	err := s.Dislike(context.Background(), model.Actor{ID: 7, Role: model.RoleMember}, 42)
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, []int64{-1}, deltas)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDislike_ForbiddenForStranger(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return true, nil },
		findFn: func(ctx context.Context, tx *sql.Tx, bookID, preferUser int64) (*model.Rating, error) {
			return &model.Rating{ID: 5, BookID: bookID, UserID: 7}, nil
		},
		deleteFn: func(ctx context.Context, tx *sql.Tx, ratingID int64) error {
			t.Fatal("delete must not run for a stranger")
			return nil
		},
	}
	s := New(db, m)

	err := s.Dislike(context.Background(), model.Actor{ID: 8, Role: model.RoleMember}, 42)
	require.Equal(t, ErrNotOwner, Code(err))
}

func TestDislike_AdminMayRemove(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return true, nil },
		findFn: func(ctx context.Context, tx *sql.Tx, bookID, preferUser int64) (*model.Rating, error) {
			return &model.Rating{ID: 5, BookID: bookID, UserID: 7}, nil
		},
		deleteFn: func(ctx context.Context, tx *sql.Tx, ratingID int64) error { return nil },
		adjustFn: func(ctx context.Context, tx *sql.Tx, bookID int64, delta int64) error { return nil },
	}
	s := New(db, m)

	err := s.Dislike(context.Background(), model.Actor{ID: 1, Role: model.RoleAdmin}, 42)
	require.NoError(t, err)
}

func TestDislike_NotFound(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return true, nil },
		findFn: func(ctx context.Context, tx *sql.Tx, bookID, preferUser int64) (*model.Rating, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := New(db, m)

	err := s.Dislike(context.Background(), model.Actor{ID: 7, Role: model.RoleMember}, 42)
	require.Equal(t, ErrRatingNotFound, Code(err))
}
