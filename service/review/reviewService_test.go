package reviewsvc_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Maksim124512M/LibraFlow/model"
	reviewsvc "github.com/Maksim124512M/LibraFlow/service/review"
)

type repoMock struct {
	checkBookFn func(ctx context.Context, bookID int64) (bool, error)
	createFn    func(ctx context.Context, rv *model.Review) error
	listFn      func(ctx context.Context, bookID int64) ([]model.Review, error)
	byIDFn      func(ctx context.Context, id int64) (*model.Review, error)
	updateFn    func(ctx context.Context, id int64, content string) error
	deleteFn    func(ctx context.Context, id int64) error
}

func (m *repoMock) CheckBookExists(ctx context.Context, bookID int64) (bool, error) {
	return m.checkBookFn(ctx, bookID)
}
func (m *repoMock) Create(ctx context.Context, rv *model.Review) error { return m.createFn(ctx, rv) }
func (m *repoMock) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	return m.listFn(ctx, bookID)
}
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Review, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) UpdateContent(ctx context.Context, id int64, content string) error {
	return m.updateFn(ctx, id, content)
}
func (m *repoMock) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }

func existingReview() *model.Review {
	return &model.Review{ID: 5, BookID: 42, AuthorID: 7, Content: "great read"}
}

func TestCreate_BookMustExist(t *testing.T) {
	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return false, nil },
	}
	s := reviewsvc.New(m)
	_, err := s.Create(context.Background(), 7, 404, "text")
	if reviewsvc.Code(err) != reviewsvc.ErrBookNotFound {
		t.Fatalf("got %v; want BOOK_NOT_FOUND", err)
	}
}

func TestUpdate_AuthorOnly(t *testing.T) {
	m := &repoMock{
		byIDFn:   func(ctx context.Context, id int64) (*model.Review, error) { return existingReview(), nil },
		updateFn: func(ctx context.Context, id int64, content string) error { return nil },
	}
	s := reviewsvc.New(m)

	// even an admin may not rewrite someone else's review
	admin := model.Actor{ID: 1, Role: model.RoleAdmin}
	if _, err := s.Update(context.Background(), admin, 5, "edited"); reviewsvc.Code(err) != reviewsvc.ErrNotAuthor {
		t.Fatalf("admin update got %v; want NOT_AUTHOR", err)
	}

	author := model.Actor{ID: 7, Role: model.RoleMember}
	if _, err := s.Update(context.Background(), author, 5, "edited"); err != nil {
		t.Fatalf("author update error: %v", err)
	}
}

func TestDelete_AuthorOrElevated(t *testing.T) {
	deleted := 0
	m := &repoMock{
		byIDFn:   func(ctx context.Context, id int64) (*model.Review, error) { return existingReview(), nil },
		deleteFn: func(ctx context.Context, id int64) error { deleted++; return nil },
	}
	s := reviewsvc.New(m)

	stranger := model.Actor{ID: 9, Role: model.RoleMember}
	if err := s.Delete(context.Background(), stranger, 5); reviewsvc.Code(err) != reviewsvc.ErrNotAuthor {
		t.Fatalf("stranger delete got %v; want NOT_AUTHOR", err)
	}
	author := model.Actor{ID: 7, Role: model.RoleMember}
	if err := s.Delete(context.Background(), author, 5); err != nil {
		t.Fatalf("author delete error: %v", err)
	}
	admin := model.Actor{ID: 1, Role: model.RoleAdmin}
	if err := s.Delete(context.Background(), admin, 5); err != nil {
		t.Fatalf("admin delete error: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted %d; want 2", deleted)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Review, error) { return nil, sql.ErrNoRows },
	}
	s := reviewsvc.New(m)
	_, err := s.Update(context.Background(), model.Actor{ID: 7}, 99, "x")
	if reviewsvc.Code(err) != reviewsvc.ErrReviewNotFound {
		t.Fatalf("got %v; want REVIEW_NOT_FOUND", err)
	}
}
