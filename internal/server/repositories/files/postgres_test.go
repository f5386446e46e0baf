package files

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

const (
	nodeID  = "0b6f1f0e-8d2a-4c59-9a0e-6a3f4c1d2e01"
	ownerID = "6e7d2c11-3b4a-4f0e-8c9d-0a1b2c3d4e5f"
)

var nodeColumns = []string{"id", "user_id", "name", "type", "is_public", "parent_id", "local_path", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+files\s*\(user_id,\s*name,\s*type,\s*is_public,\s*parent_id,\s*local_path\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id::text,\s*created_at\s*$`

	mock.ExpectQuery(q).
		WithArgs(ownerID, "photo.png", "image", true, "0", "/tmp/store/abc").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(nodeID, time.Now()))

	got, err := repo.Create(context.Background(), &models.FileNode{
		UserID:    ownerID,
		Name:      "photo.png",
		Type:      models.TypeImage,
		IsPublic:  true,
		ParentID:  common.RootParentID,
		LocalPath: "/tmp/store/abc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != nodeID {
		t.Fatalf("unexpected id: %q", got.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+files`).WillReturnError(errors.New("boom"))

	_, err := repo.Create(context.Background(), &models.FileNode{UserID: ownerID, Name: "a", Type: models.TypeFolder, ParentID: "0"})
	if err == nil || !regexp.MustCompile(`db error: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+id::text,.*FROM\s+files\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs(nodeID).
		WillReturnRows(sqlmock.NewRows(nodeColumns).
			AddRow(nodeID, ownerID, "docs", "folder", false, "0", "", time.Now()))

	got, err := repo.GetByID(context.Background(), nodeID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != models.TypeFolder || got.UserID != ownerID || !got.IsRoot() {
		t.Fatalf("unexpected node: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+files\s+WHERE\s+id`).
		WithArgs(nodeID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), nodeID)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestGetByID_MalformedID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	_, err := repo.GetByID(context.Background(), "42")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected query: %v", err)
	}
}

func TestGetByIDAndUser_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+files\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs(nodeID, ownerID).
		WillReturnRows(sqlmock.NewRows(nodeColumns).
			AddRow(nodeID, ownerID, "a.txt", "file", false, "0", "/data/x", time.Now()))

	got, err := repo.GetByIDAndUser(context.Background(), nodeID, ownerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LocalPath != "/data/x" {
		t.Fatalf("unexpected node: %+v", got)
	}
}

func TestListByParent_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)FROM\s+files\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+parent_id\s*=\s*\$2\s+ORDER\s+BY\s+seq\s+LIMIT\s+\$3\s+OFFSET\s+\$4`

	rows := sqlmock.NewRows(nodeColumns).
		AddRow("a1000000-0000-4000-8000-000000000001", ownerID, "one", "file", false, "0", "/p/1", time.Now()).
		AddRow("a1000000-0000-4000-8000-000000000002", ownerID, "two", "image", true, "0", "/p/2", time.Now())
	mock.ExpectQuery(q).
		WithArgs(ownerID, "0", 20, 40).
		WillReturnRows(rows)

	got, err := repo.ListByParent(context.Background(), ownerID, "0", 20, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "one" || got[1].Type != models.TypeImage {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByParent_ScanError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id"}).AddRow("x")
	mock.ExpectQuery(`FROM\s+files`).WillReturnRows(rows)

	_, err := repo.ListByParent(context.Background(), ownerID, "0", 20, 0)
	if err == nil || !regexp.MustCompile(`scan error`).MatchString(err.Error()) {
		t.Fatalf("expected scan error, got %v", err)
	}
}

func TestListByParent_MalformedOwnerIsEmpty(t *testing.T) {
	repo, _, db := newRepoWithMock(t)
	defer db.Close()

	got, err := repo.ListByParent(context.Background(), "nobody", "0", 20, 0)
	if err != nil || len(got) != 0 {
		t.Fatalf("want empty result, got %v, %v", got, err)
	}
}

func TestSetPublic(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `^UPDATE\s+files\s+SET\s+is_public\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1$`

	mock.ExpectExec(q).WithArgs(nodeID, true).WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.SetPublic(context.Background(), nodeID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec(q).WithArgs(nodeID, false).WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.SetPublic(context.Background(), nodeID, false); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}

	mock.ExpectExec(q).WithArgs(nodeID, true).WillReturnError(errors.New("db down"))
	if err := repo.SetPublic(context.Background(), nodeID, true); err == nil || !regexp.MustCompile(`db error`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM files`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))

	n, err := repo.Count(context.Background())
	if err != nil || n != 12 {
		t.Fatalf("want 12, got %d (%v)", n, err)
	}
}
