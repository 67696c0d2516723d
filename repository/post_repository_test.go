package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/models"
)

func TestPostDeleteCascades(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `posts` WHERE `posts`.`id` = ?")).
		WithArgs(13).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `comments` WHERE post_id = ?")).
		WithArgs(13).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `post_tags` WHERE post_id = ?")).
		WithArgs(13).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, store.Delete(13))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostDeleteMissingRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `posts` WHERE `posts`.`id` = ?")).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, store.Delete(99), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Syncing to the set a post already carries must issue no tag writes at all:
// the delta is empty, so a repeated sync is a no-op.
func TestTagSyncIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostStore(db)

	post := &models.Post{
		ID:         7,
		Title:      "Post",
		Slug:       "post",
		Content:    "body",
		Status:     models.PostStatusDraft,
		UserID:     1,
		CategoryID: 1,
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `posts` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `tags`").
		WithArgs(2, 3).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))
	mock.ExpectQuery("SELECT `tag_id` FROM `post_tags`").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"tag_id"}).AddRow(2).AddRow(3))
	mock.ExpectCommit()

	require.NoError(t, store.Update(post, []uint{2, 3}, true))
	// no INSERT or DELETE against post_tags was expected or issued
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagSyncRejectsUnknownTag(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostStore(db)

	post := &models.Post{
		ID:         7,
		Title:      "Post",
		Slug:       "post",
		Content:    "body",
		Status:     models.PostStatusDraft,
		UserID:     1,
		CategoryID: 1,
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `posts` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `tags`").
		WithArgs(2, 3).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectRollback()

	assert.ErrorIs(t, store.Update(post, []uint{2, 3}, true), ErrUnknownTag)
	require.NoError(t, mock.ExpectationsWereMet())
}
