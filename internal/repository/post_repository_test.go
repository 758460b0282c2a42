package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/habit-board-api/internal/models"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func createStudent(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleStudent,
		Habit:        "read 30 minutes",
		GoalCount:    30,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, authorID uint64) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:    "day 12",
		Content:  "done before breakfast",
		AuthorID: authorID,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestApproveAndCredit_FirstCompletion(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)

	author := createStudent(t, db, "mina")
	post := createPost(t, db, author.ID)

	today := date(2024, 1, 10)
	require.NoError(t, repo.ApproveAndCredit(post.ID, author.ID, today, time.UTC))

	var gotPost models.Post
	require.NoError(t, db.First(&gotPost, post.ID).Error)
	require.True(t, gotPost.Approved)

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, author.ID).Error)
	require.Equal(t, 1, gotUser.CompletedCount)
	require.Equal(t, 1, gotUser.StreakDays)
	require.Equal(t, "2024-01-10", gotUser.LastCompletedDate)
}

func TestApproveAndCredit_ConsecutiveDayExtendsStreak(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)

	author := createStudent(t, db, "mina")
	require.NoError(t, db.Model(author).Updates(map[string]interface{}{
		"completed_count":     4,
		"streak_days":         3,
		"last_completed_date": "2024-01-09",
	}).Error)

	post := createPost(t, db, author.ID)

	require.NoError(t, repo.ApproveAndCredit(post.ID, author.ID, date(2024, 1, 10), time.UTC))

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, author.ID).Error)
	require.Equal(t, 5, gotUser.CompletedCount)
	require.Equal(t, 4, gotUser.StreakDays)
	require.Equal(t, "2024-01-10", gotUser.LastCompletedDate)
}

func TestApproveAndCredit_GapResetsStreak(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)

	author := createStudent(t, db, "mina")
	require.NoError(t, db.Model(author).Updates(map[string]interface{}{
		"completed_count":     7,
		"streak_days":         7,
		"last_completed_date": "2024-01-05",
	}).Error)

	post := createPost(t, db, author.ID)

	require.NoError(t, repo.ApproveAndCredit(post.ID, author.ID, date(2024, 1, 10), time.UTC))

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, author.ID).Error)
	require.Equal(t, 8, gotUser.CompletedCount)
	require.Equal(t, 1, gotUser.StreakDays)
}

func TestApproveAndCredit_SameDaySkipsCreditButApproves(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)

	author := createStudent(t, db, "mina")
	today := date(2024, 1, 10)
	require.NoError(t, db.Model(author).Updates(map[string]interface{}{
		"completed_count":     5,
		"streak_days":         2,
		"last_completed_date": "2024-01-10",
	}).Error)

	post := createPost(t, db, author.ID)

	require.NoError(t, repo.ApproveAndCredit(post.ID, author.ID, today, time.UTC))

	var gotPost models.Post
	require.NoError(t, db.First(&gotPost, post.ID).Error)
	require.True(t, gotPost.Approved, "approval must commit even when the credit is skipped")

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, author.ID).Error)
	require.Equal(t, 5, gotUser.CompletedCount)
	require.Equal(t, 2, gotUser.StreakDays)
}

func TestApproveAndCredit_SecondAttemptFails(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)

	author := createStudent(t, db, "mina")
	require.NoError(t, db.Model(author).Updates(map[string]interface{}{
		"completed_count":     4,
		"last_completed_date": "2024-01-09",
	}).Error)

	post := createPost(t, db, author.ID)
	today := date(2024, 1, 10)

	require.NoError(t, repo.ApproveAndCredit(post.ID, author.ID, today, time.UTC))

	err := repo.ApproveAndCredit(post.ID, author.ID, today, time.UTC)
	require.ErrorIs(t, err, ErrPostApprovedOrMissing)

	// The losing attempt must leave the counter untouched.
	var gotUser models.User
	require.NoError(t, db.First(&gotUser, author.ID).Error)
	require.Equal(t, 5, gotUser.CompletedCount)
}

func TestApproveAndCredit_MissingPost(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)

	author := createStudent(t, db, "mina")

	err := repo.ApproveAndCredit(9999, author.ID, date(2024, 1, 10), time.UTC)
	require.ErrorIs(t, err, ErrPostApprovedOrMissing)
}

func TestApproveAndCredit_MissingAuthorRollsBackApproval(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)

	author := createStudent(t, db, "mina")
	post := createPost(t, db, author.ID)

	err := repo.ApproveAndCredit(post.ID, 9999, date(2024, 1, 10), time.UTC)
	require.ErrorIs(t, err, ErrAuthorMissing)

	// No approved-but-uncredited state may survive the abort.
	var gotPost models.Post
	require.NoError(t, db.First(&gotPost, post.ID).Error)
	require.False(t, gotPost.Approved)
}

func TestApproveAndCredit_EasternAnchorCreditsOncePerDay(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)

	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	author := createStudent(t, db, "mina")
	first := createPost(t, db, author.ID)
	second := createPost(t, db, author.ID)

	// 15:30 UTC on Jan 9 is already 00:30 on Jan 10 in Seoul; 10:00 UTC on
	// Jan 10 is 19:00 the same Seoul day. The stored day must come back
	// unchanged so the second approval is recognized as the same day.
	require.NoError(t, repo.ApproveAndCredit(first.ID, author.ID,
		time.Date(2024, 1, 9, 15, 30, 0, 0, time.UTC), seoul))

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, author.ID).Error)
	require.Equal(t, "2024-01-10", gotUser.LastCompletedDate)

	require.NoError(t, repo.ApproveAndCredit(second.ID, author.ID,
		time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC), seoul))

	require.NoError(t, db.First(&gotUser, author.ID).Error)
	require.Equal(t, 1, gotUser.CompletedCount)
	require.Equal(t, 1, gotUser.StreakDays)
	require.Equal(t, "2024-01-10", gotUser.LastCompletedDate)
}

func TestApproveAndCredit_TwoPostsSameDayCreditOnce(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPostRepository(db)

	author := createStudent(t, db, "mina")
	first := createPost(t, db, author.ID)
	second := createPost(t, db, author.ID)

	today := date(2024, 1, 10)
	require.NoError(t, repo.ApproveAndCredit(first.ID, author.ID, today, time.UTC))
	require.NoError(t, repo.ApproveAndCredit(second.ID, author.ID, today, time.UTC))

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, author.ID).Error)
	require.Equal(t, 1, gotUser.CompletedCount)

	// Both posts still end up approved.
	var approved int64
	require.NoError(t, db.Model(&models.Post{}).Where("approved = ?", true).Count(&approved).Error)
	require.EqualValues(t, 2, approved)
}
