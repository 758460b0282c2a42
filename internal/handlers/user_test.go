package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/habit-board-api/internal/constants"
	"github.com/yukikurage/habit-board-api/internal/dto"
	"github.com/yukikurage/habit-board-api/internal/models"
	"github.com/yukikurage/habit-board-api/internal/repository"
	"github.com/yukikurage/habit-board-api/internal/services"
)

func setupUserTest(t *testing.T) (*gorm.DB, *gin.Engine, *models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	user := &models.User{
		Name:         "Mina",
		Email:        "mina@example.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleStudent,
		GoalCount:    constants.DefaultGoalCount,
	}
	require.NoError(t, db.Create(user).Error)

	handler := NewUserHandler(services.NewUserService(repository.NewUserRepository(db)))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, user.ID)
	})
	users := r.Group("/api/users")
	{
		users.PUT("/me/habit", handler.SetHabit)
		users.PUT("/me/goal", handler.SetGoal)
		users.GET("/me/progress", handler.GetProgress)
	}

	return db, r, user
}

func doUserJSON(t *testing.T, r *gin.Engine, method, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserHandler_SetHabit(t *testing.T) {
	db, r, user := setupUserTest(t)

	w := doUserJSON(t, r, http.MethodPut, "/api/users/me/habit", map[string]string{
		"habit": "read 20 pages",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "read 20 pages", response.Habit)

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, user.ID).Error)
	require.Equal(t, "read 20 pages", gotUser.Habit)
}

func TestUserHandler_SetHabit_Blank(t *testing.T) {
	_, r, _ := setupUserTest(t)

	w := doUserJSON(t, r, http.MethodPut, "/api/users/me/habit", map[string]string{
		"habit": "   ",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_SetGoal(t *testing.T) {
	db, r, user := setupUserTest(t)

	w := doUserJSON(t, r, http.MethodPut, "/api/users/me/goal", map[string]int{
		"goal_count": 60,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, user.ID).Error)
	require.Equal(t, 60, gotUser.GoalCount)
}

func TestUserHandler_SetGoal_Invalid(t *testing.T) {
	_, r, _ := setupUserTest(t)

	w := doUserJSON(t, r, http.MethodPut, "/api/users/me/goal", map[string]int{
		"goal_count": -5,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_GetProgress(t *testing.T) {
	db, r, user := setupUserTest(t)

	require.NoError(t, db.Model(user).Updates(map[string]interface{}{
		"completed_count":     4,
		"streak_days":         2,
		"last_completed_date": "2024-01-09",
	}).Error)

	w := doUserJSON(t, r, http.MethodGet, "/api/users/me/progress", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ProgressDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 4, response.CompletedCount)
	require.Equal(t, 2, response.StreakDays)
	require.Equal(t, constants.DefaultGoalCount, response.GoalCount)
	require.Equal(t, "2024-01-09", response.LastCompletedDate)
}
