package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/habit-board-api/internal/constants"
	"github.com/yukikurage/habit-board-api/internal/database"
	"github.com/yukikurage/habit-board-api/internal/dto"
	"github.com/yukikurage/habit-board-api/internal/middleware"
	"github.com/yukikurage/habit-board-api/internal/models"
	"github.com/yukikurage/habit-board-api/internal/repository"
	"github.com/yukikurage/habit-board-api/internal/services"
)

// PostHandlerTestSuite defines the test suite for PostHandler
type PostHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *PostHandler
}

// SetupTest runs before each test
func (suite *PostHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
	)
	suite.Require().NoError(err)

	// Middleware loads the current user through the default database
	database.SetDB(suite.db)

	postRepo := repository.NewPostRepository(suite.db)
	postService := services.NewPostService(postRepo, nil, time.UTC)
	suite.handler = NewPostHandler(postService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *PostHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *PostHandlerTestSuite) createTestUser(email string, role models.UserRole) *models.User {
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         role,
		GoalCount:    30,
	}
	suite.db.Create(user)
	return user
}

func (suite *PostHandlerTestSuite) createTestPost(authorID uint64) *models.Post {
	post := &models.Post{
		Title:    "day 1",
		Content:  "finished my reading",
		AuthorID: authorID,
	}
	suite.db.Create(post)
	return post
}

// newRouter builds a router with session auth replaced by a middleware that
// injects the given user ID.
func (suite *PostHandlerTestSuite) newRouter(userID uint64) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
	})

	posts := r.Group("/api/posts")
	{
		posts.GET("", suite.handler.ListPosts)
		posts.POST("", suite.handler.CreatePost)
		posts.GET("/:id", suite.handler.GetPost)
		posts.DELETE("/:id", middleware.RequireUser(), suite.handler.DeletePost)
		posts.POST("/:id/approve", middleware.RequireUser(), middleware.RequireTeacher(), suite.handler.ApprovePost)
	}

	return r
}

func (suite *PostHandlerTestSuite) doJSON(r *gin.Engine, method, url string, payload any) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (suite *PostHandlerTestSuite) TestCreatePost() {
	author := suite.createTestUser("mina@example.com", models.RoleStudent)
	r := suite.newRouter(author.ID)

	w := suite.doJSON(r, http.MethodPost, "/api/posts", map[string]string{
		"title":     "day 1",
		"content":   "finished my reading",
		"image_url": "https://cdn.example.com/proof.jpg",
	})

	suite.Equal(http.StatusCreated, w.Code)

	var response dto.PostDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("day 1", response.Title)
	suite.False(response.Approved)
	suite.Equal(author.ID, response.AuthorID)
}

func (suite *PostHandlerTestSuite) TestListPosts_NewestFirst() {
	author := suite.createTestUser("mina@example.com", models.RoleStudent)

	older := suite.createTestPost(author.ID)
	suite.db.Model(older).Update("created_at", time.Now().Add(-time.Hour))
	newer := suite.createTestPost(author.ID)

	r := suite.newRouter(author.ID)
	w := suite.doJSON(r, http.MethodGet, "/api/posts", nil)

	suite.Equal(http.StatusOK, w.Code)

	var response struct {
		Posts []dto.PostDTO `json:"posts"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Posts, 2)
	suite.Equal(newer.ID, response.Posts[0].ID)
	suite.Equal(older.ID, response.Posts[1].ID)
}

func (suite *PostHandlerTestSuite) TestApprovePost_AsTeacher() {
	author := suite.createTestUser("mina@example.com", models.RoleStudent)
	teacher := suite.createTestUser("teacher@example.com", models.RoleTeacher)
	post := suite.createTestPost(author.ID)

	r := suite.newRouter(teacher.ID)
	w := suite.doJSON(r, http.MethodPost, fmt.Sprintf("/api/posts/%d/approve", post.ID), nil)

	suite.Equal(http.StatusOK, w.Code)

	var response dto.PostDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.True(response.Approved)

	var gotUser models.User
	suite.Require().NoError(suite.db.First(&gotUser, author.ID).Error)
	suite.Equal(1, gotUser.CompletedCount)
	suite.Equal(1, gotUser.StreakDays)
}

func (suite *PostHandlerTestSuite) TestApprovePost_AsStudentForbidden() {
	author := suite.createTestUser("mina@example.com", models.RoleStudent)
	post := suite.createTestPost(author.ID)

	r := suite.newRouter(author.ID)
	w := suite.doJSON(r, http.MethodPost, fmt.Sprintf("/api/posts/%d/approve", post.ID), nil)

	suite.Equal(http.StatusForbidden, w.Code)

	var gotPost models.Post
	suite.Require().NoError(suite.db.First(&gotPost, post.ID).Error)
	suite.False(gotPost.Approved)
}

func (suite *PostHandlerTestSuite) TestApprovePost_AlreadyApproved() {
	author := suite.createTestUser("mina@example.com", models.RoleStudent)
	teacher := suite.createTestUser("teacher@example.com", models.RoleTeacher)
	post := suite.createTestPost(author.ID)

	r := suite.newRouter(teacher.ID)
	url := fmt.Sprintf("/api/posts/%d/approve", post.ID)

	w := suite.doJSON(r, http.MethodPost, url, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.doJSON(r, http.MethodPost, url, nil)
	suite.Equal(http.StatusConflict, w.Code)

	var gotUser models.User
	suite.Require().NoError(suite.db.First(&gotUser, author.ID).Error)
	suite.Equal(1, gotUser.CompletedCount)
}

func (suite *PostHandlerTestSuite) TestDeletePost_ByAuthor() {
	author := suite.createTestUser("mina@example.com", models.RoleStudent)
	post := suite.createTestPost(author.ID)

	r := suite.newRouter(author.ID)
	w := suite.doJSON(r, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), nil)

	suite.Equal(http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count)
	suite.Zero(count)
}

func (suite *PostHandlerTestSuite) TestDeletePost_ByOtherStudentForbidden() {
	author := suite.createTestUser("mina@example.com", models.RoleStudent)
	other := suite.createTestUser("other@example.com", models.RoleStudent)
	post := suite.createTestPost(author.ID)

	r := suite.newRouter(other.ID)
	w := suite.doJSON(r, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func TestPostHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PostHandlerTestSuite))
}
