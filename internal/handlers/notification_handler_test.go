package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sraws-app/sraws/backend/internal/models"
	"github.com/sraws-app/sraws/backend/internal/repositories"
)

type mockPostRepo struct{ mock.Mock }

func (m *mockPostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}
func (m *mockPostRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if p, _ := args.Get(0).(*models.Post); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPostRepo) GetPostsByPoster(ctx context.Context, posterID uint, skip, limit int64) ([]models.Post, error) {
	args := m.Called(ctx, posterID, skip, limit)
	if ps, _ := args.Get(0).([]models.Post); ps != nil {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPostRepo) GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	args := m.Called(ctx, skip, limit)
	if ps, _ := args.Get(0).([]models.Post); ps != nil {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPostRepo) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	return m.Called(ctx, id, post).Error(0)
}
func (m *mockPostRepo) DeletePost(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockPostRepo) IncrementLikeCount(ctx context.Context, postID string) error {
	return m.Called(ctx, postID).Error(0)
}
func (m *mockPostRepo) DecrementLikeCount(ctx context.Context, postID string) error {
	return m.Called(ctx, postID).Error(0)
}
func (m *mockPostRepo) IncrementCommentCount(ctx context.Context, postID string) error {
	return m.Called(ctx, postID).Error(0)
}
func (m *mockPostRepo) DecrementCommentCount(ctx context.Context, postID string) error {
	return m.Called(ctx, postID).Error(0)
}
func (m *mockPostRepo) IncrementViewCount(ctx context.Context, postID string) error {
	return m.Called(ctx, postID).Error(0)
}

type mockCommentRepo struct{ mock.Mock }

func (m *mockCommentRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}
func (m *mockCommentRepo) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if c, _ := args.Get(0).(*models.Comment); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCommentRepo) GetCommentsByPostID(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	if cs, _ := args.Get(0).([]models.Comment); cs != nil {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCommentRepo) DeleteComment(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockMessageRepo struct{ mock.Mock }

func (m *mockMessageRepo) FindOrCreateConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	args := m.Called(ctx, userA, userB)
	if c, _ := args.Get(0).(*models.Conversation); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMessageRepo) GetConversationByID(ctx context.Context, id string) (*models.Conversation, error) {
	args := m.Called(ctx, id)
	if c, _ := args.Get(0).(*models.Conversation); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMessageRepo) GetConversationsByUser(ctx context.Context, userID uint) ([]models.Conversation, error) {
	args := m.Called(ctx, userID)
	if cs, _ := args.Get(0).([]models.Conversation); cs != nil {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMessageRepo) TouchConversation(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}
func (m *mockMessageRepo) CreateMessage(ctx context.Context, message *models.Message) error {
	return m.Called(ctx, message).Error(0)
}
func (m *mockMessageRepo) GetMessageByID(ctx context.Context, id string) (*models.Message, error) {
	args := m.Called(ctx, id)
	if msg, _ := args.Get(0).(*models.Message); msg != nil {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMessageRepo) GetMessagesByConversation(ctx context.Context, conversationID primitive.ObjectID) ([]models.Message, error) {
	args := m.Called(ctx, conversationID)
	if ms, _ := args.Get(0).([]models.Message); ms != nil {
		return ms, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMessageRepo) CountUnreadMessages(ctx context.Context, recipientID uint) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockMessageRepo) MarkMessageRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// --- helpers ---

func newNotificationHandler() (*NotificationHandler, *mockNotificationRepo, *mockUserRepo, *mockPostRepo) {
	notifRepo := new(mockNotificationRepo)
	userRepo := new(mockUserRepo)
	postRepo := new(mockPostRepo)
	commentRepo := new(mockCommentRepo)
	messageRepo := new(mockMessageRepo)
	h := NewNotificationHandler(notifRepo, userRepo, postRepo, commentRepo, messageRepo)
	return h, notifRepo, userRepo, postRepo
}

func notificationRequest(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// --- tests ---

func TestGetNotificationsInvalidUserID(t *testing.T) {
	h, _, _, _ := newNotificationHandler()
	c, _ := notificationRequest(http.MethodGet, "/")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.GetNotifications(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestGetNotificationsEnriched(t *testing.T) {
	h, notifRepo, userRepo, postRepo := newNotificationHandler()

	postID := primitive.NewObjectID()
	stored := []models.Notification{{
		ID:          primitive.NewObjectID(),
		Type:        models.NotificationLike,
		SenderID:    7,
		RecipientID: 2,
		PostID:      &postID,
		CreatedAt:   time.Now(),
	}}
	sender := &models.User{Username: "ayesha"}
	sender.ID = 7
	post := &models.Post{ID: postID, PosterID: 2, Title: "Pothole on 5th"}

	notifRepo.On("GetByRecipient", mock.Anything, uint(2), mock.Anything).Return(stored, nil)
	userRepo.On("GetUserByID", uint(7)).Return(sender, nil)
	postRepo.On("GetPostByID", mock.Anything, postID.Hex()).Return(post, nil)

	c, rec := notificationRequest(http.MethodGet, "/")
	c.SetParamNames("id")
	c.SetParamValues("2")

	require.NoError(t, h.GetNotifications(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []models.EnrichedNotification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "ayesha", got[0].Sender.Username)
	require.NotNil(t, got[0].Post)
	assert.Equal(t, "Pothole on 5th", got[0].Post.Title)
	assert.Equal(t, "ayesha liked your post", got[0].Text())
}

func TestGetNotificationsFilterPassthrough(t *testing.T) {
	h, notifRepo, _, _ := newNotificationHandler()

	var captured repositories.NotificationFilter
	notifRepo.On("GetByRecipient", mock.Anything, uint(2), mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(repositories.NotificationFilter)
		}).
		Return([]models.Notification{}, nil)

	c, _ := notificationRequest(http.MethodGet, "/?type=like&window=24h")
	c.SetParamNames("id")
	c.SetParamValues("2")

	require.NoError(t, h.GetNotifications(c))
	assert.Equal(t, "like", captured.Type)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -1), captured.Since, 2*time.Second)
}

func TestGetNotificationsSearchMatchesDescription(t *testing.T) {
	h, notifRepo, userRepo, _ := newNotificationHandler()

	stored := []models.Notification{
		{ID: primitive.NewObjectID(), Type: models.NotificationLike, SenderID: 7, RecipientID: 2},
		{ID: primitive.NewObjectID(), Type: models.NotificationComment, SenderID: 7, RecipientID: 2},
	}
	sender := &models.User{Username: "ayesha"}
	sender.ID = 7

	notifRepo.On("GetByRecipient", mock.Anything, uint(2), mock.Anything).Return(stored, nil)
	userRepo.On("GetUserByID", uint(7)).Return(sender, nil)

	c, rec := notificationRequest(http.MethodGet, "/?q=liked")
	c.SetParamNames("id")
	c.SetParamValues("2")

	require.NoError(t, h.GetNotifications(c))

	var got []models.EnrichedNotification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationLike, got[0].Type)
}

func TestGetNotificationsUnresolvedSenderFallback(t *testing.T) {
	h, notifRepo, userRepo, _ := newNotificationHandler()

	stored := []models.Notification{
		{ID: primitive.NewObjectID(), Type: models.NotificationLike, SenderID: 99, RecipientID: 2},
	}
	notifRepo.On("GetByRecipient", mock.Anything, uint(2), mock.Anything).Return(stored, nil)
	userRepo.On("GetUserByID", uint(99)).Return(nil, errors.New("record not found"))

	c, rec := notificationRequest(http.MethodGet, "/")
	c.SetParamNames("id")
	c.SetParamValues("2")

	require.NoError(t, h.GetNotifications(c))

	var got []models.EnrichedNotification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Unknown user liked your post", got[0].Text())
}

func TestGetNotificationsStorageError(t *testing.T) {
	h, notifRepo, _, _ := newNotificationHandler()
	notifRepo.On("GetByRecipient", mock.Anything, uint(2), mock.Anything).Return(nil, errors.New("connection reset"))

	c, _ := notificationRequest(http.MethodGet, "/")
	c.SetParamNames("id")
	c.SetParamValues("2")

	err := h.GetNotifications(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
}

func TestGetUnreadCount(t *testing.T) {
	h, notifRepo, _, _ := newNotificationHandler()
	notifRepo.On("GetUnreadCount", mock.Anything, uint(2)).Return(int64(4), nil)

	c, rec := notificationRequest(http.MethodGet, "/")
	c.SetParamNames("id")
	c.SetParamValues("2")

	require.NoError(t, h.GetUnreadCount(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count": 4}`, rec.Body.String())
}

func TestMarkAsReadInvalidID(t *testing.T) {
	h, _, _, _ := newNotificationHandler()
	c, _ := notificationRequest(http.MethodPut, "/")
	c.SetParamNames("id")
	c.SetParamValues("not-a-hex-id")

	err := h.MarkAsRead(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestMarkAsRead(t *testing.T) {
	h, notifRepo, _, _ := newNotificationHandler()
	id := primitive.NewObjectID()
	notifRepo.On("MarkAsRead", mock.Anything, id).Return(nil)

	c, rec := notificationRequest(http.MethodPut, "/")
	c.SetParamNames("id")
	c.SetParamValues(id.Hex())

	require.NoError(t, h.MarkAsRead(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "Notification marked as read"}`, rec.Body.String())
}

func TestMarkAllAsRead(t *testing.T) {
	h, notifRepo, _, _ := newNotificationHandler()
	notifRepo.On("MarkAllAsRead", mock.Anything, uint(2)).Return(nil)

	c, rec := notificationRequest(http.MethodPut, "/")
	c.SetParamNames("id")
	c.SetParamValues("2")

	require.NoError(t, h.MarkAllAsRead(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "All notifications marked as read"}`, rec.Body.String())
	notifRepo.AssertExpectations(t)
}

func TestGetGroupedNotifications(t *testing.T) {
	h, notifRepo, userRepo, _ := newNotificationHandler()

	now := time.Now()
	stored := []models.Notification{
		{ID: primitive.NewObjectID(), Type: models.NotificationLike, SenderID: 7, RecipientID: 2, CreatedAt: now},
		{ID: primitive.NewObjectID(), Type: models.NotificationComment, SenderID: 7, RecipientID: 2, CreatedAt: now.AddDate(0, 0, -1)},
	}
	sender := &models.User{Username: "ayesha"}
	sender.ID = 7
	notifRepo.On("GetByRecipient", mock.Anything, uint(2), mock.Anything).Return(stored, nil)
	userRepo.On("GetUserByID", uint(7)).Return(sender, nil)

	c, rec := notificationRequest(http.MethodGet, "/")
	c.SetParamNames("id")
	c.SetParamValues("2")

	require.NoError(t, h.GetGroupedNotifications(c))

	var groups []models.NotificationGroup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	require.Len(t, groups, 2)
	assert.Equal(t, now.Format("Mon Jan 02 2006"), groups[0].Date)
	require.Len(t, groups[0].Notifications, 1)
	require.Len(t, groups[1].Notifications, 1)
}
