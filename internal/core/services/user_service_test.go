package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sebodomatias/bookstore_pos_app/internal/apperrors"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	portssvc "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/dto"
	"github.com/sebodomatias/bookstore_pos_app/internal/utils"
)

// MockUserRepository is a mock type for the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, deletedBy, deletedAt)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiresAt *time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByRefreshTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "clerk1",
		Password: "s3cretpass",
		Name:     "Clerk One",
		Email:    "clerk1@example.com",
	}

	suite.mockRepo.On("FindUserByUsername", ctx, "clerk1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "clerk1" &&
			u.AuthProvider == domain.ProviderLocal &&
			u.PasswordHash != "" &&
			u.PasswordHash != req.Password
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.True(utils.CheckPasswordHash(req.Password, user.PasswordHash), "stored hash should verify against the password")

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Username: "clerk1"}
	req := dto.CreateUserRequest{Username: "clerk1", Password: "s3cretpass", Name: "X"}

	suite.mockRepo.On("FindUserByUsername", ctx, "clerk1").Return(existing, nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "correct-horse"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "clerk1", PasswordHash: hash}

	suite.mockRepo.On("FindUserByUsername", ctx, "clerk1").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "clerk1", password)

	suite.Require().NoError(err)
	suite.Equal(user, got)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("right-password")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "clerk1", PasswordHash: hash}

	suite.mockRepo.On("FindUserByUsername", ctx, "clerk1").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "clerk1", "wrong-password")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUsername() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.AuthenticateUser(ctx, "ghost", "whatever")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized, "unknown usernames should look like bad credentials")
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_GoogleOnlyAccount() {
	ctx := context.Background()
	// Accounts created via Google login have no password hash.
	user := &domain.User{UserID: uuid.NewString(), Username: "g@example.com", AuthProvider: domain.ProviderGoogle}

	suite.mockRepo.On("FindUserByUsername", ctx, "g@example.com").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "g@example.com", "anything")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestUpdateUser_OtherAccountForbidden() {
	ctx := context.Background()
	name := "New Name"
	req := dto.UpdateUserRequest{Name: &name}

	user, err := suite.service.UpdateUser(ctx, "target-user", req, "other-user")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	original := &domain.User{UserID: userID, Username: "clerk1", Name: "Old Name"}
	name := "New Name"
	req := dto.UpdateUserRequest{Name: &name}

	suite.mockRepo.On("FindUserByID", ctx, userID).Return(original, nil).Once()
	suite.mockRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == userID && u.Name == "New Name" && u.LastUpdatedBy == userID
	})).Return(nil).Once()

	user, err := suite.service.UpdateUser(ctx, userID, req, userID)

	suite.Require().NoError(err)
	suite.Equal("New Name", user.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_OtherAccountForbidden() {
	ctx := context.Background()

	err := suite.service.DeleteUser(ctx, "target-user", "other-user")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("FindUserByID", ctx, userID).Return(&domain.User{UserID: userID}, nil).Once()
	suite.mockRepo.On("MarkUserDeleted", ctx, userID, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, userID, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_ExistingByEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "g@example.com"}

	suite.mockRepo.On("FindUserByEmail", ctx, "g@example.com").Return(existing, nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, &domain.GoogleUserInfo{ID: "sub-1", Email: "g@example.com", Name: "G"})

	suite.Require().NoError(err)
	suite.Equal(existing, user)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_CreatesOnFirstLogin() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "new@example.com" && u.AuthProvider == domain.ProviderGoogle && u.PasswordHash == ""
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, &domain.GoogleUserInfo{ID: "sub-2", Email: "new@example.com", Name: "New"})

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(domain.ProviderGoogle, user.AuthProvider)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_NoEmail() {
	ctx := context.Background()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, &domain.GoogleUserInfo{ID: "sub-3"})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestListUsers_ClampsLimit() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("FindUsers", ctx, 20, 0).Return(nil, expectedErr).Once()

	users, err := suite.service.ListUsers(ctx, 0, -5)

	suite.Require().Error(err)
	suite.Nil(users)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
