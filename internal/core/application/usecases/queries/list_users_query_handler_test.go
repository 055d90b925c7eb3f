package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/userrepo"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ListUsersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.ListUsersQueryHandler
	userRepo  *userrepo.GormUserRepository
}

func (suite *ListUsersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&userrepo.UserDTO{}))

	suite.handler = queries.NewListUsersQueryHandler(db)
	suite.userRepo = userrepo.NewGormUserRepository(db, mockAggregateTracker{})
}

func (suite *ListUsersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ListUsersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE users").Error)
}

func (suite *ListUsersQueryHandlerTestSuite) seedUser(email string, createdAt time.Time) *user.User {
	account, err := user.RestoreUser(
		kernel.NewUUID(), email, "Test User", "$2a$10$hash",
		user.Client, createdAt, createdAt,
	)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.userRepo.Add(context.Background(), account))
	return account
}

func (suite *ListUsersQueryHandlerTestSuite) TestHandle_AdminListsUsersNewestFirst() {
	base := time.Now().UTC().Add(-time.Hour)
	suite.seedUser("first@example.com", base)
	newest := suite.seedUser("second@example.com", base.Add(time.Minute))

	query, err := queries.NewListUsersQuery(suite.adminCaller(), 1, 20)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(int64(2), result.Total)
	suite.Require().Len(result.Users, 2)
	suite.True(result.Users[0].ID.IsEqual(newest.ID()))
	suite.Equal("client", result.Users[0].Role)
}

func (suite *ListUsersQueryHandlerTestSuite) TestHandle_ClientIsDenied() {
	suite.seedUser("first@example.com", time.Now().UTC())

	caller, err := services.NewCaller(kernel.NewUUID(), user.Client)
	suite.Require().NoError(err)

	query, err := queries.NewListUsersQuery(caller, 1, 20)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrAccessDenied)
}

func (suite *ListUsersQueryHandlerTestSuite) TestGetProfile_RoundTrip() {
	seeded := suite.seedUser("jamie@example.com", time.Now().UTC().Add(-time.Hour))
	getHandler := queries.NewGetProfileQueryHandler(suite.db)

	query, err := queries.NewGetProfileQuery(seeded.ID())
	suite.Require().NoError(err)

	result, err := getHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.True(result.ID.IsEqual(seeded.ID()))
	suite.Equal("jamie@example.com", result.Email)
	suite.Equal("Test User", result.Name)
	suite.Equal("client", result.Role)

	_, err = queries.NewGetProfileQuery(kernel.UUID{})
	suite.Require().Error(err)

	missing, err := queries.NewGetProfileQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = getHandler.Handle(context.Background(), missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ListUsersQueryHandlerTestSuite) adminCaller() services.Caller {
	caller, err := services.NewCaller(kernel.NewUUID(), user.Admin)
	suite.Require().NoError(err)
	return caller
}

func TestListUsersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListUsersQueryHandlerTestSuite))
}
