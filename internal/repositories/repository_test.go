package repositories_test

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"lessonshop/internal/config"
	"lessonshop/internal/database"
	"lessonshop/internal/models"
	"lessonshop/internal/repositories"
	"lessonshop/internal/services"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.mongodb.org/mongo-driver/bson/primitive"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
)

// storeSuite runs the same behaviour checks against every store driver.
type storeSuite struct {
	suite.Suite

	open   func(t *testing.T) *database.Stores
	stores *database.Stores
}

func TestMemoryStores(t *testing.T) {
	suite.Run(t, &storeSuite{open: func(*testing.T) *database.Stores {
		return database.NewMemoryStores()
	}})
}

func TestSQLiteStores(t *testing.T) {
	suite.Run(t, &storeSuite{open: func(t *testing.T) *database.Stores {
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
		db, err := database.OpenGORM(sqlite.Open(dsn))
		require.NoError(t, err)
		stores, err := database.NewGORMStores(db, config.DriverSQLite)
		require.NoError(t, err)
		return stores
	}})
}

func TestPostgresStores(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := t.Context()

	ctr, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.WithDatabase("lessondb"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	suite.Run(t, &storeSuite{open: func(t *testing.T) *database.Stores {
		db, err := database.OpenGORM(gormpostgres.Open(connStr))
		require.NoError(t, err)
		stores, err := database.NewGORMStores(db, config.DriverPostgres)
		require.NoError(t, err)
		require.NoError(t, db.Exec("TRUNCATE TABLE lessons, orders").Error)
		return stores
	}})
}

func TestMongoStores(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := t.Context()

	ctr, err := mongodb.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	suite.Run(t, &storeSuite{open: func(t *testing.T) *database.Stores {
		// A fresh database per test keeps tests independent.
		stores, err := database.OpenMongo(context.Background(), uri, "lessondb_"+gofakeit.LetterN(8))
		require.NoError(t, err)
		return stores
	}})
}

func (s *storeSuite) SetupTest() {
	s.stores = s.open(s.T())
}

func (s *storeSuite) TearDownTest() {
	if s.stores != nil {
		s.NoError(s.stores.Close(context.Background()))
	}
}

func randomLesson() models.Lesson {
	return models.Lesson{
		Subject:      gofakeit.Word(),
		Location:     gofakeit.City(),
		Price:        math.Round(gofakeit.Price(5, 50)*100) / 100,
		Availability: gofakeit.IntRange(1, 10),
	}
}

func randomOrder(createdAt time.Time) models.Order {
	return models.Order{
		Name:  gofakeit.Name(),
		Phone: gofakeit.Phone(),
		Lessons: []models.OrderLine{
			{LessonID: gofakeit.UUID(), Subject: gofakeit.Word(), Location: gofakeit.City(), Price: 25},
			{LessonID: gofakeit.UUID(), Subject: gofakeit.Word(), Location: gofakeit.City(), Price: 20},
		},
		Total:     45,
		CreatedAt: createdAt,
	}
}

func (s *storeSuite) createLesson(l models.Lesson) models.Lesson {
	s.T().Helper()
	require.NoError(s.T(), s.stores.Lessons.Create(context.Background(), &l))
	require.NotEmpty(s.T(), l.ID)
	return l
}

func assertLesson(t *testing.T, want, got models.Lesson) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateApproxTime(time.Millisecond)); diff != "" {
		t.Errorf("lesson mismatch (-want +got):\n%s", diff)
	}
}

func (s *storeSuite) TestCreateAndGetLesson() {
	t := s.T()
	ctx := context.Background()
	created := s.createLesson(randomLesson())
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.stores.Lessons.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assertLesson(t, created, *got)

	all, err := s.stores.Lessons.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assertLesson(t, created, all[0])
}

func (s *storeSuite) TestGetMissingLesson() {
	ctx := context.Background()
	for _, id := range []string{primitive.NewObjectID().Hex(), "not-an-id"} {
		_, err := s.stores.Lessons.GetByID(ctx, id)
		s.ErrorIs(err, repositories.ErrNotFound, id)

		_, err = s.stores.Lessons.AdjustAvailability(ctx, id, -1)
		s.ErrorIs(err, repositories.ErrNotFound, id)
	}
}

func (s *storeSuite) TestAdjustAvailabilityClampsAtZero() {
	t := s.T()
	ctx := context.Background()
	l := randomLesson()
	l.Availability = 5
	created := s.createLesson(l)

	steps := []struct {
		delta int
		want  int
	}{
		{-3, 2},
		{2, 4},
		{-10, 0},
		{-1, 0},
		{0, 0},
		{3, 3},
		{math.MaxInt, math.MaxInt},
		{1, math.MaxInt},
		{math.MinInt, 0},
		{2, 2},
	}
	for _, step := range steps {
		updated, err := s.stores.Lessons.AdjustAvailability(ctx, created.ID, step.delta)
		require.NoError(t, err)
		assert.Equal(t, step.want, updated.Availability, "delta %d", step.delta)
		assert.Equal(t, created.Subject, updated.Subject)
	}

	got, err := s.stores.Lessons.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Availability)
}

func (s *storeSuite) TestConcurrentAdjustmentsAreNotLost() {
	t := s.T()
	ctx := context.Background()
	l := randomLesson()
	l.Availability = 50
	created := s.createLesson(l)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.stores.Lessons.AdjustAvailability(ctx, created.ID, -1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.stores.Lessons.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Availability)
}

func (s *storeSuite) TestSearchLessons() {
	t := s.T()
	ctx := context.Background()
	maths := s.createLesson(models.Lesson{Subject: "Mathematics", Location: "London", Price: 25, Availability: 5})
	english := s.createLesson(models.Lesson{Subject: "English", Location: "Manchester", Price: 20, Availability: 5})
	art := s.createLesson(models.Lesson{Subject: "100% Art", Location: "Bristol", Price: 28, Availability: 5})

	tests := []struct {
		query string
		want  []string
	}{
		{"lon", []string{maths.ID}},
		{"LON", []string{maths.ID}},
		{"man", []string{english.ID}},
		{"%", []string{art.ID}},
		{"a", []string{maths.ID, english.ID, art.ID}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		found, err := s.stores.Lessons.Search(ctx, tt.query)
		require.NoError(t, err, tt.query)
		got := make([]string, 0, len(found))
		for _, l := range found {
			got = append(got, l.ID)
		}
		assert.ElementsMatch(t, tt.want, got, tt.query)
	}
}

func (s *storeSuite) TestSearchSeededLessons() {
	t := s.T()
	ctx := context.Background()
	n, err := services.SeedSampleLessons(ctx, s.stores.Lessons)
	require.NoError(t, err)
	require.Equal(t, len(services.SampleLessons()), n)

	found, err := s.stores.Lessons.Search(ctx, "lon")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Mathematics", found[0].Subject)
	assert.Equal(t, "London", found[0].Location)
}

func (s *storeSuite) TestCountLessons() {
	ctx := context.Background()
	n, err := s.stores.Lessons.Count(ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), n)

	s.createLesson(randomLesson())
	s.createLesson(randomLesson())

	n, err = s.stores.Lessons.Count(ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), n)
}

func (s *storeSuite) TestOrdersNewestFirst() {
	t := s.T()
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	var ids []string
	for i := range 3 {
		o := randomOrder(base.Add(time.Duration(i) * time.Second))
		require.NoError(t, s.stores.Orders.Create(ctx, &o))
		require.NotEmpty(t, o.ID)
		ids = append(ids, o.ID)
	}

	orders, err := s.stores.Orders.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{orders[0].ID, orders[1].ID, orders[2].ID})
}

func (s *storeSuite) TestCreateAndGetOrder() {
	t := s.T()
	ctx := context.Background()
	o := randomOrder(time.Time{})
	require.NoError(t, s.stores.Orders.Create(ctx, &o))
	assert.False(t, o.CreatedAt.IsZero())

	got, err := s.stores.Orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(o, *got, cmpopts.EquateApproxTime(time.Millisecond)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	_, err = s.stores.Orders.GetByID(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = s.stores.Orders.GetByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestMemoryOrderRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryOrderRepository()
	o := randomOrder(time.Time{})
	require.NoError(t, repo.Create(ctx, &o))

	o.Lessons[0].Subject = "changed after create"
	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "changed after create", got.Lessons[0].Subject)

	got.Lessons[1].Subject = "changed after read"
	again, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "changed after read", again.Lessons[1].Subject)
}
