package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automani/automani/internal/domain/model"
	"github.com/automani/automani/internal/domain/port/driven"
)

func testCar() model.Car {
	return model.Car{
		Make:              "Maruti Suzuki",
		Model:             "Swift",
		Year:              2022,
		Price:             695000,
		Fuel:              "Petrol",
		Transmission:      "Manual",
		Kms:               18000,
		Owners:            1,
		RegCity:           "Mumbai",
		InsuranceValidity: "Dec 2026",
		Description:       "Well-maintained first-owner Swift.",
		Status:            model.CarStatusAvailable,
		Badge:             "Hot",
		Photos:            []string{"/uploads/a.jpg", "/uploads/b.jpg"},
	}
}

func mustCreate(t *testing.T, repo *CarRepo, car model.Car) model.Car {
	t.Helper()
	created, err := repo.Create(context.Background(), car)
	require.NoError(t, err)
	return created
}

func TestCarRepo_CreateAssignsIDAndTimestamp(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))

	created := mustCreate(t, repo, testCar())

	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, "Maruti Suzuki", created.Make)
	assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg"}, created.Photos)
}

func TestCarRepo_CreateNilPhotosBecomesEmptyList(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))

	car := testCar()
	car.Photos = nil
	created := mustCreate(t, repo, car)

	assert.Equal(t, []string{}, created.Photos)
}

func TestCarRepo_GetByIDRoundTrip(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	created := mustCreate(t, repo, testCar())

	got, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created, *got)
}

func TestCarRepo_GetByIDMissing(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))

	got, err := repo.GetByID(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCarRepo_UpdateReplacesFields(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	created := mustCreate(t, repo, testCar())

	created.Price = 650000
	created.Status = model.CarStatusSold
	created.Photos = []string{"/uploads/c.webp"}
	require.NoError(t, repo.Update(context.Background(), created))

	got, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 650000, got.Price)
	assert.Equal(t, model.CarStatusSold, got.Status)
	assert.Equal(t, []string{"/uploads/c.webp"}, got.Photos)
	assert.Equal(t, created.CreatedAt, got.CreatedAt, "created_at is immutable")
}

func TestCarRepo_UpdateMissing(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))

	car := testCar()
	car.ID = 999
	err := repo.Update(context.Background(), car)
	assert.ErrorIs(t, err, driven.ErrNotFound)
}

func TestCarRepo_Delete(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	created := mustCreate(t, repo, testCar())

	require.NoError(t, repo.Delete(context.Background(), created.ID))

	got, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCarRepo_DeleteMissing(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))

	err := repo.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, driven.ErrNotFound)
}

func seedInventory(t *testing.T, repo *CarRepo) {
	t.Helper()

	swift := testCar()

	creta := testCar()
	creta.Make = "Hyundai"
	creta.Model = "Creta"
	creta.Year = 2023
	creta.Price = 1350000
	creta.Fuel = "Diesel"
	creta.Transmission = "Automatic"
	creta.Kms = 12000
	creta.Description = "Top-spec Creta with sunroof."

	polo := testCar()
	polo.Make = "Volkswagen"
	polo.Model = "Polo"
	polo.Year = 2019
	polo.Price = 480000
	polo.Kms = 55000
	polo.Status = model.CarStatusSold
	polo.Description = "Highline Plus hatchback."

	mustCreate(t, repo, swift)
	mustCreate(t, repo, creta)
	mustCreate(t, repo, polo)
}

func listFilter() model.CarFilter {
	f := model.CarFilter{}
	f.Normalize()
	return f
}

func TestCarRepo_ListNoFilters(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	seedInventory(t, repo)

	cars, total, err := repo.List(context.Background(), listFilter())
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, cars, 3)
}

func TestCarRepo_ListFilterByMake(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	seedInventory(t, repo)

	f := listFilter()
	f.Make = "Hyundai"
	cars, total, err := repo.List(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, cars, 1)
	assert.Equal(t, "Creta", cars[0].Model)
}

func TestCarRepo_ListModelSubstringCaseInsensitive(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	seedInventory(t, repo)

	f := listFilter()
	f.Model = "cret"
	cars, total, err := repo.List(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, cars, 1)
	assert.Equal(t, "Creta", cars[0].Model)
}

func TestCarRepo_ListPriceRange(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	seedInventory(t, repo)

	minPrice, maxPrice := 500000, 1000000
	f := listFilter()
	f.MinPrice = &minPrice
	f.MaxPrice = &maxPrice
	cars, total, err := repo.List(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, cars, 1)
	assert.Equal(t, "Swift", cars[0].Model)
}

func TestCarRepo_ListRangeBoundsInclusive(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	seedInventory(t, repo)

	bound := 695000
	f := listFilter()
	f.MinPrice = &bound
	f.MaxPrice = &bound
	_, total, err := repo.List(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestCarRepo_ListSearchAcrossFields(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	seedInventory(t, repo)

	f := listFilter()
	f.Search = "sunroof" // matches only the Creta description
	cars, total, err := repo.List(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, cars, 1)
	assert.Equal(t, "Creta", cars[0].Model)
}

func TestCarRepo_ListFiltersAreConjunctive(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	seedInventory(t, repo)

	f := listFilter()
	f.Make = "Hyundai"
	f.Fuel = "Petrol" // the Hyundai is Diesel
	_, total, err := repo.List(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestCarRepo_ListStatusFilter(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	seedInventory(t, repo)

	f := listFilter()
	f.Status = "sold"
	cars, total, err := repo.List(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, cars, 1)
	assert.Equal(t, "Polo", cars[0].Model)
}

func TestCarRepo_ListSortPriceAsc(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	seedInventory(t, repo)

	f := listFilter()
	f.Sort = model.SortPriceAsc
	cars, _, err := repo.List(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, cars, 3)
	assert.Equal(t, "Polo", cars[0].Model)
	assert.Equal(t, "Swift", cars[1].Model)
	assert.Equal(t, "Creta", cars[2].Model)
}

func TestCarRepo_ListUnknownSortFallsBackToNewest(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	seedInventory(t, repo)

	f := listFilter()
	f.Sort = "price; DROP TABLE cars"
	cars, _, err := repo.List(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, cars, 3)
	// Newest first: inserts share a CURRENT_TIMESTAMP second, id breaks the tie.
	assert.Equal(t, "Polo", cars[0].Model)
}

func TestCarRepo_ListPagination(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	seedInventory(t, repo)

	f := listFilter()
	f.Sort = model.SortPriceAsc
	f.Limit = 2
	f.Page = 2
	cars, total, err := repo.List(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, cars, 1)
	assert.Equal(t, "Creta", cars[0].Model)
}

func TestCarRepo_ListPageBeyondEnd(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	seedInventory(t, repo)

	f := listFilter()
	f.Page = 50
	cars, total, err := repo.List(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, cars)
}

func TestCarRepo_FeaturedOnlyAvailable(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	seedInventory(t, repo)

	cars, err := repo.Featured(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, cars, 2)
	for _, car := range cars {
		assert.Equal(t, model.CarStatusAvailable, car.Status)
	}
	// Newest available first.
	assert.Equal(t, "Creta", cars[0].Model)
}

func TestCarRepo_FeaturedHonorsLimit(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	for range 8 {
		mustCreate(t, repo, testCar())
	}

	cars, err := repo.Featured(context.Background(), 6)
	require.NoError(t, err)
	assert.Len(t, cars, 6)
}

func TestCarRepo_MakesDistinctAlphabetical(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))
	seedInventory(t, repo)
	mustCreate(t, repo, testCar()) // second Maruti Suzuki

	makes, err := repo.Makes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Hyundai", "Maruti Suzuki", "Volkswagen"}, makes)
}

func TestCarRepo_MakesEmpty(t *testing.T) {
	repo := NewCarRepo(setupTestDB(t))

	makes, err := repo.Makes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, makes)
}
