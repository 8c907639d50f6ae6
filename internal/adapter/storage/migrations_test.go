package storage_test

import (
	"context"
	"net/url"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/niksmo/catalog/internal/adapter/storage"
	"github.com/shopspring/decimal"
)

const (
	migratedDatabase = "CatalogDbMigrated"
	migrationsSource = "file://../../../migrations"
)

func (s *CatalogRepositorySuite) TestSeedMigrations() {
	ctx := context.Background()

	u, err := url.Parse(s.uri)
	s.Require().NoError(err)
	u.Path = "/" + migratedDatabase

	m, err := migrate.New(migrationsSource, u.String())
	s.Require().NoError(err)
	defer m.Close()
	defer func() {
		_ = s.raw.Database(migratedDatabase).Drop(ctx)
	}()

	s.Require().NoError(m.Up())

	db, err := storage.NewMongoDB(ctx, storage.Config{
		URI:                s.uri,
		Database:           migratedDatabase,
		ProductsCollection: productsColl,
		BrandsCollection:   brandsColl,
		TypesCollection:    typesColl,
		ConnectTimeout:     10 * time.Second,
	})
	s.Require().NoError(err)
	defer db.Close(ctx)
	repo := storage.NewCatalogRepository(db)

	brands, err := repo.GetAllBrands(ctx)
	s.Require().NoError(err)
	s.Len(brands, 5)

	types, err := repo.GetAllTypes(ctx)
	s.Require().NoError(err)
	s.Len(types, 5)

	helmets, err := repo.GetProductsByBrand(ctx, "Puma")
	s.Require().NoError(err)
	s.Require().Len(helmets, 1)
	s.True(decimal.RequireFromString("29.99").Equal(helmets[0].Price))
	s.Equal("Helmets", helmets[0].Type.Name)

	s.Require().NoError(m.Down())

	products, err := repo.GetProducts(ctx)
	s.Require().NoError(err)
	s.Empty(products)
}
