package catalog

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/MarcGrol/marketplace/lib/myerrors"
	"github.com/MarcGrol/marketplace/lib/mytime"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const productColumns = "uid, name, vendor_uid, price, stock, last_modified"

type postgresCatalog struct {
	db    *sql.DB
	nower mytime.Nower
}

func NewPostgresCatalog(c context.Context, dsn string, nower mytime.Nower) (*postgresCatalog, func(), error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening postgres: %w", err)
	}

	err = db.PingContext(c)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("error connecting to postgres: %w", err)
	}

	err = RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return &postgresCatalog{
			db:    db,
			nower: nower,
		}, func() {
			db.Close()
		}, nil
}

func RunMigrations(db *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	p := Product{}
	err := row.Scan(&p.UID, &p.Name, &p.VendorUID, &p.Price, &p.Stock, &p.LastModified)
	if err != nil {
		return Product{}, err
	}
	p.LastModified = p.LastModified.UTC()
	return p, nil
}

func (s *postgresCatalog) GetProduct(c context.Context, productUID string) (Product, error) {
	row := s.db.QueryRowContext(c, "SELECT "+productColumns+" FROM products WHERE uid = $1", productUID)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, notFound(productUID)
		}
		return Product{}, myerrors.NewUnavailableError(fmt.Errorf("error fetching product %s: %w", productUID, err))
	}
	return product, nil
}

func (s *postgresCatalog) PutProduct(c context.Context, product Product) error {
	_, err := s.db.ExecContext(c, `
		INSERT INTO products (uid, name, vendor_uid, price, stock, last_modified)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (uid) DO UPDATE
		SET name = EXCLUDED.name, vendor_uid = EXCLUDED.vendor_uid, price = EXCLUDED.price,
		    stock = EXCLUDED.stock, last_modified = EXCLUDED.last_modified`,
		product.UID, product.Name, product.VendorUID, product.Price, product.Stock, s.nower.Now())
	if err != nil {
		return myerrors.NewUnavailableError(fmt.Errorf("error storing product %s: %w", product.UID, err))
	}
	return nil
}

func (s *postgresCatalog) ListProductsOfVendor(c context.Context, vendorUID string) ([]Product, error) {
	rows, err := s.db.QueryContext(c, "SELECT "+productColumns+" FROM products WHERE vendor_uid = $1 ORDER BY uid", vendorUID)
	if err != nil {
		return nil, myerrors.NewUnavailableError(fmt.Errorf("error listing products of vendor %s: %w", vendorUID, err))
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, myerrors.NewUnavailableError(err)
		}
		products = append(products, product)
	}
	err = rows.Err()
	if err != nil {
		return nil, myerrors.NewUnavailableError(err)
	}
	return products, nil
}

// DecrementStock relies on a conditional update: the row is only touched when enough stock remains.
func (s *postgresCatalog) DecrementStock(c context.Context, productUID string, quantity int) (Product, error) {
	if quantity <= 0 {
		return Product{}, myerrors.NewInvalidInputErrorf("quantity must be positive, got %d", quantity)
	}

	row := s.db.QueryRowContext(c, `
		UPDATE products SET stock = stock - $1, last_modified = $2
		WHERE uid = $3 AND stock >= $1
		RETURNING `+productColumns,
		quantity, s.nower.Now(), productUID)
	product, err := scanProduct(row)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Product{}, myerrors.NewUnavailableError(fmt.Errorf("error decrementing stock of product %s: %w", productUID, err))
	}

	// Nothing updated: either the product is unknown or stock was short
	current, err := s.GetProduct(c, productUID)
	if err != nil {
		return Product{}, err
	}
	return Product{}, InsufficientStockError{ProductUID: productUID, Requested: quantity, Available: current.Stock}
}

func (s *postgresCatalog) IncrementStock(c context.Context, productUID string, quantity int) (Product, error) {
	if quantity <= 0 {
		return Product{}, myerrors.NewInvalidInputErrorf("quantity must be positive, got %d", quantity)
	}

	row := s.db.QueryRowContext(c, `
		UPDATE products SET stock = stock + $1, last_modified = $2
		WHERE uid = $3
		RETURNING `+productColumns,
		quantity, s.nower.Now(), productUID)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, notFound(productUID)
		}
		return Product{}, myerrors.NewUnavailableError(fmt.Errorf("error incrementing stock of product %s: %w", productUID, err))
	}
	return product, nil
}
