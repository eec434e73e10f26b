package catalog

import (
	"fmt"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/shopspring/decimal"
)

type Product struct {
	UID          string
	Name         string
	VendorUID    string
	Price        decimal.Decimal
	Stock        int
	LastModified time.Time
}

// productRecord is the datastore representation: prices are kept as exact decimal strings
type productRecord struct {
	UID          string
	Name         string `datastore:",noindex"`
	VendorUID    string
	Price        string `datastore:",noindex"`
	Stock        int
	LastModified time.Time
}

func (p *Product) Load(props []datastore.Property) error {
	r := productRecord{}
	err := datastore.LoadStruct(&r, props)
	if err != nil {
		return err
	}

	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return fmt.Errorf("error parsing price %q of product %s: %w", r.Price, r.UID, err)
	}

	*p = Product{
		UID:          r.UID,
		Name:         r.Name,
		VendorUID:    r.VendorUID,
		Price:        price,
		Stock:        r.Stock,
		LastModified: r.LastModified,
	}
	return nil
}

func (p *Product) Save() ([]datastore.Property, error) {
	return datastore.SaveStruct(&productRecord{
		UID:          p.UID,
		Name:         p.Name,
		VendorUID:    p.VendorUID,
		Price:        p.Price.String(),
		Stock:        p.Stock,
		LastModified: p.LastModified,
	})
}
