package main

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/marketplace/services/catalog"
	"github.com/MarcGrol/marketplace/services/customer"
)

var demoProducts = []catalog.Product{
	{UID: "racket", Name: "Tennis racket", VendorUID: "sportshop", Price: decimal.RequireFromString("89.95"), Stock: 10},
	{UID: "grip", Name: "Overgrip", VendorUID: "sportshop", Price: decimal.RequireFromString("2.50"), Stock: 100},
	{UID: "balls", Name: "Tennis balls (4)", VendorUID: "ballcorner", Price: decimal.RequireFromString("7.99"), Stock: 50},
}

// seedDemoData fills the catalog and gives customer "demo" a cart that spans two vendors.
func seedDemoData(c context.Context, products catalog.Catalog, customers *customer.Service) error {
	for _, p := range demoProducts {
		err := products.PutProduct(c, p)
		if err != nil {
			return fmt.Errorf("error storing product %s: %w", p.UID, err)
		}
	}

	_, err := customers.PutCustomer(c, "demo", "Demo Customer", "demo@example.com")
	if err != nil {
		return fmt.Errorf("error storing demo customer: %w", err)
	}

	for _, item := range []customer.CartItem{{ProductUID: "racket", Quantity: 1}, {ProductUID: "balls", Quantity: 2}, {ProductUID: "grip", Quantity: 3}} {
		_, err := customers.AddToCart(c, "demo", item.ProductUID, item.Quantity)
		if err != nil {
			return fmt.Errorf("error filling cart with %s: %w", item.ProductUID, err)
		}
	}

	log.Printf("Seeded %d products and customer 'demo'", len(demoProducts))
	return nil
}
