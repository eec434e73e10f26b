package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/MarcGrol/marketplace/lib/mypublisher"
	"github.com/MarcGrol/marketplace/lib/mypubsub"
	"github.com/MarcGrol/marketplace/lib/myqueue"
	"github.com/MarcGrol/marketplace/lib/mystore"
	"github.com/MarcGrol/marketplace/lib/mytime"
	"github.com/MarcGrol/marketplace/lib/mytrace"
	"github.com/MarcGrol/marketplace/lib/myuuid"
	"github.com/MarcGrol/marketplace/services/catalog"
	"github.com/MarcGrol/marketplace/services/checkout"
	"github.com/MarcGrol/marketplace/services/customer"
	"github.com/MarcGrol/marketplace/services/inventory"
	"github.com/MarcGrol/marketplace/services/order"
	"github.com/MarcGrol/marketplace/services/warmup"
)

type webService interface {
	RegisterEndpoints(c context.Context, router *mux.Router) error
}

func main() {
	c := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %s", err)
	}

	shutdownTracing, err := mytrace.Setup(c, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Error setting up tracing: %s", err)
	}
	defer func() {
		err := shutdownTracing(c)
		if err != nil {
			log.Printf("Error shutting down tracing: %s", err)
		}
	}()

	router := mux.NewRouter()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating queue: %s", err)
	}
	defer queueCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, mytime.RealNower{})
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	productCatalog, catalogCleanup, err := createCatalog(c, cfg)
	if err != nil {
		log.Fatalf("Error creating catalog: %s", err)
	}
	defer catalogCleanup()

	customerStore, customerStoreCleanup, err := mystore.New[customer.Customer](c)
	if err != nil {
		log.Fatalf("Error creating customer store: %s", err)
	}
	defer customerStoreCleanup()
	customerService := customer.NewService(customerStore, productCatalog, mytime.RealNower{})

	orderRepo, orderRepoCleanup, err := createOrderRepository(c, cfg)
	if err != nil {
		log.Fatalf("Error creating order repository: %s", err)
	}
	defer orderRepoCleanup()
	orderService := order.NewService(orderRepo, mytime.RealNower{}, myuuid.RealUUIDer{}, publisher)

	ledger := inventory.NewLedger(productCatalog)
	checkoutService := checkout.NewService(customerService, customerService, productCatalog, ledger, orderService, publisher)

	webServices := []webService{
		catalog.NewWebService(productCatalog),
		customer.NewWebService(customerService),
		order.NewWebService(orderService),
		checkout.NewWebService(checkoutService),
		warmup.NewService(
			warmup.NamedCheck{Name: "catalog", Check: func(c context.Context) error {
				_, err := productCatalog.ListProductsOfVendor(c, "warmup")
				return err
			}},
			warmup.NamedCheck{Name: "orders", Check: func(c context.Context) error {
				_, err := orderRepo.ListByVendor(c, "warmup")
				return err
			}},
		),
	}
	for _, ws := range webServices {
		err := ws.RegisterEndpoints(c, router)
		if err != nil {
			log.Fatalf("Error registering endpoints: %s", err)
		}
	}

	if cfg.SeedDemoData {
		err := seedDemoData(c, productCatalog, customerService)
		if err != nil {
			log.Fatalf("Error seeding demo data: %s", err)
		}
	}

	startWebServerBlocking(cfg.Port, router)
}

func createCatalog(c context.Context, cfg config) (catalog.Catalog, func(), error) {
	if cfg.PostgresDSN != "" {
		return catalog.NewPostgresCatalog(c, cfg.PostgresDSN, mytime.RealNower{})
	}

	productStore, cleanup, err := mystore.New[catalog.Product](c)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewStoreCatalog(productStore, mytime.RealNower{}), cleanup, nil
}

func createOrderRepository(c context.Context, cfg config) (order.Repository, func(), error) {
	if cfg.OrdersTable != "" {
		client, err := order.NewDynamoClient(c, cfg.AWSRegion)
		if err != nil {
			return nil, nil, err
		}
		return order.NewDynamoRepository(client, cfg.OrdersTable), func() {}, nil
	}

	orderStore, cleanup, err := mystore.New[order.Order](c)
	if err != nil {
		return nil, nil, err
	}
	return order.NewStoreRepository(orderStore), cleanup, nil
}

func startWebServerBlocking(port string, router *mux.Router) {
	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), otelhttp.NewHandler(router, serviceName))
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
