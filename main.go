package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/softloom/storefront/lib/myhttpclient"
	"github.com/softloom/storefront/lib/mypublisher"
	"github.com/softloom/storefront/lib/mypubsub"
	"github.com/softloom/storefront/lib/mystore"
	"github.com/softloom/storefront/lib/mytime"
	"github.com/softloom/storefront/lib/myuuid"
	"github.com/softloom/storefront/services/guestsession"
	"github.com/softloom/storefront/services/orderedit"
	"github.com/softloom/storefront/services/ordergateway"
	"github.com/softloom/storefront/services/orderreturn"
)

func main() {
	c := context.Background()

	router := mux.NewRouter()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()
	publisher := mypublisher.New(c, pubsub, nower, uuider)

	draftStore, draftStoreCleanup, err := mystore.New[orderedit.OrderDraft](c)
	if err != nil {
		log.Fatalf("Error creating draft store: %s", err)
	}
	defer draftStoreCleanup()

	commerceAPIURL := os.Getenv("COMMERCE_API_URL")
	if commerceAPIURL == "" {
		commerceAPIURL = "http://localhost:9000"
	}
	gateway := ordergateway.NewClient(commerceAPIURL, myhttpclient.NewJSONHTTPClient())

	session := guestsession.NewStore(nower, os.Getenv("ENVIRONMENT") != "development")

	// The fixed /order/return route must be registered before the
	// /order/{orderUID} wildcard routes.
	returnService := orderreturn.NewWebService(os.Getenv("STRIPE_API_KEY"), orderreturn.NewVerifier(), gateway, session, publisher)
	err = returnService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering order-return endpoints: %s", err)
	}

	editService := orderedit.NewWebService(draftStore, gateway, session, nower, uuider, publisher)
	err = editService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering order-edit endpoints: %s", err)
	}

	startWebServerBlocking(router)
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
