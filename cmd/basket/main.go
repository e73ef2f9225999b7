package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"storefront/internal/basket"
	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/service/checkout"
)

// Command-line shopping basket kept in a local bolt file, talking to the
// storefront API for product data and checkout.
func main() {
	var (
		apiBase string
		session string
	)
	flag.StringVar(&apiBase, "api", "http://localhost:8080", "Storefront API base URL")
	flag.StringVar(&session, "session", "default", "Basket session key")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	storage, err := basket.OpenBolt(cfg.BasketDBPath, session)
	if err != nil {
		log.Fatalf("open basket db: %v", err)
	}
	defer storage.Close()

	store := basket.New(storage)
	client := &http.Client{Timeout: 10 * time.Second}

	switch flag.Arg(0) {
	case "add":
		if flag.NArg() < 2 {
			log.Fatalf("usage: basket add <product-id> [quantity]")
		}
		qty := 1
		if flag.NArg() >= 3 {
			if _, err := fmt.Sscanf(flag.Arg(2), "%d", &qty); err != nil {
				log.Fatalf("invalid quantity %q", flag.Arg(2))
			}
		}
		product, err := fetchProduct(client, apiBase, flag.Arg(1))
		if err != nil {
			log.Fatalf("fetch product: %v", err)
		}
		store.AddItem(*product, qty)
		printSnapshot(store.Snapshot())
	case "remove":
		if flag.NArg() < 2 {
			log.Fatalf("usage: basket remove <product-id>")
		}
		store.RemoveItem(flag.Arg(1))
		printSnapshot(store.Snapshot())
	case "show":
		printSnapshot(store.Snapshot())
	case "clear":
		store.Clear()
		fmt.Println("basket cleared")
	case "checkout":
		result, err := submitCheckout(client, apiBase, store.Snapshot())
		if err != nil {
			log.Fatalf("checkout: %v", err)
		}
		store.Clear()
		fmt.Printf("order %s created, total %d %s\n", result.OrderID, result.TotalCents, result.Currency)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: basket [flags] add|remove|show|clear|checkout")
	flag.PrintDefaults()
}

func fetchProduct(client *http.Client, apiBase, id string) (*domain.Product, error) {
	resp, err := client.Get(apiBase + "/products/" + id)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	var product domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

func submitCheckout(client *http.Client, apiBase string, snap domain.BasketSnapshot) (*checkout.Result, error) {
	if len(snap.Lines) == 0 {
		return nil, fmt.Errorf("basket is empty")
	}

	items := make([]checkout.ItemInput, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		items = append(items, checkout.ItemInput{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	body, err := json.Marshal(map[string]any{"items": items})
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(apiBase+"/checkout", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var result checkout.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func printSnapshot(snap domain.BasketSnapshot) {
	for _, line := range snap.Lines {
		fmt.Printf("%-36s %-24s x%-3d %8d\n", line.ProductID, line.Name, line.Quantity, line.UnitPriceCents*int64(line.Quantity))
	}
	t := snap.Totals
	fmt.Printf("subtotal %d  tax %d  shipping %d  total %d\n", t.SubtotalCents, t.TaxCents, t.ShippingCents, t.TotalCents)
}
