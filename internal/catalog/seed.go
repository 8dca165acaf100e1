package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mhnipu/smart-shopper-galaxy/internal/domain"
)

// SeedDefaults inserts the demo catalog on first startup. A non-empty
// products table is left untouched.
func SeedDefaults(ctx context.Context, repo *Repository) error {
	existing, err := repo.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing products: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	for i, p := range defaultProducts() {
		// staggered timestamps keep the newest-first ordering stable
		p.CreatedAt = now.Add(time.Duration(i) * time.Second)
		if err := repo.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}
	return nil
}

func defaultProducts() []*domain.Product {
	return []*domain.Product{
		{
			ID:          "prod-001",
			Name:        "Aurora Wireless Headphones",
			Description: "Over-ear noise cancelling headphones with 40 hour battery life.",
			Price:       decimal.RequireFromString("129.99"),
			ImageURL:    "/images/aurora-headphones.jpg",
			Category:    "audio",
			Featured:    true,
		},
		{
			ID:          "prod-002",
			Name:        "Pulse Smart Watch",
			Description: "Fitness tracking, heart rate monitoring and a week of battery.",
			Price:       decimal.RequireFromString("199.00"),
			ImageURL:    "/images/pulse-watch.jpg",
			Category:    "wearables",
			Featured:    true,
		},
		{
			ID:          "prod-003",
			Name:        "Nimbus Mechanical Keyboard",
			Description: "Hot-swappable switches, RGB backlight, USB-C.",
			Price:       decimal.RequireFromString("89.50"),
			ImageURL:    "/images/nimbus-keyboard.jpg",
			Category:    "peripherals",
		},
		{
			ID:          "prod-004",
			Name:        "Comet 4K Action Camera",
			Description: "Waterproof to 10m with image stabilisation.",
			Price:       decimal.RequireFromString("249.99"),
			ImageURL:    "/images/comet-camera.jpg",
			Category:    "cameras",
			Featured:    true,
		},
		{
			ID:          "prod-005",
			Name:        "Drift Portable Speaker",
			Description: "Pocket-sized Bluetooth speaker with 12 hour playback.",
			Price:       decimal.RequireFromString("45.00"),
			ImageURL:    "/images/drift-speaker.jpg",
			Category:    "audio",
		},
		{
			ID:          "prod-006",
			Name:        "Halo Desk Lamp",
			Description: "Adjustable colour temperature with wireless charging base.",
			Price:       decimal.RequireFromString("59.95"),
			ImageURL:    "/images/halo-lamp.jpg",
			Category:    "home",
		},
		{
			ID:          "prod-007",
			Name:        "Vertex Laptop Stand",
			Description: "Aluminium stand with adjustable height and cable routing.",
			Price:       decimal.RequireFromString("39.00"),
			ImageURL:    "/images/vertex-stand.jpg",
			Category:    "accessories",
		},
		{
			ID:          "prod-008",
			Name:        "Echo Mini Drone",
			Description: "Foldable drone with 1080p camera and gesture control.",
			Price:       decimal.RequireFromString("119.00"),
			ImageURL:    "/images/echo-drone.jpg",
			Category:    "cameras",
		},
	}
}
