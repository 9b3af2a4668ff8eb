// Package main implements a standalone seed script that populates the
// shop catalog with sample products via direct SQL, so a fresh local
// environment has something to sell.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type productDef struct {
	name        string
	description string
	price       int64
	imagePath   string
}

var products = []productDef{
	{"RX-78-2 Gundam HG 1/144", "High Grade kit of the original mobile suit.", 2500, "/uploads/rx-78-2.jpg"},
	{"MS-06 Zaku II HG 1/144", "Mass production type in classic green.", 1800, "/uploads/zaku-ii.jpg"},
	{"Wing Gundam Zero EW MG 1/100", "Master Grade with feathered wings.", 5400, "/uploads/wing-zero.jpg"},
	{"Unicorn Gundam PG 1/60", "Perfect Grade with LED unit support.", 28000, "/uploads/unicorn-pg.jpg"},
	{"Char's Zaku II HG 1/144", "Commander type, three times faster.", 2000, "/uploads/char-zaku.jpg"},
	{"Nu Gundam RG 1/144", "Real Grade with fin funnel set.", 4200, "/uploads/nu-gundam.jpg"},
	{"Sazabi RG 1/144", "Real Grade in deep crimson.", 4800, "/uploads/sazabi.jpg"},
	{"Strike Freedom MGEX 1/100", "Extreme detail with gold inner frame.", 12000, "/uploads/strike-freedom.jpg"},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("POSTGRES_USER", "shop"),
		getEnv("POSTGRES_PASSWORD", "shop_secret"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB", "shop"),
	)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	query := `
		INSERT INTO products (id, name, description, price, image_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (id) DO NOTHING`

	seeded := 0
	for _, p := range products {
		var exists bool
		if err := pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE name = $1)`, p.name).Scan(&exists); err != nil {
			log.Fatalf("check product %q: %v", p.name, err)
		}
		if exists {
			continue
		}

		if _, err := pool.Exec(ctx, query, uuid.New().String(), p.name, p.description, p.price, p.imagePath); err != nil {
			log.Fatalf("insert product %q: %v", p.name, err)
		}
		seeded++
	}

	log.Printf("seed complete: %d products inserted, %d already present", seeded, len(products)-seeded)
}
