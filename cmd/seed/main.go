package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/yegebere/gebeya-auth/config"
	"github.com/yegebere/gebeya-auth/internal/domain/phone"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	n, err := phone.Normalize("0911234567")
	if err != nil {
		log.Fatalf("failed to normalize seed phone: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (id, phone_number, name, language, is_verified, last_login_at)
		VALUES ($1, $2, $3, $4, true, now())
		ON CONFLICT (phone_number) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, uuid.NewString(), n.String(), "Demo Farmer", "am").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s phone=%s\n", id, n.String())
}
