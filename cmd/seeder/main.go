package main

import (
	"log"

	"github.com/google/uuid"

	"github.com/okuzmina/bookstand/internal/config"
	"github.com/okuzmina/bookstand/internal/models"
	"github.com/okuzmina/bookstand/internal/store"
)

// Demo accounts for local development. Login is by email only.
var demoUsers = []models.User{
	{Name: "Alice Novak", Email: "alice@example.com"},
	{Name: "Boris Orlov", Email: "boris@example.com"},
	{Name: "Carmen Diaz", Email: "carmen@example.com"},
	{Name: "Dmitry Volkov", Email: "dmitry@example.com"},
}

func main() {
	cfg := config.Load()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Unable to open user store: %v", err)
	}
	defer st.Close()

	log.Println("--- Seeding User Store ---")

	seeded := 0
	for _, u := range demoUsers {
		if _, ok := st.GetUserByEmail(u.Email); ok {
			log.Printf("%s already present. Skipping.", u.Email)
			continue
		}
		u.ID = uuid.NewString()
		if err := st.SaveUser(u); err != nil {
			log.Fatalf("Seeding %s failed: %v", u.Email, err)
		}
		seeded++
	}

	log.Printf("Successfully seeded %d users (%d total).", seeded, len(st.GetUsers()))
}
