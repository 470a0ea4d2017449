// Command adminctl manages back-office operator accounts from the shell.
// Operators cannot self-register; the only way in is this tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/groupcast/groupcast-api/internal/auth"
	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/infrastructure/config"
	mongodb "github.com/groupcast/groupcast-api/internal/infrastructure/db/mongo"
)

func main() {
	var (
		email    = flag.String("email", "", "operator email (required)")
		password = flag.String("password", "", "operator password (required)")
		name     = flag.String("name", "", "operator display name")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		fail("config: %v", err)
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		fail("mongo: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fail("hash password: %v", err)
	}

	repo := mongodb.NewAdminRepository(db, mongodb.NewSequence(db))
	if err := repo.EnsureIndexes(ctx); err != nil {
		fail("indexes: %v", err)
	}

	admin := &domain.Admin{
		Email:        *email,
		Name:         *name,
		PasswordHash: hash,
	}
	created, err := repo.Create(ctx, admin)
	if err != nil {
		fail("create operator: %v", err)
	}

	fmt.Printf("operator %d created: %s\n", created.ID, created.Email)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
