// Command dbcheck verifies the datastore is reachable and migrated, and
// prints one profile row: the given user's, or any one.
//
//	dbcheck [-migrate] [-user <id>]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/01moynul/ytgenius-golang/internal/config"
	"github.com/01moynul/ytgenius-golang/internal/database"
	"github.com/01moynul/ytgenius-golang/internal/models"
	"github.com/01moynul/ytgenius-golang/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	userID := flag.String("user", "", "profile id to look up (default: any profile)")
	migrate := flag.Bool("migrate", false, "create missing tables before checking")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.DBDSN == "" {
		log.Fatal(config.ErrMissingDSN)
	}

	// 1. --- Connect ---
	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, cfg.DBTimeout)
	if err != nil {
		log.Fatalf("Database unreachable: %v", err)
	}
	defer db.Close()
	fmt.Printf("connected (%s)\n", cfg.DBDriver)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
	defer cancel()

	// 2. --- Schema ---
	if *migrate {
		if err := database.Migrate(ctx, db, cfg.DBDriver); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		fmt.Println("schema up to date")
	}

	// 3. --- Read ---
	if err := readProfile(ctx, store.NewSQLStore(db), *userID, os.Stdout); err != nil {
		log.Fatalf("Profile lookup failed: %v", err)
	}
}

// readProfile prints the profile of userID, or any profile when userID is
// empty. An absent row is reported, not treated as a failure.
func readProfile(ctx context.Context, st *store.SQLStore, userID string, out io.Writer) error {
	var (
		p   *models.Profile
		err error
	)
	if userID == "" {
		p, err = st.AnyProfile(ctx)
	} else {
		p, err = st.GetProfile(ctx, userID)
	}

	switch {
	case errors.Is(err, store.ErrNotFound) && userID == "":
		fmt.Fprintln(out, "profiles table is empty")
		return nil
	case errors.Is(err, store.ErrNotFound):
		fmt.Fprintf(out, "no profile for %s\n", userID)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintf(out, "profile %s <%s>: %d coins\n", p.ID, p.Email, p.Coins)
	return nil
}
