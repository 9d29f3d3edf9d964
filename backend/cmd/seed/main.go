// Command seed fills the subjects table with the default subject list and
// prints every subject in the database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"studytracker/backend/config"
	"studytracker/backend/database"
	"studytracker/backend/repository"
	"studytracker/backend/utils"
)

var defaultSubjects = []string{
	"Mathematics",
	"Programming",
	"Art",
	"Music",
	"Philosophy",
	"Economics",
	"Psychology",
	"Sociology",
	"Biology",
	"Physics",
	"Geography",
	"English",
	"History",
	"Chemistry",
	"Literature",
	"Computer Science",
}

func main() {
	listOnly := flag.Bool("list", false, "only list subjects, do not insert defaults")
	dbPath := flag.String("db", "", "database file (defaults to DB_PATH)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Logger.Warn("invalid configuration, using defaults", "error", err)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	if err := run(context.Background(), cfg, *listOnly, os.Stdout); err != nil {
		utils.Logger.Error("seed failed", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, listOnly bool, out io.Writer) error {
	store, err := database.Open(cfg.DBPath, cfg.GormLogLevel)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := database.EnsureSchema(store.DB()); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	repo := repository.New(store)
	if !listOnly {
		if err := seedSubjects(ctx, repo, defaultSubjects, out); err != nil {
			return err
		}
	}
	return listSubjects(ctx, repo, out)
}

func seedSubjects(ctx context.Context, repo *repository.Repository, names []string, out io.Writer) error {
	for _, name := range names {
		_, err := repo.CreateSubject(ctx, name)
		switch {
		case err == nil:
			fmt.Fprintf(out, "Added: %s\n", name)
		case errors.Is(err, repository.ErrDuplicateKey):
			fmt.Fprintf(out, "Already exists: %s\n", name)
		default:
			return fmt.Errorf("add subject %q: %w", name, err)
		}
	}
	return nil
}

func listSubjects(ctx context.Context, repo *repository.Repository, out io.Writer) error {
	subjects, err := repo.ListSubjects(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d subjects:\n", len(subjects))
	for _, s := range subjects {
		fmt.Fprintf(out, "%4d  %s\n", s.ID, s.Name)
	}
	return nil
}
