package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/victornm/solarium/internal/catalog"
	"github.com/victornm/solarium/internal/config"
	"github.com/victornm/solarium/internal/domain"
	"github.com/victornm/solarium/internal/quiz"
	"github.com/victornm/solarium/internal/server"
	"github.com/victornm/solarium/internal/storage/memory"
	"github.com/victornm/solarium/internal/storage/postgres"
	"github.com/victornm/solarium/internal/teacher"
	"github.com/victornm/solarium/internal/telemetry"
)

type migrator interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
	Close() error
}

// app holds what the commands share. Fields left nil are built from the config on first use.
type app struct {
	configPath string
	config     server.Config

	store    server.Store
	close    func()
	migrator migrator

	readPassword func(fd int) ([]byte, error)
	stdin        int
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "admin",
		Short:        "Operator tasks for the Solarium backend",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.loadConfig()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.close != nil {
				a.close()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv("CONFIG_PATH"), "path to the config file")

	root.AddCommand(
		newMigrateCmd(a),
		newCreateTeacherCmd(a),
		newSeedCmd(a),
	)

	return root
}

func (a *app) loadConfig() error {
	if a.store != nil || a.migrator != nil {
		return nil
	}

	a.config = server.DefaultConfig()
	a.config.Log.Level = "warn"

	if a.configPath == "" {
		return fmt.Errorf("no config file: set --config or CONFIG_PATH")
	}
	if err := config.Load(a.configPath, &a.config); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	telemetry.SetupLogger(os.Stderr, a.config.Log)
	return nil
}

func (a *app) openStore(ctx context.Context) (server.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	switch a.config.Storage.Driver {
	case server.DriverMemory:
		a.store = memory.New()

	case server.DriverPostgres:
		pc := a.config.Storage.Postgres
		db, err := postgres.Connect(ctx, postgres.DSN("postgres", pc.Addr, pc.User, pc.Pass, pc.Name))
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		a.store = postgres.New(db)
		a.close = db.Close

	default:
		return nil, fmt.Errorf("unknown storage driver %q", a.config.Storage.Driver)
	}

	return a.store, nil
}

func (a *app) openMigrator() (migrator, error) {
	if a.migrator != nil {
		return a.migrator, nil
	}

	if a.config.Storage.Driver != server.DriverPostgres {
		return nil, fmt.Errorf("migrations need the postgres driver, got %q", a.config.Storage.Driver)
	}

	pc := a.config.Storage.Postgres
	m, err := postgres.NewMigrator(postgres.DSN("pgx5", pc.Addr, pc.User, pc.Pass, pc.Name))
	if err != nil {
		return nil, err
	}

	a.migrator = m
	return m, nil
}

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	run := func(f func(m migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			m, err := a.openMigrator()
			if err != nil {
				return err
			}
			defer m.Close()

			if err := f(m); err != nil {
				return err
			}

			v, dirty, err := m.Version()
			if err != nil {
				return err
			}
			cmd.Printf("schema version %d (dirty: %t)\n", v, dirty)
			return nil
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  run(func(m migrator) error { return m.Up() }),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			Args:  cobra.NoArgs,
			RunE:  run(func(m migrator) error { return m.Down() }),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE:  run(func(migrator) error { return nil }),
		},
	)

	return cmd
}

func newCreateTeacherCmd(a *app) *cobra.Command {
	var (
		email, name string
		admin       bool
	)

	cmd := &cobra.Command{
		Use:   "create-teacher",
		Short: "Create a teacher account, the password is prompted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			cmd.Print("Enter password: ")
			pwd, err := a.readPassword(a.stdin)
			cmd.Println()
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}

			req := teacher.CreateTeacherRequest{
				Email:    email,
				Password: string(pwd),
				Name:     name,
			}
			if admin {
				req.Role = domain.RoleAdmin
			}

			ts := teacher.NewService(teacher.Config{Repo: store})
			t, err := ts.CreateTeacher(ctx, req)
			if err != nil {
				return err
			}

			cmd.Printf("created %s %s (id %d)\n", t.Role, t.Email, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email used to log in")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the admin role")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSeedCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the sample quizzes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			qs := quiz.NewService(quiz.Config{Repo: store, Planets: catalog.New()})

			existing, err := qs.ListQuizzes(ctx)
			if err != nil {
				return err
			}
			if len(existing) > 0 && !force {
				cmd.Printf("%d quizzes already exist, nothing to do (use --force to add the samples anyway)\n", len(existing))
				return nil
			}

			n, err := seed(ctx, qs)
			if err != nil {
				return err
			}

			cmd.Printf("created %d quizzes\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "seed even when quizzes exist")

	return cmd
}
