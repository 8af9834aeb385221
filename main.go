package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gopress-cms/gopress/internal/domain"
	"github.com/gopress-cms/gopress/internal/handler"
	"github.com/gopress-cms/gopress/internal/repository/sqlite"
	"github.com/gopress-cms/gopress/internal/service"
	"github.com/joho/godotenv"
	"golang.org/x/term"
)

func main() {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, logOpts)))

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "init":
			runInit()
			return
		case "create-admin":
			runCreateAdmin()
			return
		default:
			slog.Error("unknown command", "command", os.Args[1])
			os.Exit(2)
		}
	}

	serve()
}

func serve() {
	port := envOrDefault("PORT", "8080")
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		slog.Error("SESSION_SECRET environment variable is required")
		os.Exit(1)
	}
	if len(sessionSecret) < 32 {
		slog.Error("SESSION_SECRET must be at least 32 characters for HMAC-SHA256 security")
		os.Exit(1)
	}

	// Default to secure cookies; disable only for local development.
	cookieSecure := os.Getenv("COOKIE_SECURE") != "false"

	db := openDatabase()
	defer db.Close()

	auth := service.NewAuthService(db.Users(), sessionSecret, bcryptCost(), true)
	pages := service.NewPageService(db.Pages())
	resolver := service.NewResolverService(db.Pages())
	avatars := service.NewAvatarService(db.FileStore(), db.Users())

	// Roughly one login attempt per 2s per username+host, bursting to 5.
	loginLimiter := service.NewTokenBucket(0.5, 5)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Services{
		Auth:         auth,
		Pages:        pages,
		Resolver:     resolver,
		Avatars:      avatars,
		LoginLimiter: loginLimiter,
		Users:        db.Users(),
		Groups:       db.Groups(),
		Memberships:  db.Memberships(),
		Templates:    db.Templates(),
		PageRepo:     db.Pages(),
		CookieSecure: cookieSecure,
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

const welcomeContent = `<p>GoPress is a minimalist open-source micro-CMS. Pages are organized
as a tree and served at URLs built from their slugs; log in to create
and edit content, or open the admin panel to manage the underlying
records.</p>`

// runInit creates the schema if absent and seeds the default user and
// the root page. Safe to run repeatedly.
func runInit() {
	db := openDatabase()
	defer db.Close()

	ctx := context.Background()
	users := db.Users()
	pages := db.Pages()

	owner, err := users.GetByUsername(ctx, "DefaultUser")
	if errors.Is(err, domain.ErrNotFound) {
		// Seeded in legacy form on purpose: the credential upgrades to a
		// hash on first successful login.
		owner = &domain.User{Username: "DefaultUser", Password: "DefaultPassword", IsActive: true}
		if err := users.Create(ctx, owner); err != nil {
			slog.Error("seed default user", "error", err)
			os.Exit(1)
		}
		slog.Info("default user created", "username", owner.Username)
	} else if err != nil {
		slog.Error("look up default user", "error", err)
		os.Exit(1)
	}

	root, err := pages.ListChildren(ctx, nil, domain.RootSlug)
	if err != nil {
		slog.Error("look up root page", "error", err)
		os.Exit(1)
	}
	if len(root) == 0 {
		page := &domain.Page{
			OwnerID:     owner.ID,
			Title:       "Welcome to GoPress",
			ShowTitle:   true,
			ShowNav:     true,
			Slug:        domain.RootSlug,
			IsPublished: true,
			Content:     welcomeContent,
		}
		if err := pages.Create(ctx, page); err != nil {
			slog.Error("seed root page", "error", err)
			os.Exit(1)
		}
		slog.Info("root page created", "id", page.ID)
	}

	slog.Info("database initialized")
}

// runCreateAdmin interactively creates an administrative user with a
// hashed credential.
func runCreateAdmin() {
	fmt.Print("Enter username: ")
	reader := bufio.NewReader(os.Stdin)
	username, err := reader.ReadString('\n')
	if err != nil {
		slog.Error("read username", "error", err)
		os.Exit(1)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		fmt.Println("ABORT: Blank usernames not permitted")
		os.Exit(1)
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		slog.Error("read password", "error", err)
		os.Exit(1)
	}
	if len(password) == 0 {
		fmt.Println("ABORT: Blank passwords not permitted")
		os.Exit(1)
	}

	db := openDatabase()
	defer db.Close()

	auth := service.NewAuthService(db.Users(), "unused-for-cli-0000000000000000", bcryptCost(), true)
	user, err := auth.CreateUser(context.Background(), username, string(password), true)
	if err != nil {
		fmt.Printf("failed: %v\n", err)
		os.Exit(1)
	}

	slog.Info("admin user created", "username", user.Username, "id", user.ID)
	fmt.Println("success")
}

func openDatabase() *sqlite.DB {
	dbPath := envOrDefault("DATABASE_PATH", "gopress.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate(context.Background()); err != nil {
		db.Close()
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	return db
}

func bcryptCost() int {
	cost := 12
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			slog.Error("invalid BCRYPT_COST", "error", err)
			os.Exit(1)
		}
		if parsed < 4 || parsed > 14 {
			slog.Error("BCRYPT_COST must be between 4 and 14", "value", parsed)
			os.Exit(1)
		}
		cost = parsed
	}
	return cost
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
