package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/adapters/auth/jwt"
	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/adapters/handler/http"
	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/adapters/repository/postgres"
	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	db.SetMaxOpenConns(20)
	db.SetConnMaxIdleTime(30 * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	pollRepo := postgres.NewPollRepository(db)
	voteRepo := postgres.NewVoteRepository(db)

	pollSvc := services.NewPollService(pollRepo, voteRepo)
	voteSvc := services.NewVoteService(voteRepo)

	verifier := jwt.NewVerifier(os.Getenv("JWT_SECRET"))
	handler := http.NewHandler(http.NewPollHandler(pollSvc), http.NewVoteHandler(voteSvc), verifier)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	server := &stdhttp.Server{Addr: "0.0.0.0:" + port, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Listening on port %s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func dbConnString() string {
	dbName, user, password, host, port, sslMode := dbConfig()
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, dbName, sslMode)
}

func dbConfig() (dbName, user, password, host, port, sslMode string) {
	dbName = os.Getenv("DB_NAME")
	user = os.Getenv("DB_USER")
	password = os.Getenv("DB_PASSWORD")
	host = os.Getenv("DB_HOST")
	port = os.Getenv("DB_PORT")
	sslMode = "disable"
	if os.Getenv("DB_SSL") == "true" {
		sslMode = "require"
	}
	return
}
