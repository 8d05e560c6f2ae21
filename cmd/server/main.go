package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/jrsteele09/go-social-login/emailaddress"
	fakeemailrepo "github.com/jrsteele09/go-social-login/emailaddress/repofakes"
	"github.com/jrsteele09/go-social-login/internal/config"
	"github.com/jrsteele09/go-social-login/providers"
	"github.com/jrsteele09/go-social-login/providers/github"
	"github.com/jrsteele09/go-social-login/providers/google"
	"github.com/jrsteele09/go-social-login/server"
	"github.com/jrsteele09/go-social-login/sessions"
	"github.com/jrsteele09/go-social-login/socialaccount"
	fakesocialrepos "github.com/jrsteele09/go-social-login/socialaccount/repofakes"
	fakeuserrepo "github.com/jrsteele09/go-social-login/users/repofake"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load() // Missing .env is fine, env vars may be set directly

	c := config.New()
	displayAppname(c.GetAppName())

	registry := providers.NewRegistry(github.New(), google.New())

	// In-memory store set - swap for persistent repos in deployment
	repos := socialaccount.Repos{
		Accounts: fakesocialrepos.NewFakeAccountRepo(),
		Tokens:   fakesocialrepos.NewFakeTokenRepo(),
		Apps:     fakesocialrepos.NewFakeAppRepo(),
		Users:    fakeuserrepo.NewFakeUserRepo(),
	}
	emailManager, err := emailaddress.NewManager(fakeemailrepo.NewFakeEmailRepo())
	if err != nil {
		return fmt.Errorf("emailaddress.NewManager: %w", err)
	}
	sessionRepo := sessions.NewInMemorySessionRepo()

	srv, err := server.New(c, registry, repos, emailManager, sessionRepo)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	if err := srv.InitialiseApps(); err != nil {
		return fmt.Errorf("server.InitialiseApps: %w", err)
	}

	stopCleanup := startSessionCleanup(sessionRepo, c.GetSessionCleanupInterval())
	defer stopCleanup()

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func startSessionCleanup(repo sessions.Repo, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := repo.DeleteExpired(time.Now()); err != nil {
					log.Printf("Session cleanup failed: %v\n", err)
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
