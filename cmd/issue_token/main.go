package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/familyllc/recipe-manager/backend/config"
	"github.com/familyllc/recipe-manager/backend/internal/service"
)

// Prints a bearer token that unlocks the write routes when JWT_SECRET is set.
func main() {
	subject := flag.String("subject", "family", "who the token is issued to")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "how long the token stays valid")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set; write routes are open and need no token")
	}

	token, err := service.NewTokenService(cfg.JWTSecret).IssueToken(*subject, *ttl)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Println(token)
}
