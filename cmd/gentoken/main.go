// Test program to generate JWT tokens for manual API testing
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/eventorbit/server/internal/auth"
)

func main() {
	email := flag.String("email", "admin@example.com", "email claim")
	role := flag.String("role", "admin", "role claim (admin or user)")
	id := flag.String("id", "01JC0000000000000000000000", "account id claim")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Error: JWT_SECRET is not set")
		os.Exit(1)
	}

	manager := auth.NewJWTManager(secret, time.Hour, 24*time.Hour, "eventorbit")
	pair, err := manager.Issue(*email, *role, *id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Access token:")
	fmt.Println(pair.Access)
	fmt.Println("\nTest with:")
	fmt.Printf("curl -H 'Authorization: Bearer %s' http://localhost:8080/api/get-events/\n", pair.Access)
}
