package main

import (
	"fmt"
	"os"

	"go-jobboard-backend/pkg/auth"
)

// Generates bcrypt hashes for seeding test accounts:
//
//	go run ./scripts password1 password2 ...
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash <password> [password...]")
		os.Exit(1)
	}

	for _, pass := range os.Args[1:] {
		hash, err := auth.HashPassword(pass)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Password: %s\nHash: %s\n\n", pass, hash)
	}
}
