package main

import (
	"fmt"
	"log"
	"os"

	"campus-portal.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = crypto.HashPassword
	fatalfFn       = log.Fatalf
)

func resolvePassword(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "admin123"
}

func main() {
	password := resolvePassword(os.Args[1:])

	hash, err := generateHashFn(password)
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
	}

	printfFn("Bcrypt Hash: %s\n", hash)
}
