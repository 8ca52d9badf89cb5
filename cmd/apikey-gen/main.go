package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"auto-diag.backend/pkg/crypto"
)

var generateKey = crypto.GenerateAPIKey

func main() {
	if err := run(os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run mints one raw key and prints it with its stored hash. The raw key is
// shown here and nowhere else; only the hash goes into the database.
func run(w io.Writer) error {
	rawKey, err := generateKey()
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	fmt.Fprintf(w, "API key (give to the client, shown once):\n  %s\n\n", rawKey)
	fmt.Fprintf(w, "SHA-256 hash (store in api_keys.key_hash):\n  %s\n", crypto.HashAPIKey(rawKey))
	return nil
}
