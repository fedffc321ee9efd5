// cmd/genhash/main.go: Imprime el hash bcrypt de la clave maestra para
// MASTER_PASSWORD_HASH.
// Uso: go run ./cmd/genhash <clave>   (o CLAVE=... go run ./cmd/genhash)
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	clave := os.Getenv("CLAVE")
	if len(os.Args) > 1 {
		clave = os.Args[1]
	}
	if len(clave) < 4 {
		fmt.Fprintln(os.Stderr, "uso: genhash <clave> (mínimo 4 caracteres)")
		os.Exit(2)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(clave), 12)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(h))
}
