// seed gera o script SQL de bootstrap do primeiro admin: o cadastro normal
// passa por /api/auth/register, mas o primeiro usuário precisa existir antes
// de qualquer login.
//
// Uso: go run ./cmd/seed <email> <senha> [nome]
// Escreve: internal/infrastructure/postgres/migrations/002_seed_admin.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: seed <email> <senha> [nome]")
		os.Exit(1)
	}
	email, password := os.Args[1], os.Args[2]
	name := "Administrador"
	if len(os.Args) > 3 {
		name = os.Args[3]
	}
	if len(password) < 8 {
		fmt.Fprintln(os.Stderr, "a senha deve ter pelo menos 8 caracteres")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gerar hash: %v\n", err)
		os.Exit(1)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	var b strings.Builder
	b.WriteString("-- Gerado por cmd/seed. Admin inicial; troque a senha após o primeiro login.\n")
	b.WriteString("INSERT INTO users (id, email, password_hash, name, role, status, created_at, updated_at)\n")
	fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', 'admin', 'active', '%s', '%s')\n",
		uuid.New().String(), sqlEscape(email), string(hash), sqlEscape(name), now, now)
	b.WriteString("ON CONFLICT (email) DO NOTHING;\n")

	outPath := filepath.Join("internal", "infrastructure", "postgres", "migrations", "002_seed_admin.sql")
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "escrever %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Escrito %s (admin %s)\n", outPath, email)
}

func sqlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
