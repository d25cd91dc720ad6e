// Package migrations встраивает SQL-миграции в бинарник.
package migrations

import "embed"

// AuthDir - каталог миграций сервиса аутентификации внутри Auth.
const AuthDir = "auth"

// Auth содержит миграции схемы пользователей.
//
//go:embed auth/*.sql
var Auth embed.FS
