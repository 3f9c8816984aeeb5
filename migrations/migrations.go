// Package migrations embeds the SQL schema files.
package migrations

import "embed"

// Files holds the up and down statements, named NNNNNN_<name>.{up,down}.sql.
//
//go:embed *.sql
var Files embed.FS

// UsersUp is the idempotent create statement for the users table.
const UsersUp = "000001_users.up.sql"

// UsersDown drops the users table.
const UsersDown = "000001_users.down.sql"
