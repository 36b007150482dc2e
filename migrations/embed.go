package migrations

import "embed"

// Files holds the credential store schema. db.OpenSQLite applies the files
// in version order, each at most once.
//
//go:embed *.sql
var Files embed.FS
