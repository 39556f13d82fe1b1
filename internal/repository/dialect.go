package repository

import (
	"strings"

	"github.com/jmoiron/sqlx"
)

// oracleDriver is the database/sql name registered by go-ora.
const oracleDriver = "oracle"

func init() {
	// sqlx only knows godror/oci8 as Oracle drivers; go-ora uses ":name" binds too.
	sqlx.BindDriver(oracleDriver, sqlx.NAMED)
}

func isOracle(exec DBTX) bool {
	return exec.DriverName() == oracleDriver
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term anywhere, lower-cased,
// for use with ESCAPE '\'.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
