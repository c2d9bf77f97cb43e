package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que el adaptador traduce a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// isPgErrCode verifica el SQLSTATE del error; si algún intermediario aplanó el
// error a texto, busca el código en el mensaje.
func isPgErrCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// isUniqueViolation: violación de constraint único (SKU, email, referencia de venta).
func isUniqueViolation(err error) bool {
	return isPgErrCode(err, codeUniqueViolation)
}

// isForeignKeyViolation: FK rota. El motor valida existencia antes de insertar,
// pero producto y bodega no quedan bloqueados: un DELETE concurrente del
// catálogo rompe la FK recién en el INSERT.
func isForeignKeyViolation(err error) bool {
	return isPgErrCode(err, codeForeignKeyViolation)
}
