package postgres

import "database/sql"

// Deletes and targeted updates report sql.ErrNoRows when nothing matched so
// the service layer can map them to not-found.
var errNoRows = sql.ErrNoRows
