package main

// database/sql drivers selectable through DB_DRIVER
import (
	_ "github.com/alexbrainman/odbc"
	_ "github.com/jackc/pgx/v5/stdlib"
)
