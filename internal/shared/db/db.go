package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

func ConnectPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// Códigos SQLSTATE usados no mapeamento de erros para HTTP
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
)

// IsUniqueViolation indica violação de UNIQUE (ex.: slug duplicado)
func IsUniqueViolation(err error) bool { return hasCode(err, codeUniqueViolation) }

// IsInvalidReference indica FK inexistente, NOT NULL/CHECK violado ou uuid malformado
func IsInvalidReference(err error) bool {
	return hasCode(err, codeForeignKeyViolation) ||
		hasCode(err, codeNotNullViolation) ||
		hasCode(err, codeCheckViolation) ||
		hasCode(err, codeInvalidText)
}

// Message devolve a mensagem do Postgres, ou err.Error() se não for *pq.Error
func Message(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Message
	}
	return err.Error()
}

func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}
