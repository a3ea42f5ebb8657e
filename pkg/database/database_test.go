package database

import (
	"strings"
	"testing"
)

func TestDSN_Postgres(t *testing.T) {
	cfg := Config{Driver: DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p", DBName: "pantry", SSLMode: "disable"}

	dsn := cfg.DSN()
	want := "host=db port=5432 user=u password=p dbname=pantry sslmode=disable"
	if dsn != want {
		t.Errorf("expected %q, got %q", want, dsn)
	}
}

func TestDSN_MySQL(t *testing.T) {
	cfg := Config{Driver: DriverMySQL, Host: "db", Port: "3306", User: "u", Password: "p", DBName: "pantry"}

	dsn := cfg.DSN()
	if !strings.HasPrefix(dsn, "u:p@tcp(db:3306)/pantry") {
		t.Errorf("unexpected mysql dsn %q", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") || !strings.Contains(dsn, "clientFoundRows=true") {
		t.Errorf("expected parseTime in %q", dsn)
	}
}
