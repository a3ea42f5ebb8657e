package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/pantry/internal/pantry/domain"
)

func getGormDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("PANTRY_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PANTRY_TEST_POSTGRES_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	return db
}

// getMySQLDB expects a DSN with parseTime=true, e.g.
// root:secret@tcp(localhost:3306)/pantry?parseTime=true&clientFoundRows=true
func getMySQLDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("PANTRY_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("PANTRY_TEST_MYSQL_DSN not set")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	return db
}

func migratedRepository(t *testing.T, db *gorm.DB) *GormItemRepository {
	table := "pantry_items_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

	repo := NewGormItemRepository(db, table)
	if err := repo.AutoMigrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		db.Migrator().DropTable(table)
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return repo
}

func TestGormItemRepository_Contract(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) domain.ItemRepository {
		return migratedRepository(t, getGormDB(t))
	})
}

func TestGormItemRepository_MySQLContract(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) domain.ItemRepository {
		return migratedRepository(t, getMySQLDB(t))
	})
}

// dryRunMySQL builds statements with the mysql dialector without a server.
func dryRunMySQL(t *testing.T) *gorm.DB {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "pantry:pantry@tcp(127.0.0.1:3306)/pantry?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("open dry-run mysql: %v", err)
	}
	return db
}

func TestGormItemRepository_MySQLCreateIsPlainInsert(t *testing.T) {
	db := dryRunMySQL(t)

	var statement string
	err := db.Callback().Create().After("gorm:create").Register("pantry:capture_sql", func(tx *gorm.DB) {
		statement = tx.Statement.SQL.String()
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	repo := NewGormItemRepository(db, "pantry_items")
	now := time.Now().UTC().Truncate(time.Microsecond)
	if err := repo.Create(context.Background(), &domain.Item{OwnerID: "u1", ItemID: "a", Name: "Rice", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if !strings.HasPrefix(statement, "INSERT INTO") {
		t.Fatalf("expected an INSERT, got %q", statement)
	}
	if strings.Contains(statement, "ON DUPLICATE KEY") {
		t.Errorf("a colliding insert must fail, not upsert: %q", statement)
	}
}

func TestGormItemRepository_MySQLStampsKeepMicroseconds(t *testing.T) {
	db := dryRunMySQL(t)

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(&domain.Item{}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	for _, name := range []string{"CreatedAt", "UpdatedAt"} {
		field := stmt.Schema.LookUpField(name)
		if field == nil {
			t.Fatalf("field %s not found", name)
		}
		if got := db.Dialector.DataTypeOf(field); !strings.HasPrefix(got, "datetime(6)") {
			t.Errorf("%s: expected datetime(6), got %q", name, got)
		}
	}
}

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql duplicate entry", &gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, true},
		{"wrapped duplicate entry", fmt.Errorf("insert: %w", &gomysql.MySQLError{Number: 1062}), true},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"other mysql error", &gomysql.MySQLError{Number: 1146, Message: "Table doesn't exist"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicateKey(tt.err); got != tt.want {
				t.Errorf("isDuplicateKey(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestPatchColumns(t *testing.T) {
	cols := patchColumns(domain.ItemPatch{
		ExpiryDate: domain.Set("2025-01-01"),
		Category:   domain.Null[string](),
	})

	if len(cols) != 2 {
		t.Fatalf("expected 2 columns, got %v", cols)
	}
	if v, ok := cols["expiry_date"].(*string); !ok || *v != "2025-01-01" {
		t.Errorf("unexpected expiry_date %v", cols["expiry_date"])
	}
	if v, ok := cols["category"].(*string); !ok || v != nil {
		t.Errorf("expected typed nil category, got %v", cols["category"])
	}
}

func TestGormItemRepository_AutoMigrateWithoutTable(t *testing.T) {
	repo := NewGormItemRepository(nil, "")
	if err := repo.AutoMigrate(); err != nil {
		t.Errorf("expected no-op without a table name, got %v", err)
	}
}
