package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("INVENTORY_TABLE_NAME", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.StoreBackend != BackendDynamoDB {
		t.Errorf("expected dynamodb backend, got %s", cfg.StoreBackend)
	}
	if cfg.TableName != "" {
		t.Errorf("expected empty table name, got %q", cfg.TableName)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.RequestTimeout)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Errorf("expected no brokers, got %v", cfg.KafkaBrokers)
	}
}

func TestLoad_MySQLDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mysql")
	t.Setenv("DB_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Driver != "mysql" || cfg.Database.Port != "3306" {
		t.Errorf("expected mysql on 3306, got %s on %s", cfg.Database.Driver, cfg.Database.Port)
	}
}

func TestLoad_BrokerList(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("unexpected brokers %v", cfg.KafkaBrokers)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"unknown backend": {"STORE_BACKEND", "cassandra"},
		"bad timeout":     {"REQUEST_TIMEOUT", "soon"},
		"bad port":        {"HTTP_PORT", "http"},
		"bad level":       {"LOG_LEVEL", "loud"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
