package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.JWTIssuer != "learnai-auth" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "learnai-auth")
	}
	if cfg.JWTAudience != "learnai-api" {
		t.Errorf("JWTAudience = %q, want %q", cfg.JWTAudience, "learnai-api")
	}
	if cfg.JWTTTL != "24h" {
		t.Errorf("JWTTTL = %q, want %q", cfg.JWTTTL, "24h")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.S3Bucket != "learnai" {
		t.Errorf("S3Bucket = %q, want %q", cfg.S3Bucket, "learnai")
	}
	if cfg.AuditKafkaTopic != "learnai-audit" {
		t.Errorf("AuditKafkaTopic = %q, want %q", cfg.AuditKafkaTopic, "learnai-audit")
	}
	if cfg.HasS3Config() {
		t.Error("HasS3Config should be false with no S3 settings")
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("JWT_ISSUER", "custom-issuer")
	os.Setenv("BCRYPT_COST", "14")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.JWTIssuer != "custom-issuer" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "custom-issuer")
	}
	if cfg.BcryptCost != 14 {
		t.Errorf("BcryptCost = %d, want 14", cfg.BcryptCost)
	}
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")
	os.Setenv("BCRYPT_COST", "99")

	if _, err := Load(); err == nil {
		t.Fatal("Load should reject BCRYPT_COST=99")
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")
	os.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("Load should require JWT_SECRET in production")
	}
}

func TestSessionTTL(t *testing.T) {
	c := &Config{JWTTTL: "15m"}
	if got := c.SessionTTL(); got != 15*time.Minute {
		t.Errorf("SessionTTL = %v, want 15m", got)
	}
	c = &Config{JWTTTL: "0"}
	if got := c.SessionTTL(); got != 0 {
		t.Errorf("SessionTTL = %v, want 0 (no expiry)", got)
	}
	c = &Config{JWTTTL: "bogus"}
	if got := c.SessionTTL(); got != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h fallback", got)
	}
}

func TestResourceTTL(t *testing.T) {
	c := &Config{ResourceURLTTL: "90s"}
	if got := c.ResourceTTL(); got != 90*time.Second {
		t.Errorf("ResourceTTL = %v, want 90s", got)
	}
	c = &Config{}
	if got := c.ResourceTTL(); got != 60*time.Second {
		t.Errorf("ResourceTTL = %v, want 60s default", got)
	}
}

func TestAuditKafkaBrokersList(t *testing.T) {
	c := &Config{AuditKafkaBrokers: "localhost:9092, broker2:9092 ,"}
	got := c.AuditKafkaBrokersList()
	if len(got) != 2 || got[0] != "localhost:9092" || got[1] != "broker2:9092" {
		t.Errorf("AuditKafkaBrokersList = %v", got)
	}
	c = &Config{}
	if got := c.AuditKafkaBrokersList(); got != nil {
		t.Errorf("AuditKafkaBrokersList on empty = %v, want nil", got)
	}
}
