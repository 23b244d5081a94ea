//go:build integration

package repository

import (
	"context"
	"os"
	"strconv"
	"testing"

	"homecare-admin/internal/common/config"
	"homecare-admin/internal/common/database"
	"homecare-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

// 获取测试数据库连接（连不上则跳过）
func getTestPostgresStore(t *testing.T) *Store {
	cfg := &config.DatabaseConfig{
		DSN:      os.Getenv("DATABASE_URL"),
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnvInt("TEST_DB_PORT", 5432),
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		Database: getEnv("TEST_DB_NAME", "homecare_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}
	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg.GetDSN(), 4, 4)
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to database: %v", err)
		return nil
	}
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, EnsureSchema(ctx, db))
	return NewStore(db)
}

func TestPostgres_CascadeAndDuplicates(t *testing.T) {
	store := getTestPostgresStore(t)
	ctx := context.Background()
	r := store.Repos()

	suffix := domain.NewID()[:8]
	a := &domain.Agency{Name: "Care Agency " + suffix, IsActive: true}
	require.NoError(t, r.Agencies.CreateAgency(ctx, a))
	t.Cleanup(func() { _ = r.Agencies.DeleteAgency(ctx, a.ID) })

	cm := &domain.CaseManager{Name: "John Doe", Email: "john+" + suffix + "@example.com", AgencyID: a.ID}
	require.NoError(t, r.CaseManagers.CreateCaseManager(ctx, cm))
	assert.ErrorIs(t, r.CaseManagers.CreateCaseManager(ctx, &domain.CaseManager{Name: "Dup", Email: cm.Email, AgencyID: a.ID}), domain.ErrDuplicate)

	p := &domain.Participant{
		Name: "AJ", MedicaidID: "MCD-" + suffix, Gender: domain.GenderMale, DOB: mustDate(t, "1950-01-01"),
		Address: "1 Main St", PrimaryPhone: "555-0100", IsActive: true, CaseManagerID: &cm.ID,
	}
	require.NoError(t, r.Participants.CreateParticipant(ctx, p))
	t.Cleanup(func() { _ = r.Participants.DeleteParticipant(ctx, p.ID) })

	svc := &domain.Service{ParticipantID: p.ID, AgencyID: a.ID, Type: domain.ServiceTypeADHC, StartDate: mustDate(t, "2025-03-01")}
	require.NoError(t, r.Services.CreateService(ctx, svc))

	require.NoError(t, r.Agencies.DeleteAgency(ctx, a.ID))
	_, err := r.Services.GetService(ctx, svc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	got, err := r.Participants.GetParticipant(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CaseManagerID)
	assert.Equal(t, "1950-01-01", got.DOB.String())
}
