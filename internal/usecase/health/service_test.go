package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockResolver struct {
	err error
}

func (m *mockResolver) ResolveBaseURL(_ context.Context, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "http://catalog.local", nil
}

type mockChecker struct {
	err error
}

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockResolver{}, "catalog", nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %s, want %s", report.Status, Healthy)
	}
	if report.Checks["database"] != CheckOK || report.Checks["catalog"] != CheckOK {
		t.Errorf("checks = %v", report.Checks)
	}
	if _, ok := report.Checks["embedding"]; ok {
		t.Error("embedding check present without a checker")
	}
}

func TestCheck_DatabaseDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("connection refused")}, &mockResolver{}, "catalog", nil)

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %s, want %s", report.Status, Degraded)
	}
	if report.Checks["database"] != CheckError {
		t.Errorf("database check = %s", report.Checks["database"])
	}
	if report.Checks["catalog"] != CheckOK {
		t.Errorf("catalog check = %s", report.Checks["catalog"])
	}
}

func TestCheck_CatalogUnresolvable(t *testing.T) {
	svc := New(&mockPinger{}, &mockResolver{err: errors.New("unknown service")}, "catalog", nil)

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %s, want %s", report.Status, Degraded)
	}
	if report.Checks["catalog"] != CheckError {
		t.Errorf("catalog check = %s", report.Checks["catalog"])
	}
}

func TestCheck_EmbeddingIncludedWhenConfigured(t *testing.T) {
	svc := New(&mockPinger{}, &mockResolver{}, "catalog", &mockChecker{err: errors.New("401")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %s, want %s", report.Status, Degraded)
	}
	if report.Checks["embedding"] != CheckError {
		t.Errorf("embedding check = %s", report.Checks["embedding"])
	}
}
