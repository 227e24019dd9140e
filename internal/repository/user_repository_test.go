package repository

import (
	"context"
	"testing"
	"time"

	"lubristore/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/crypto/bcrypt"
)

func createTestOperator(t *testing.T, email, role string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := NewUserRepository(testDB).Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to create operator account: %v", err)
	}
	return user
}

func deleteTestOperator(id uuid.UUID) {
	// user_roles rows cascade with the account
	_, _ = testDB.Exec("DELETE FROM users WHERE id = $1", id)
}

func TestProperty_OperatorRoundTripKeepsHashedCredentials(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	properties := gopter.NewProperties(nil)

	properties.Property("stored operator passwords stay bcrypt-hashed and the role is joined in", prop.ForAll(
		func(email string, password string) bool {
			_, _ = testDB.Exec("DELETE FROM users WHERE email = $1", email)

			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				t.Logf("FAIL: Failed to hash password: %v", err)
				return false
			}

			user := &domain.User{
				ID:           uuid.New(),
				Email:        email,
				PasswordHash: string(hash),
				Role:         "admin",
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			}

			if err := repo.Create(ctx, user); err != nil {
				t.Logf("FAIL: Failed to create operator: %v", err)
				return false
			}

			retrieved, err := repo.FindByEmail(ctx, email)
			if err != nil {
				t.Logf("FAIL: Failed to find operator: %v", err)
				return false
			}

			if retrieved.PasswordHash == password {
				t.Logf("FAIL: password stored as plaintext")
				return false
			}
			if err := bcrypt.CompareHashAndPassword([]byte(retrieved.PasswordHash), []byte(password)); err != nil {
				t.Logf("FAIL: stored hash does not verify: %v", err)
				return false
			}
			if retrieved.Role != "admin" {
				t.Logf("FAIL: expected joined role admin, got %q", retrieved.Role)
				return false
			}

			deleteTestOperator(user.ID)
			return true
		},
		gen.RegexMatch(`[a-z]{5,10}@lubristore\.(com|net)`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	email := "ops-" + uuid.New().String() + "@lubristore.com"
	first := createTestOperator(t, email, "admin")
	defer deleteTestOperator(first.ID)

	duplicate := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: first.PasswordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := NewUserRepository(testDB).Create(context.Background(), duplicate); err != ErrUserAlreadyExists {
		t.Errorf("Expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestCreateWritesRoleRowWhenRoleIsSet(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	admin := createTestOperator(t, "admin-"+uuid.New().String()+"@lubristore.com", "admin")
	defer deleteTestOperator(admin.ID)

	role, err := repo.FindRole(ctx, admin.ID)
	if err != nil {
		t.Fatalf("Failed to look up role: %v", err)
	}
	if role != "admin" {
		t.Errorf("Expected role admin, got %q", role)
	}
}

func TestAccountWithoutRoleRowHasEmptyRole(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	viewer := createTestOperator(t, "viewer-"+uuid.New().String()+"@lubristore.com", "")
	defer deleteTestOperator(viewer.ID)

	role, err := repo.FindRole(ctx, viewer.ID)
	if err != nil {
		t.Fatalf("Failed to look up role: %v", err)
	}
	if role != "" {
		t.Errorf("Expected empty role for account without a role row, got %q", role)
	}

	retrieved, err := repo.FindByID(ctx, viewer.ID)
	if err != nil {
		t.Fatalf("Failed to find operator by ID: %v", err)
	}
	if retrieved.Role != "" {
		t.Errorf("Expected empty joined role, got %q", retrieved.Role)
	}
}
