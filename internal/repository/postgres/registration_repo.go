package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"findmydocs/internal/domain"
	"findmydocs/internal/port"
)

type registrationRepo struct {
	db *sqlx.DB
}

// NewRegistrationRepo creates a new PostgreSQL-backed RegistrationRepository.
func NewRegistrationRepo(db *sqlx.DB) port.RegistrationRepository {
	return &registrationRepo{db: db}
}

func (r *registrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	if reg.ID == uuid.Nil {
		reg.ID = uuid.New()
	}
	reg.CreatedAt = time.Now().UTC()

	query := `INSERT INTO registrations (id, name, email, nic, password_hash,
		role, department, index_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		reg.ID, reg.Name, reg.Email, reg.NIC, reg.PasswordHash,
		reg.Role, reg.Department, reg.IndexNumber, reg.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrRegistrationPending
		}
		return fmt.Errorf("registrationRepo.Create: %w", err)
	}
	return nil
}

func (r *registrationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	var reg domain.Registration
	err := r.db.GetContext(ctx, &reg, "SELECT * FROM registrations WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("registrationRepo.GetByID: %w", err)
	}
	return &reg, nil
}

func (r *registrationRepo) GetByEmail(ctx context.Context, email string) (*domain.Registration, error) {
	var reg domain.Registration
	err := r.db.GetContext(ctx, &reg, "SELECT * FROM registrations WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("registrationRepo.GetByEmail: %w", err)
	}
	return &reg, nil
}

func (r *registrationRepo) GetByNIC(ctx context.Context, nic string) (*domain.Registration, error) {
	var reg domain.Registration
	err := r.db.GetContext(ctx, &reg, "SELECT * FROM registrations WHERE nic = $1", nic)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("registrationRepo.GetByNIC: %w", err)
	}
	return &reg, nil
}

func (r *registrationRepo) List(ctx context.Context) ([]domain.Registration, error) {
	var regs []domain.Registration
	err := r.db.SelectContext(ctx, &regs,
		"SELECT * FROM registrations ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("registrationRepo.List: %w", err)
	}
	return regs, nil
}

func (r *registrationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM registrations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("registrationRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
