package sqlite

import (
	"context"
	"strings"

	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/persistence"
)

// CompanyRepository implements persistence.CompanyRepository using SQLite
type CompanyRepository struct {
	pool *ConnectionPool
}

// NewCompanyRepository creates a new SQLite company repository
func NewCompanyRepository(pool *ConnectionPool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

const companyColumns = `id, name, description, created_at, updated_at`

// UpsertCompany inserts a company or replaces the mutable fields of an
// existing one. created_at is kept from the first insert.
func (r *CompanyRepository) UpsertCompany(ctx context.Context, company persistence.Company) error {
	return upsertCompany(ctx, r.pool.DB(), company)
}

func upsertCompany(ctx context.Context, q queryer, company persistence.Company) error {
	if strings.TrimSpace(company.ID) == "" || strings.TrimSpace(company.Name) == "" {
		return persistence.ErrConstraintViolation
	}

	const query = `
		INSERT INTO companies (` + companyColumns + `)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			updated_at = excluded.updated_at
	`
	_, err := q.ExecContext(ctx, query,
		company.ID,
		company.Name,
		company.Description,
		formatTime(company.CreatedAt),
		formatTime(company.UpdatedAt),
	)
	return mapError(err)
}

// GetCompany retrieves a company by ID
func (r *CompanyRepository) GetCompany(ctx context.Context, id string) (persistence.Company, error) {
	if id == "" {
		return persistence.Company{}, persistence.ErrNotFound
	}
	row := r.pool.DB().QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = ?`, id)
	return scanCompany(row)
}

// ListCompanies returns every company ordered by name
func (r *CompanyRepository) ListCompanies(ctx context.Context) ([]persistence.Company, error) {
	rows, err := r.pool.DB().QueryContext(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name, id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	companies := []persistence.Company{}
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return companies, nil
}

func scanCompany(row rowScanner) (persistence.Company, error) {
	var (
		company              persistence.Company
		createdAt, updatedAt string
	)
	if err := row.Scan(&company.ID, &company.Name, &company.Description, &createdAt, &updatedAt); err != nil {
		return persistence.Company{}, mapError(err)
	}

	var err error
	if company.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return persistence.Company{}, err
	}
	if company.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return persistence.Company{}, err
	}
	return company, nil
}
