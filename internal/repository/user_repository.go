package repository

import (
	"database/sql"

	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/grupo-estuda/study-backend/internal/model/request"
	"github.com/grupo-estuda/study-backend/internal/model/response"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUserWithPassword(user *request.CreateUserWithPassword) (response.User, error) {
	query := `INSERT INTO profiles (username, password, name) VALUES ($1, $2, NULLIF($3, '')) RETURNING id, username, name, plan`

	var profile response.User
	var name sql.NullString

	err := r.db.QueryRow(query, user.Username, user.Password, user.Name).Scan(
		&profile.ID,
		&profile.Username,
		&name,
		&profile.Plan,
	)
	if err != nil {
		return response.User{}, err
	}

	if name.Valid {
		profile.Name = &name.String
	}

	return profile, nil
}

func (r *UserRepository) GetUserById(userID uuid.UUID) (response.User, error) {
	query := `SELECT id, username, name, plan, created_at, updated_at FROM profiles WHERE id = $1`

	var profile response.User
	var name sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := r.db.QueryRow(query, userID).Scan(
		&profile.ID,
		&profile.Username,
		&name,
		&profile.Plan,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return response.User{}, err
	}

	if name.Valid {
		profile.Name = &name.String
	}
	if createdAt.Valid {
		profile.CreatedAt = &createdAt.Time
	}
	if updatedAt.Valid {
		profile.UpdatedAt = &updatedAt.Time
	}

	return profile, nil
}

func (r *UserRepository) GetUserByUsername(username string) (response.User, error) {
	query := `SELECT id, username, name, plan, password FROM profiles WHERE username = $1`

	var profile response.User
	var name, password sql.NullString

	err := r.db.QueryRow(query, username).Scan(
		&profile.ID,
		&profile.Username,
		&name,
		&profile.Plan,
		&password,
	)
	if err != nil {
		return response.User{}, err
	}

	if name.Valid {
		profile.Name = &name.String
	}
	if password.Valid {
		profile.Password = &password.String
	}

	return profile, nil
}
