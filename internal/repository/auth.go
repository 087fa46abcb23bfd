package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Debottam1234567890/Scam-Detector/internal/models"
)

// ErrNoUser is returned when a username does not exist.
var ErrNoUser = errors.New("repository: user not found")

// AuthRepository handles operator account storage.
type AuthRepository interface {
	CreateUser(user *models.User) error
	GetUserByUsername(username string) (*models.User, error)
	CountUsers() (int, error)
}

type authRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAuthRepository creates a new auth repository.
func NewAuthRepository(db *sqlx.DB, logger *zap.Logger) AuthRepository {
	return &authRepository{db: db, logger: logger}
}

func (r *authRepository) CreateUser(user *models.User) error {
	res, err := r.db.Exec(`
		INSERT INTO users (username, password_hash, role)
		VALUES (?, ?, ?)
	`, user.Username, user.PasswordHash, user.Role)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (r *authRepository) GetUserByUsername(username string) (*models.User, error) {
	user := &models.User{}
	err := r.db.Get(user, `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE username = ?
	`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoUser
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *authRepository) CountUsers() (int, error) {
	var count int
	err := r.db.Get(&count, "SELECT COUNT(*) FROM users")
	return count, err
}
