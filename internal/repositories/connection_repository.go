package repositories

import (
	"context"

	"github.com/anonto42/nano-link/backend/internal/models"
	"gorm.io/gorm"
)

// ConnectionRepository defines the interface for connection operations
type ConnectionRepository interface {
	CreateConnection(ctx context.Context, conn *models.Connection) error
	GetConnectionByID(ctx context.Context, id string) (*models.Connection, error)
	ListConnections(ctx context.Context, userID string, status models.ConnectionStatus) ([]models.ConnectionView, error)
	ListAllForUser(ctx context.Context, userID string) ([]models.Connection, error)
	TransitionStatus(ctx context.Context, id string, from, to models.ConnectionStatus, updatedAt int64) (bool, error)
	DeleteConnection(ctx context.Context, id string) error
}

// PostgresConnectionRepository implements ConnectionRepository on gorm
type PostgresConnectionRepository struct {
	db *gorm.DB
}

// NewPostgresConnectionRepository creates a new PostgresConnectionRepository
func NewPostgresConnectionRepository(db *gorm.DB) *PostgresConnectionRepository {
	return &PostgresConnectionRepository{db: db}
}

// NewConnectionRepository returns the default ConnectionRepository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return NewPostgresConnectionRepository(db)
}

// CreateConnection inserts a request. Any existing row for the same pair, in
// either direction, makes it fail with ErrDuplicate.
func (r *PostgresConnectionRepository) CreateConnection(ctx context.Context, conn *models.Connection) error {
	return translateError(r.db.WithContext(ctx).Create(conn).Error)
}

func (r *PostgresConnectionRepository) GetConnectionByID(ctx context.Context, id string) (*models.Connection, error) {
	var conn models.Connection
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&conn).Error; err != nil {
		return nil, err
	}
	return &conn, nil
}


// ListConnections returns the user's connections with the given status, each
// joined to the user on the other side, most recently updated first.
func (r *PostgresConnectionRepository) ListConnections(ctx context.Context, userID string, status models.ConnectionStatus) ([]models.ConnectionView, error) {
	views := []models.ConnectionView{}
	err := r.db.WithContext(ctx).Table("connections").
		Select(`connections.id AS id, connections.status AS status, connections.created_at AS created_at,
			connections.updated_at AS updated_at, connections.requester_id AS requester_id,
			users.id AS user_id, users.name AS user_name, users.email AS user_email, users.image AS user_image`).
		Joins("JOIN users ON users.id = CASE WHEN connections.requester_id = ? THEN connections.addressee_id ELSE connections.requester_id END", userID).
		Where("(connections.requester_id = ? OR connections.addressee_id = ?) AND connections.status = ?", userID, userID, status).
		Order("connections.updated_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	for i := range views {
		views[i].IsRequester = views[i].RequesterID == userID
	}
	return views, nil
}

// ListAllForUser returns every connection row touching the user, any status
func (r *PostgresConnectionRepository) ListAllForUser(ctx context.Context, userID string) ([]models.Connection, error) {
	conns := []models.Connection{}
	err := r.db.WithContext(ctx).
		Where("requester_id = ? OR addressee_id = ?", userID, userID).
		Find(&conns).Error
	return conns, err
}

// TransitionStatus moves a connection from one status to another. It reports
// false when the row was not in the expected status, so concurrent responders
// cannot both succeed.
func (r *PostgresConnectionRepository) TransitionStatus(ctx context.Context, id string, from, to models.ConnectionStatus, updatedAt int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Connection{}).
		Where("id = ? AND status = ?", id, from).
		UpdateColumns(map[string]interface{}{"status": to, "updated_at": updatedAt})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *PostgresConnectionRepository) DeleteConnection(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Connection{}).Error
}
