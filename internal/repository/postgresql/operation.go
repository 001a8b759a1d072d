package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/operation"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type operationRepository struct {
	db *database.DB
}

// NewOperationRepository creates a new operation log repository
func NewOperationRepository(db *database.DB) operation.Repository {
	return &operationRepository{db: db}
}

func prepareOperation(op *operation.Operation) ([]byte, error) {
	if op.ID == "" {
		op.ID = uuid.New().String()
	}
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now()
	}
	if op.Metadata == nil {
		op.Metadata = map[string]interface{}{}
	}
	return json.Marshal(op.Metadata)
}

// Create inserts a single operation
func (r *operationRepository) Create(ctx context.Context, op *operation.Operation) error {
	q := GetQuerier(ctx, r.db)

	metadataJSON, err := prepareOperation(op)
	if err != nil {
		return fmt.Errorf("failed to marshal operation metadata: %w", err)
	}

	query := `
		INSERT INTO operations (id, actor_user_id, target_user_id, action, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = q.Exec(ctx, query,
		op.ID,
		op.ActorUserID,
		op.TargetUserID,
		op.Action,
		metadataJSON,
		op.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create operation: %w", err)
	}

	return nil
}

// CreateBatch inserts multiple operations in one statement
func (r *operationRepository) CreateBatch(ctx context.Context, ops []*operation.Operation) error {
	if len(ops) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(ops))
	valueArgs := make([]interface{}, 0, len(ops)*6)

	for i, op := range ops {
		metadataJSON, err := prepareOperation(op)
		if err != nil {
			return fmt.Errorf("failed to marshal operation metadata: %w", err)
		}

		base := i * 6
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
		))
		valueArgs = append(valueArgs,
			op.ID,
			op.ActorUserID,
			op.TargetUserID,
			op.Action,
			metadataJSON,
			op.CreatedAt,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO operations (id, actor_user_id, target_user_id, action, metadata, created_at)
		VALUES %s
	`, strings.Join(valueStrings, ", "))

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to batch create operations: %w", err)
	}

	return nil
}

// ListRecent returns the newest operations across all actors
func (r *operationRepository) ListRecent(ctx context.Context, limit int) ([]operation.Operation, error) {
	query := `
		SELECT id, actor_user_id, target_user_id, action, metadata, created_at
		FROM operations
		ORDER BY created_at DESC
		LIMIT $1
	`
	return r.list(ctx, query, limit)
}

// ListByActor returns the newest operations performed by one user
func (r *operationRepository) ListByActor(ctx context.Context, actorUserID string, limit int) ([]operation.Operation, error) {
	query := `
		SELECT id, actor_user_id, target_user_id, action, metadata, created_at
		FROM operations
		WHERE actor_user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.list(ctx, query, actorUserID, limit)
}

func (r *operationRepository) list(ctx context.Context, query string, args ...interface{}) ([]operation.Operation, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	defer rows.Close()

	var ops []operation.Operation
	for rows.Next() {
		var op operation.Operation
		var metadataJSON []byte

		if err := rows.Scan(
			&op.ID,
			&op.ActorUserID,
			&op.TargetUserID,
			&op.Action,
			&metadataJSON,
			&op.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &op.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal operation metadata: %w", err)
			}
		}

		ops = append(ops, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operations: %w", err)
	}

	return ops, nil
}
