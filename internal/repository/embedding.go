package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"github.com/abduldattijo/biometricattendance/internal/domain"
)

type EmbeddingRepository struct {
	pool PgxPool
}

func NewEmbeddingRepository(pool PgxPool) *EmbeddingRepository {
	return &EmbeddingRepository{pool: pool}
}

// Create stores one pose embedding. Re-enrolling a pose replaces the previous
// row so an employee never accumulates stale vectors for the same pose.
func (r *EmbeddingRepository) Create(ctx context.Context, embedding *domain.FaceEmbedding) error {
	query := `
		INSERT INTO face_embeddings (id, employee_id, pose, embedding, quality_score, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (employee_id, pose)
		DO UPDATE SET embedding = EXCLUDED.embedding,
		              quality_score = EXCLUDED.quality_score,
		              created_at = NOW()
		RETURNING created_at
	`

	if embedding.ID == uuid.Nil {
		embedding.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		embedding.ID,
		embedding.EmployeeID,
		string(embedding.Pose),
		toVector(embedding.Embedding),
		embedding.QualityScore,
	).Scan(&embedding.CreatedAt)

	if err != nil {
		return fmt.Errorf("create embedding: %w", err)
	}

	return nil
}

// ListAll loads the full gallery of active employees' embeddings for matching.
func (r *EmbeddingRepository) ListAll(ctx context.Context) ([]domain.EnrolledEmbedding, error) {
	query := `
		SELECT f.employee_id, f.pose, f.embedding
		FROM face_embeddings f
		JOIN employees e ON e.employee_id = f.employee_id
		WHERE e.is_active
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list embeddings: %w", err)
	}
	defer rows.Close()

	var enrolled []domain.EnrolledEmbedding
	for rows.Next() {
		var e domain.EnrolledEmbedding
		var pose string
		var vec pgvector.Vector
		if err := rows.Scan(&e.EmployeeID, &pose, &vec); err != nil {
			return nil, fmt.Errorf("scan embedding: %w", err)
		}
		e.Pose = domain.PoseTarget(pose)
		e.Embedding = fromVector(vec)
		enrolled = append(enrolled, e)
	}

	return enrolled, rows.Err()
}

func (r *EmbeddingRepository) DeleteByEmployee(ctx context.Context, employeeID string) error {
	query := `
		DELETE FROM face_embeddings WHERE employee_id = $1
	`

	if _, err := r.pool.Exec(ctx, query, employeeID); err != nil {
		return fmt.Errorf("delete embeddings: %w", err)
	}

	return nil
}

func toVector(embedding []float64) pgvector.Vector {
	floats := make([]float32, len(embedding))
	for i, v := range embedding {
		floats[i] = float32(v)
	}
	return pgvector.NewVector(floats)
}

func fromVector(vec pgvector.Vector) []float64 {
	slice := vec.Slice()
	embedding := make([]float64, len(slice))
	for i, v := range slice {
		embedding[i] = float64(v)
	}
	return embedding
}
