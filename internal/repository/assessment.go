package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"assessment-api/internal/models"
	"assessment-api/internal/utils"
)

var ErrAssessmentNotFound = errors.New("assessment not found")

// AssessmentStore is the assessment record contract. Update matches on both
// id and owner; Delete matches on id alone.
type AssessmentStore interface {
	Create(ctx context.Context, assessment *models.Assessment) error
	List(ctx context.Context) ([]models.Assessment, error)
	Update(ctx context.Context, id, ownerID string, req models.AssessmentRequest) error
	Delete(ctx context.Context, id string) error
}

type AssessmentRepository struct {
	db *pgxpool.Pool
}

func NewAssessmentRepository(db *pgxpool.Pool) *AssessmentRepository {
	utils.LogSuccess("AssessmentRepository", "Assessment repository initialized")
	return &AssessmentRepository{db: db}
}

func (r *AssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	query := `INSERT INTO assessments (id, title, description, due_date, owner_id) VALUES ($1, $2, $3, $4, $5)`

	assessment.ID = uuid.New().String()
	utils.LogDB("CREATE ASSESSMENT", fmt.Sprintf("Creating assessment: %s", assessment.Title))

	_, err := r.db.Exec(ctx, query, assessment.ID, assessment.Title, assessment.Description, assessment.DueDate, assessment.OwnerID)
	if err != nil {
		utils.LogError("AssessmentRepository", fmt.Sprintf("Failed to create assessment %s", assessment.Title), err)
		return err
	}

	utils.LogSuccess("AssessmentRepository", fmt.Sprintf("Assessment created: %s (ID: %s)", assessment.Title, assessment.ID))
	return nil
}

func (r *AssessmentRepository) List(ctx context.Context) ([]models.Assessment, error) {
	query := `SELECT id, title, description, due_date, owner_id FROM assessments`

	utils.LogDB("LIST ASSESSMENTS", "Fetching all assessments")

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		utils.LogError("AssessmentRepository", "Failed to fetch assessments", err)
		return nil, err
	}
	defer rows.Close()

	var assessments []models.Assessment
	for rows.Next() {
		var assessment models.Assessment
		err := rows.Scan(
			&assessment.ID,
			&assessment.Title,
			&assessment.Description,
			&assessment.DueDate,
			&assessment.OwnerID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment row: %w", err)
		}
		assessments = append(assessments, assessment)
	}

	utils.LogSuccess("AssessmentRepository", fmt.Sprintf("Fetched %d assessments", len(assessments)))
	return assessments, rows.Err()
}

// Update matches on id AND owner_id. Records created through this API carry a
// NULL owner_id, which never equals a requester id, so they report not found
// here; that mirrors the original contract and is left intact.
func (r *AssessmentRepository) Update(ctx context.Context, id, ownerID string, req models.AssessmentRequest) error {
	query := `
		UPDATE assessments
		SET title = $1, description = $2, due_date = $3
		WHERE id = $4 AND owner_id = $5
	`

	utils.LogDB("UPDATE ASSESSMENT", fmt.Sprintf("Updating assessment %s for owner %s", id, ownerID))

	result, err := r.db.Exec(ctx, query, req.Title, req.Description, req.DueDate, id, ownerID)
	if err != nil {
		utils.LogError("AssessmentRepository", fmt.Sprintf("Failed to update assessment %s", id), err)
		return err
	}

	if result.RowsAffected() == 0 {
		utils.LogWarning("AssessmentRepository", fmt.Sprintf("Assessment not found for update: %s (owner %s)", id, ownerID))
		return ErrAssessmentNotFound
	}

	utils.LogSuccess("AssessmentRepository", fmt.Sprintf("Assessment updated: %s", id))
	return nil
}

func (r *AssessmentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM assessments WHERE id = $1`

	utils.LogDB("DELETE ASSESSMENT", fmt.Sprintf("Deleting assessment: %s", id))

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		utils.LogError("AssessmentRepository", fmt.Sprintf("Failed to delete assessment %s", id), err)
		return err
	}

	if result.RowsAffected() == 0 {
		utils.LogWarning("AssessmentRepository", fmt.Sprintf("Assessment not found for delete: %s", id))
		return ErrAssessmentNotFound
	}

	utils.LogSuccess("AssessmentRepository", fmt.Sprintf("Assessment deleted: %s", id))
	return nil
}
