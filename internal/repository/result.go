package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/shepherd/api/internal/database"
	"github.com/forgo/shepherd/api/internal/model"
)

// ResultRepository stores one scored record per member and assessment
type ResultRepository struct {
	db database.Database
}

// NewResultRepository creates a new result repository
func NewResultRepository(db database.Database) *ResultRepository {
	return &ResultRepository{db: db}
}

// resultKey is the deterministic record id for a member's result of one test,
// so a retake overwrites the previous record
func resultKey(userID string, testType model.TestType) string {
	return recordID("user", userID) + "/" + string(testType)
}

// Save upserts the record for the member and its test type
func (r *ResultRepository) Save(ctx context.Context, userID string, record *model.ScoreRecord) (*model.AssessmentResult, error) {
	doc, err := toDocument(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	query := `
		UPSERT type::thing("assessment_result", $key) SET
			user = type::record($user),
			test_type = $test_type,
			record = $record,
			completed_on = time::now(),
			updated_on = time::now()
	`

	vars := map[string]interface{}{
		"key":       resultKey(userID, record.TestType),
		"user":      recordID("user", userID),
		"test_type": string(record.TestType),
		"record":    doc,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records := resultRecords(result)
	if len(records) == 0 {
		return nil, errors.New("no result returned")
	}
	return parseResult(records[0])
}

// Get returns the member's record for a test; nil when not completed
func (r *ResultRepository) Get(ctx context.Context, userID string, testType model.TestType) (*model.AssessmentResult, error) {
	query := `SELECT * FROM type::thing("assessment_result", $key)`
	vars := map[string]interface{}{"key": resultKey(userID, testType)}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := asRecord(result)
	if err != nil || data == nil {
		return nil, err
	}
	return parseResult(data)
}

// ListByUser returns every completed record of a member
func (r *ResultRepository) ListByUser(ctx context.Context, userID string) ([]*model.AssessmentResult, error) {
	query := `SELECT * FROM assessment_result WHERE user = type::record($user) ORDER BY test_type ASC`
	vars := map[string]interface{}{"user": recordID("user", userID)}

	return r.list(ctx, query, vars)
}

// ListAll returns every stored record, grouped by member
func (r *ResultRepository) ListAll(ctx context.Context) ([]*model.AssessmentResult, error) {
	query := `SELECT * FROM assessment_result ORDER BY user ASC, test_type ASC`

	return r.list(ctx, query, nil)
}

// Delete removes the member's record for a test and reports whether one existed
func (r *ResultRepository) Delete(ctx context.Context, userID string, testType model.TestType) (bool, error) {
	query := `DELETE type::thing("assessment_result", $key) RETURN BEFORE`
	vars := map[string]interface{}{"key": resultKey(userID, testType)}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return false, err
	}
	return len(resultRecords(result)) > 0, nil
}

func (r *ResultRepository) list(ctx context.Context, query string, vars map[string]interface{}) ([]*model.AssessmentResult, error) {
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records := resultRecords(result)
	results := make([]*model.AssessmentResult, 0, len(records))
	for _, data := range records {
		res, err := parseResult(data)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func parseResult(data map[string]interface{}) (*model.AssessmentResult, error) {
	res := &model.AssessmentResult{
		ID:          convertSurrealID(data["id"]),
		UserID:      convertSurrealID(data["user"]),
		TestType:    model.TestType(getString(data, "test_type")),
		CompletedOn: getTimeValue(data, "completed_on"),
		UpdatedOn:   getTimeValue(data, "updated_on"),
	}

	if err := fromDocument(data["record"], &res.Record); err != nil {
		return nil, fmt.Errorf("decode %s record: %w", res.TestType, err)
	}
	if res.Record.TestType == "" {
		res.Record.TestType = res.TestType
	}
	return res, nil
}
