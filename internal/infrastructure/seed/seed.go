// Package seed holds the sample data loaded into an empty database.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
)

//go:embed jobs.json
var jobsJSON []byte

// Jobs returns the sample job postings.
func Jobs() ([]*domain.Job, error) {
	var jobs []*domain.Job
	if err := json.Unmarshal(jobsJSON, &jobs); err != nil {
		return nil, fmt.Errorf("decode sample jobs: %w", err)
	}
	return jobs, nil
}
