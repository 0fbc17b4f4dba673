package registry

import (
	"errors"
	"fmt"
	"time"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/validation"
)

// Validate checks ids, task types and required fields. All problems are
// reported together.
func (r *ActivityRegistry) Validate() error {
	if len(r.Activities) == 0 {
		return errors.New("registry contains no activities")
	}

	var errs []error
	ids := make(map[string]bool, len(r.Activities))
	taskTypes := make(map[string]bool, len(r.Activities))

	for i, a := range r.Activities {
		name := a.ID
		if name == "" {
			name = fmt.Sprintf("activities[%d]", i)
			errs = append(errs, fmt.Errorf("%s: missing id", name))
		} else if ids[a.ID] {
			errs = append(errs, fmt.Errorf("duplicate activity ID: %s", a.ID))
		}
		ids[a.ID] = true

		if a.TaskType == "" {
			errs = append(errs, fmt.Errorf("%s: missing taskType", name))
		} else if taskTypes[a.TaskType] {
			errs = append(errs, fmt.Errorf("duplicate taskType: %s", a.TaskType))
		}
		taskTypes[a.TaskType] = true

		if a.DisplayName == "" {
			errs = append(errs, fmt.Errorf("%s: missing displayName", name))
		}
		if a.Category == "" {
			errs = append(errs, fmt.Errorf("%s: missing category", name))
		}
		if !validStatuses[a.ImplementationStatus] {
			errs = append(errs, fmt.Errorf("%s: invalid implementationStatus %q", name, a.ImplementationStatus))
		}
		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid timeout %q", name, a.Timeout))
			}
		}
		if a.Retries < 0 {
			errs = append(errs, fmt.Errorf("%s: negative retries", name))
		}
	}

	return errors.Join(errs...)
}

// Lint compiles every non-empty input and output schema.
func (r *ActivityRegistry) Lint() error {
	var errs []error
	for _, a := range r.Activities {
		if len(a.InputSchema) > 0 {
			if err := validation.CompileSchema(a.InputSchema); err != nil {
				errs = append(errs, fmt.Errorf("%s inputSchema: %w", a.ID, err))
			}
		}
		if len(a.OutputSchema) > 0 {
			if err := validation.CompileSchema(a.OutputSchema); err != nil {
				errs = append(errs, fmt.Errorf("%s outputSchema: %w", a.ID, err))
			}
		}
	}
	return errors.Join(errs...)
}
