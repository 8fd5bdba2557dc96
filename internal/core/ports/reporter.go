package ports

import "go.trai.ch/cjsguard/internal/core/domain"

// Reporter writes lint results to the user.
type Reporter interface {
	// Report renders all results of one lint run.
	Report(results []domain.FileResult) error
}
