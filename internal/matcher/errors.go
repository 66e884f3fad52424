package matcher

import "errors"

var (
	// ErrEmptyInput means the caller supplied no usable text. Not retried.
	ErrEmptyInput = errors.New("empty input")
	// ErrNoJobsAvailable means the job corpus was empty at scoring time.
	ErrNoJobsAvailable = errors.New("no jobs available")
	// ErrScoringUnavailable means the embedding backend failed or returned
	// vectors that cannot be compared. No default score is substituted.
	ErrScoringUnavailable = errors.New("scoring backend unavailable")
	// ErrTaggerUnavailable means the entity tagger failed during extraction.
	ErrTaggerUnavailable = errors.New("entity tagger unavailable")
	// ErrJobSourceUnavailable means a corpus refresh could not fetch usable
	// listings. The current corpus is kept.
	ErrJobSourceUnavailable = errors.New("job source unavailable")
	// ErrUnreadableDocument means no text could be pulled out of an upload.
	ErrUnreadableDocument = errors.New("unreadable document")
)
