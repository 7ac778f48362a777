package apperror

import (
	"context"
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// Error taxonomy shared by the retrieval pipeline and the HTTP layer.
// Callers wrap these with goerr.Wrap and classify with errors.Is.
var (
	ErrConfiguration = errors.New("invalid configuration")
	ErrDocumentParse = errors.New("unable to parse document")
	ErrNotReady      = errors.New("upload a document first")
	ErrUpstream      = errors.New("upstream service failure")
	ErrValidation    = errors.New("validation failed")

	// ErrArtifactNotGenerated is a NotReady condition surfaced as 404 on export.
	ErrArtifactNotGenerated = fmt.Errorf("%w: artifact not generated yet", ErrNotReady)

	// ErrTimeout is an upstream failure caused by a deadline.
	ErrTimeout = fmt.Errorf("%w: request timed out", ErrUpstream)
)

// Upstream classifies a failed call to an embedding or generation service.
// Deadline errors become ErrTimeout, everything else ErrUpstream.
func Upstream(err error, msg string, opts ...goerr.Option) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return goerr.Wrap(fmt.Errorf("%w: %w", ErrTimeout, err), msg, opts...)
	}
	return goerr.Wrap(fmt.Errorf("%w: %w", ErrUpstream, err), msg, opts...)
}
