package apperror

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stretchr/testify/assert"
)

func TestDerivedErrorsKeepTheirParent(t *testing.T) {
	assert.True(t, errors.Is(ErrArtifactNotGenerated, ErrNotReady))
	assert.True(t, errors.Is(ErrTimeout, ErrUpstream))
	assert.False(t, errors.Is(ErrNotReady, ErrArtifactNotGenerated))
	assert.False(t, errors.Is(ErrUpstream, ErrTimeout))
}

func TestSentinelsAreDistinct(t *testing.T) {
	all := []error{ErrConfiguration, ErrDocumentParse, ErrNotReady, ErrUpstream, ErrValidation}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestWrappedSentinelIsClassified(t *testing.T) {
	err := goerr.Wrap(ErrConfiguration, "bad chunk config", goerr.V("overlap", 10))
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Contains(t, err.Error(), "bad chunk config")
}

func TestUpstreamClassifiesDeadline(t *testing.T) {
	err := Upstream(context.DeadlineExceeded, "embedding call failed")
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.True(t, errors.Is(err, ErrUpstream))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	err = Upstream(errors.New("connection refused"), "generation call failed", goerr.V("provider", "ollama"))
	assert.True(t, errors.Is(err, ErrUpstream))
	assert.False(t, errors.Is(err, ErrTimeout))
}
