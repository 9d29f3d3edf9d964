package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))

	ctx := WithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestID(ctx))
}
