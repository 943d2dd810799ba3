package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/benx421/payment-gateway/escrow/internal/api"
	"github.com/benx421/payment-gateway/escrow/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		checker := mocks.NewMockHealthChecker(t)
		checker.On("PingContext", mock.Anything).Return(nil)

		resp, err := NewHandler(nil, checker, testLogger()).GetHealth(context.Background(), api.GetHealthRequestObject{})

		require.NoError(t, err)
		healthy, ok := resp.(api.GetHealth200JSONResponse)
		require.True(t, ok)
		assert.Equal(t, api.HealthStatusHealthy, healthy.Status)
	})

	t.Run("database down", func(t *testing.T) {
		checker := mocks.NewMockHealthChecker(t)
		checker.On("PingContext", mock.Anything).Return(errors.New("connection refused"))

		resp, err := NewHandler(nil, checker, testLogger()).GetHealth(context.Background(), api.GetHealthRequestObject{})

		require.NoError(t, err)
		unhealthy, ok := resp.(api.GetHealth503JSONResponse)
		require.True(t, ok)
		assert.Equal(t, api.HealthStatusUnhealthy, unhealthy.Status)
	})
}
