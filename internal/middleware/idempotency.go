// Package middleware provides HTTP middleware components for the escrow API.
package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/benx421/payment-gateway/escrow/internal/api"
	"github.com/benx421/payment-gateway/escrow/internal/models"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "X-Idempotent-Replayed"
)

// idempotentPaths lists the money-moving and state-changing escrow operations.
// A retried request with the same key gets the first successful response back
// without reaching the engine.
var idempotentPaths = []string{
	"/api/v1/escrows",
	"/api/v1/escrows/confirmations",
	"/api/v1/escrows/releases",
	"/api/v1/escrows/refunds",
	"/api/v1/escrows/disputes",
	"/api/v1/escrows/resolutions",
}

// IdempotencyRepository defines the interface for idempotency storage
type IdempotencyRepository interface {
	Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
}

// Idempotency replays the stored response for a retried escrow operation. A
// key is bound to the body it was first used with: reusing it for another
// escrow or another amount is rejected instead of replaying a response that
// belongs to a different transaction.
func Idempotency(repo IdempotencyRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(idempotencyKeyHeader)
			if key == "" || !requiresIdempotency(r) {
				// A missing key is reported by the generated handler
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			requestPath := normalizeRequestPath(r.URL.Path)
			log := logger.With("request_id", chimw.GetReqID(ctx), "key", key, "path", requestPath)

			body, err := bufferBody(r)
			if err != nil {
				log.Warn("failed to read request body", "error", err)
				WriteError(w, http.StatusBadRequest, api.ErrorKindValidationFailed, "request body could not be read")
				return
			}
			fingerprint := requestFingerprint(body)

			stored, err := repo.Get(ctx, key, requestPath)
			if err != nil {
				log.Error("failed to check idempotency cache", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if stored != nil {
				if stored.RequestHash != fingerprint {
					log.Warn("idempotency key reused with a different request")
					WriteError(w, http.StatusConflict, api.ErrorKindDuplicateTransaction,
						"Idempotency-Key was already used for a different request")
					return
				}
				log.Info("replaying idempotent response", "status", stored.ResponseStatus)
				replay(w, stored)
				return
			}

			rec := newResponseRecorder(w)
			next.ServeHTTP(rec, r)

			// Only successes are kept. Failures such as provider_timeout or
			// concurrent_operation must reach the engine again on retry.
			if rec.statusCode < 200 || rec.statusCode >= 300 {
				return
			}

			entry := &models.IdempotencyKey{
				Key:            key,
				RequestPath:    requestPath,
				RequestHash:    fingerprint,
				ResponseStatus: rec.statusCode,
				ResponseBody:   rec.body.String(),
				CreatedAt:      time.Now(),
			}
			// The engine already committed; a lost key only costs a re-run,
			// which the engine treats as a no-op retry.
			if err := repo.Store(context.WithoutCancel(ctx), entry); err != nil {
				log.Error("failed to store idempotency key", "error", err)
			}
		})
	}
}

func replay(w http.ResponseWriter, stored *models.IdempotencyKey) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(replayedHeader, "true")
	w.WriteHeader(stored.ResponseStatus)
	//nolint:errcheck // Best effort response writing
	w.Write([]byte(stored.ResponseBody))
}

func requiresIdempotency(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}

	for _, path := range idempotentPaths {
		if r.URL.Path == path {
			return true
		}
	}
	return false
}

func normalizeRequestPath(urlPath string) string {
	return strings.TrimSuffix(urlPath, "/")
}

// bufferBody reads the request body and puts a fresh reader back for the
// handler.
func bufferBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	if err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

func requestFingerprint(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

type responseRecorder struct {
	http.ResponseWriter
	body       bytes.Buffer
	statusCode int
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.statusCode = code
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	rr.body.Write(b)
	return rr.ResponseWriter.Write(b)
}
