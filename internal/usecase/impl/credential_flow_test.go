package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"warden/config"
	"warden/internal/domain/entity"
	domainerrors "warden/internal/domain/errors"
	"warden/internal/domain/service"
	"warden/internal/infra/auth"
	"warden/internal/infra/metrics"
	"warden/internal/infra/persistence/memory"
	"warden/internal/usecase"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// flowFixtures wires the service to real collaborators backed by the in-memory store.
type flowFixtures struct {
	service   usecase.CredentialUsecase
	store     *memory.IdentityRepository
	validator service.TokenValidator
	recorder  *metrics.Recorder
}

func newFlowFixtures(t *testing.T) flowFixtures {
	t.Helper()

	hasher, err := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: time.Minute}}
	cfg.SecretKey.Access = "flow_test_access_secret_key_long_enough"
	issuer, err := auth.NewJWTIssuer(cfg)
	require.NoError(t, err)

	store := memory.NewIdentityRepository()
	recorder := metrics.NewRecorder()

	svc := NewCredentialService(CredentialServiceParams{
		IdentityRepo: store,
		Hasher:       hasher,
		TokenIssuer:  auth.NewTokenIssuer(issuer),
		Metrics:      metrics.NewCredentialMetrics(recorder),
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return flowFixtures{
		service:   svc,
		store:     store,
		validator: auth.NewTokenValidator(issuer),
		recorder:  recorder,
	}
}

func TestCredentialFlow_RegisterLoginProfileAssignRole(t *testing.T) {
	fx := newFlowFixtures(t)
	ctx := context.Background()

	identity, err := fx.service.Register(ctx, usecase.RegisterInput{Email: "Alice@Example.com", Password: "s3cret-pass", Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", identity.Email)
	assert.NotEqual(t, "s3cret-pass", identity.PasswordHash)
	assert.False(t, identity.HasRole())

	output, err := fx.service.Login(ctx, usecase.LoginInput{Email: "alice@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	claims, err := fx.validator.Validate(output.Token)
	require.NoError(t, err)
	assert.Equal(t, identity.ID.String(), claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Empty(t, claims.Roles)

	profile, err := fx.service.Profile(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, identity.ID, profile.ID)
	assert.Equal(t, entity.RoleNone, profile.Role)

	updated, err := fx.service.AssignRole(ctx, usecase.AssignRoleInput{Role: "admin", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)
	assert.Equal(t, identity.ID, updated.ID)

	output, err = fx.service.Login(ctx, usecase.LoginInput{Email: "alice@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	claims, err = fx.validator.Validate(output.Token)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, claims.Roles)

	assert.InDelta(t, 2, testutil.ToFloat64(fx.recorder.Counter().WithLabelValues(service.OperationLogin, service.OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(fx.recorder.Counter().WithLabelValues(service.OperationAssignRole, service.OutcomeSuccess)), 0)
}

func TestCredentialFlow_LoginFailures(t *testing.T) {
	fx := newFlowFixtures(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, usecase.RegisterInput{Email: "bob@example.com", Password: "right-password"})
	require.NoError(t, err)

	_, err = fx.service.Login(ctx, usecase.LoginInput{Email: "bob@example.com", Password: "wrong-password"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	_, err = fx.service.Login(ctx, usecase.LoginInput{Email: "nobody@example.com", Password: "right-password"})
	assert.True(t, errors.Is(err, domainerrors.ErrIdentityNotFound))

	assert.InDelta(t, 1, testutil.ToFloat64(fx.recorder.Counter().WithLabelValues(service.OperationLogin, string(domainerrors.KindInvalidCredentials))), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(fx.recorder.Counter().WithLabelValues(service.OperationLogin, string(domainerrors.KindIdentityNotFound))), 0)
}

func TestCredentialFlow_RegisterTwice(t *testing.T) {
	fx := newFlowFixtures(t)
	ctx := context.Background()

	first, err := fx.service.Register(ctx, usecase.RegisterInput{Email: "carol@example.com", Password: "first-password"})
	require.NoError(t, err)

	_, err = fx.service.Register(ctx, usecase.RegisterInput{Email: "CAROL@example.com", Password: "second-password"})
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateIdentity))

	// The original record and its password survive.
	stored, err := fx.store.FindByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.PasswordHash, stored.PasswordHash)

	_, err = fx.service.Login(ctx, usecase.LoginInput{Email: "carol@example.com", Password: "first-password"})
	require.NoError(t, err)
}

func TestCredentialFlow_ConcurrentRegisterSameEmail(t *testing.T) {
	fx := newFlowFixtures(t)
	ctx := context.Background()

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := fx.service.Register(ctx, usecase.RegisterInput{
				Email:    "race@example.com",
				Password: fmt.Sprintf("password-%d", i),
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domainerrors.ErrDuplicateIdentity):
				rejected++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, rejected)
	assert.Equal(t, 1, fx.store.Len())
}

func TestCredentialFlow_AssignRoleUnknownEmail(t *testing.T) {
	fx := newFlowFixtures(t)

	_, err := fx.service.AssignRole(context.Background(), usecase.AssignRoleInput{Role: "admin", Email: "ghost@example.com"})

	assert.True(t, errors.Is(err, domainerrors.ErrRoleAssignmentFailed))
	assert.Equal(t, 0, fx.store.Len())
}

func TestCredentialFlow_ProfileNotFound(t *testing.T) {
	fx := newFlowFixtures(t)

	_, err := fx.service.Profile(context.Background(), "ghost@example.com")

	assert.True(t, errors.Is(err, domainerrors.ErrProfileNotFound))
}

func TestCredentialFlow_Scenario(t *testing.T) {
	fx := newFlowFixtures(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, usecase.RegisterInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = fx.service.Login(ctx, usecase.LoginInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = fx.service.Login(ctx, usecase.LoginInput{Email: "a@x.com", Password: "secret2"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	identity, err := fx.service.AssignRole(ctx, usecase.AssignRoleInput{Role: "admin", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, identity.Role)

	_, err = fx.service.AssignRole(ctx, usecase.AssignRoleInput{Role: "admin", Email: "nobody@x.com"})
	assert.True(t, errors.Is(err, domainerrors.ErrRoleAssignmentFailed))
}
