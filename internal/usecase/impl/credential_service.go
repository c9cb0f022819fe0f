// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "warden/internal/delivery/context"
	"warden/internal/domain/entity"
	domainerrors "warden/internal/domain/errors"
	"warden/internal/domain/repository"
	"warden/internal/domain/service"
	"warden/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// credentialService implements the CredentialUsecase interface.
type credentialService struct {
	identityRepo repository.IdentityRepository
	hasher       service.PasswordHasher
	tokenIssuer  service.TokenIssuer
	profileCache service.ProfileCache
	publisher    service.EventPublisher
	metrics      service.CredentialMetrics
	logger       *slog.Logger
	now          func() time.Time
}

// CredentialServiceParams holds dependencies for CredentialService, injected by Fx.
type CredentialServiceParams struct {
	fx.In

	IdentityRepo repository.IdentityRepository
	Hasher       service.PasswordHasher
	TokenIssuer  service.TokenIssuer
	ProfileCache service.ProfileCache      `optional:"true"`
	Publisher    service.EventPublisher    `optional:"true"`
	Metrics      service.CredentialMetrics `optional:"true"`
	Logger       *slog.Logger
}

// NewCredentialService is the constructor for credentialService. Optional collaborators
// default to implementations that do nothing.
func NewCredentialService(params CredentialServiceParams) usecase.CredentialUsecase {
	srv := &credentialService{
		identityRepo: params.IdentityRepo,
		hasher:       params.Hasher,
		tokenIssuer:  params.TokenIssuer,
		profileCache: params.ProfileCache,
		publisher:    params.Publisher,
		metrics:      params.Metrics,
		logger:       params.Logger,
		now:          time.Now,
	}
	if srv.profileCache == nil {
		srv.profileCache = nopProfileCache{}
	}
	if srv.publisher == nil {
		srv.publisher = nopPublisher{}
	}
	if srv.metrics == nil {
		srv.metrics = nopMetrics{}
	}
	if srv.logger == nil {
		srv.logger = slog.Default()
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *credentialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// observe reports the outcome of an operation once it returns.
func (srv *credentialService) observe(operation string, err *error) {
	outcome := service.OutcomeSuccess
	if *err != nil {
		outcome = string(domainerrors.KindOf(*err))
	}
	srv.metrics.ObserveOutcome(operation, outcome)
}

// Register creates a new identity after checking the email is free.
func (srv *credentialService) Register(ctx context.Context, input usecase.RegisterInput) (identity *entity.Identity, err error) {
	defer srv.observe(service.OperationRegister, &err)

	email := entity.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("email and password are required")
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	_, err = srv.identityRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		srv.log(ctx).Warn("Registration rejected, email already registered", slog.String("email", email))

		return nil, errors.Wrap(domainerrors.ErrDuplicateIdentity, "register")
	case !errors.Is(err, repository.ErrIdentityNotFound):
		srv.log(ctx).Error("Failed to look up identity", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to look up identity")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Warn("Failed to hash password", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password")
	}

	identity = &entity.Identity{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
	}
	if err = srv.identityRepo.Create(ctx, identity); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateIdentity) {
			// Another registration for the same email committed first.
			srv.log(ctx).Warn("Registration rejected by store, email already registered", slog.String("email", email))

			return nil, errors.Wrap(err, "register")
		}
		srv.log(ctx).Error("Failed to create identity", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create identity")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("identityID", identity.ID))
	srv.publish(ctx, service.EventIdentityRegistered, identity)

	return identity, nil
}

// Login verifies a credential attempt and mints a session token.
// Unknown and incomplete records fail as IdentityNotFound, a wrong password as InvalidCredentials.
func (srv *credentialService) Login(ctx context.Context, input usecase.LoginInput) (output *usecase.LoginOutput, err error) {
	defer srv.observe(service.OperationLogin, &err)

	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	identity, err := srv.identityRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", string(domainerrors.KindIdentityNotFound)))

			return nil, errors.Wrap(domainerrors.ErrIdentityNotFound, "login failed")
		}
		srv.log(ctx).Error("Failed to look up identity", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to look up identity")
	}

	if !identity.CanAuthenticate() {
		srv.log(ctx).Warn("Login failed, stored identity is incomplete",
			slog.String("email", email),
			slog.String("reason", string(domainerrors.KindIdentityNotFound)),
		)

		return nil, errors.Wrap(domainerrors.ErrIdentityNotFound, "login failed")
	}

	if !srv.hasher.Check(input.Password, identity.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", string(domainerrors.KindInvalidCredentials)))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenIssuer.Issue(identity)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Any("identityID", identity.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("identityID", identity.ID))

	return &usecase.LoginOutput{Token: token}, nil
}

// Profile returns the projection for an email, reading through the profile cache.
func (srv *credentialService) Profile(ctx context.Context, email string) (profile *entity.Profile, err error) {
	defer srv.observe(service.OperationProfile, &err)

	email = entity.NormalizeEmail(email)

	cached, cacheErr := srv.profileCache.Get(ctx, email)
	if cacheErr == nil {
		return cached, nil
	}
	if !errors.Is(cacheErr, service.ErrCacheMiss) {
		srv.log(ctx).Warn("Profile cache read failed", slog.String("email", email), slog.Any("error", cacheErr))
	}

	identity, err := srv.identityRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProfileNotFound, "profile")
		}
		srv.log(ctx).Error("Failed to look up identity", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to look up identity")
	}

	profile = identity.Profile()
	if cacheErr := srv.profileCache.Set(ctx, profile); cacheErr != nil {
		srv.log(ctx).Warn("Profile cache write failed", slog.String("email", email), slog.Any("error", cacheErr))
	}

	return profile, nil
}

// AssignRole sets the role of an identity. Every store miss or failure is reported
// as the opaque RoleAssignmentFailed; the cause is only logged.
func (srv *credentialService) AssignRole(ctx context.Context, input usecase.AssignRoleInput) (identity *entity.Identity, err error) {
	defer srv.observe(service.OperationAssignRole, &err)

	email := entity.NormalizeEmail(input.Email)
	role := entity.NewRole(input.Role)
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("role name is required")
	}

	identity, err = srv.identityRepo.UpdateRole(ctx, email, role)
	if err != nil || identity == nil {
		srv.log(ctx).Error("Role was not assigned",
			slog.String("email", email),
			slog.String("role", role.String()),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(domainerrors.ErrRoleAssignmentFailed, "assign role")
	}

	if cacheErr := srv.profileCache.Delete(ctx, email); cacheErr != nil {
		srv.log(ctx).Warn("Profile cache invalidation failed", slog.String("email", email), slog.Any("error", cacheErr))
	}

	srv.log(ctx).Info("Role assigned", slog.String("email", email), slog.String("role", role.String()))
	srv.publish(ctx, service.EventIdentityRoleAssigned, identity)

	return identity, nil
}

// publish sends an identity event. Failures are logged and never change the operation's result.
func (srv *credentialService) publish(ctx context.Context, eventType string, identity *entity.Identity) {
	event := &service.IdentityEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		IdentityID: identity.ID.String(),
		Email:      identity.Email,
		Role:       identity.Role.String(),
		OccurredAt: srv.now().UTC(),
	}

	if err := srv.publisher.PublishIdentityEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish identity event",
			slog.String("type", eventType),
			slog.Any("identityID", identity.ID),
			slog.Any("error", err),
		)
	}
}

type nopProfileCache struct{}

func (nopProfileCache) Get(context.Context, string) (*entity.Profile, error) {
	return nil, service.ErrCacheMiss
}

func (nopProfileCache) Set(context.Context, *entity.Profile) error { return nil }

func (nopProfileCache) Delete(context.Context, string) error { return nil }

type nopPublisher struct{}

func (nopPublisher) PublishIdentityEvent(context.Context, *service.IdentityEvent) error { return nil }

func (nopPublisher) Close() error { return nil }

type nopMetrics struct{}

func (nopMetrics) ObserveOutcome(string, string) {}
