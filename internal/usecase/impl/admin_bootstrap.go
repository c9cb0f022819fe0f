package impl

import (
	"context"
	"log/slog"

	"warden/internal/domain/entity"
	"warden/internal/usecase"
)

// BootstrapAdmins grants the admin role to each configured email and returns how many succeeded.
// A failure for one email is logged and does not stop the others.
func BootstrapAdmins(ctx context.Context, credentialUC usecase.CredentialUsecase, emails []string, logger *slog.Logger) int {
	assigned := 0
	for _, email := range emails {
		if entity.NormalizeEmail(email) == "" {
			continue
		}

		if _, err := credentialUC.AssignRole(ctx, usecase.AssignRoleInput{Role: entity.RoleAdmin.String(), Email: email}); err != nil {
			logger.Warn("Admin bootstrap skipped", slog.String("email", email), slog.Any("error", err))

			continue
		}
		assigned++
	}

	return assigned
}
