package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"warden/config"
	"warden/internal/domain/entity"
	"warden/internal/domain/service"
	"warden/internal/errors"
)

const tokenIssuer = "warden"

// JWTIssuer mints and validates HS256 session tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer builds the issuer from secretKey.access and auth.tokenTtl.
func NewJWTIssuer(cfg *config.Config) (*JWTIssuer, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := 15 * time.Minute
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return &JWTIssuer{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// NewTokenIssuer exposes the issuer through the core's interface.
func NewTokenIssuer(issuer *JWTIssuer) service.TokenIssuer {
	return issuer
}

// NewTokenValidator exposes the issuer to the HTTP edge.
func NewTokenValidator(issuer *JWTIssuer) service.TokenValidator {
	return issuer
}

// Issue creates a signed token for the identity. The subject is the identity ID;
// the email and role travel as claims so the edge can authorise without a lookup.
func (s *JWTIssuer) Issue(identity *entity.Identity) (string, error) {
	if identity == nil {
		return "", errors.New("cannot issue token for nil identity")
	}

	now := s.now()
	claims := &service.Claims{
		Email: identity.Email,
		Roles: identity.Role.ToStrings(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate parses a token and returns its claims when the signature and expiry hold.
func (s *JWTIssuer) Validate(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	return claims, nil
}

// TTL returns the lifetime of issued tokens.
func (s *JWTIssuer) TTL() time.Duration {
	return s.ttl
}
