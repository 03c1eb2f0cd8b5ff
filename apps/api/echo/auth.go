package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/rpeck07/StudentoS/core"
	"github.com/rpeck07/StudentoS/core/user"
)

const contextUserKey = "user"

var (
	errUnauthorized       = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAccountDeactivated = echo.NewHTTPError(http.StatusForbidden, "account deactivated")
	errRefreshExpired     = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	Username     string `json:"username,omitempty"`
}

// authenticator issues and checks the tokens of one server.
type authenticator struct {
	conf      *core.Config
	jwtConfig middleware.JWTConfig
	nowFunc   func() time.Time
}

func newAuthenticator(conf *core.Config) *authenticator {
	return &authenticator{
		conf: conf,
		jwtConfig: middleware.JWTConfig{
			SigningKey:    []byte(conf.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    "userToken",
			Claims:        new(Claims),
		},
		nowFunc: time.Now,
	}
}

func (a *authenticator) userClaims(usr user.User, origIat ...int64) *Claims {
	now := a.nowFunc()
	nownix := now.Unix()

	oriat := nownix
	if len(origIat) > 0 {
		oriat = origIat[0]
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    a.conf.AppName,
			Subject:   usr.ID,
			ExpiresAt: now.Add(a.conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Username:     usr.Username,
	}
}

// generateToken generates a signed JWT token string representing the user Claims.
func (a *authenticator) generateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(a.jwtConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(a.jwtConfig.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func (a *authenticator) tokenFor(usr user.User) (string, error) {
	return a.generateToken(a.userClaims(usr))
}

func (a *authenticator) contextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(a.jwtConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// contextUser returns the active user the request token belongs to.
func (a *authenticator) contextUser(ctx echo.Context, svc *user.Service) (user.User, error) {
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		return usr, nil
	}

	claims, err := a.contextClaims(ctx)
	if err != nil {
		return user.User{}, err
	}
	usr, err := svc.GetByID(ctx.Request().Context(), claims.Subject)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return user.User{}, errUnauthorized
		}
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	if !usr.IsActive {
		return user.User{}, errAccountDeactivated
	}
	ctx.Set(contextUserKey, usr)
	return usr, nil
}

// contextUserMiddleware loads the token's user before the handler runs.
func (a *authenticator) contextUserMiddleware(svc *user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if _, err := a.contextUser(ctx, svc); err != nil {
				return err
			}
			return next(ctx)
		}
	}
}

func (a *authenticator) refreshToken(ctx echo.Context, svc *user.Service) (string, error) {
	claims, err := a.contextClaims(ctx)
	if err != nil {
		return "", err
	}
	usr, err := a.contextUser(ctx, svc)
	if err != nil {
		return "", err
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(a.conf.Server.JWTRefreshExpirationDelta)
	if a.nowFunc().After(expTime) {
		return "", errRefreshExpired
	}

	token, err := a.generateToken(a.userClaims(usr, claims.OrigIssuedAt))
	return token, errors.Wrap(err, "generating token")
}

// ctxUser returns the user set by contextUserMiddleware.
func ctxUser(ctx echo.Context) user.User {
	usr, _ := ctx.Get(contextUserKey).(user.User)
	return usr
}
