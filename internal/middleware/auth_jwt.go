package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"shop/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	CtxUsernameKey = "username"  // string
	CtxUserRoleKey = "user_role" // string
	CtxTokenJTIKey = "token_jti" // string
	CtxTokenExpKey = "token_exp" // time.Time
)

// ログアウト済みトークンの照会先
type TokenBlacklist interface {
	Contains(ctx context.Context, jti string) (bool, error)
}

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(cfg config.Config, bl TokenBlacklist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//JWTをパースして検証する
			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWTSecret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || token == nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//claimsを取り出す
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//username（sub）を取り出す
			username, err := parseString(claims["sub"])
			if err != nil || username == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//roleを取り出す（USER/ADMIN）
			role, err := parseString(claims["role"])
			if err != nil || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//jtiを取り出してブラックリスト照会
			jti, err := parseString(claims["jti"])
			if err != nil || jti == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if bl != nil {
				listed, err := bl.Contains(c.Request().Context(), jti)
				if err != nil {
					return c.JSON(http.StatusInternalServerError, errorJSON("auth store error"))
				}
				if listed {
					return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
				}
			}

			//expを取り出す（ログアウト時のTTLに使う）
			exp, err := claims.GetExpirationTime()
			if err != nil || exp == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//contextへ保存
			c.Set(CtxUsernameKey, username)
			c.Set(CtxUserRoleKey, role)
			c.Set(CtxTokenJTIKey, jti)
			c.Set(CtxTokenExpKey, exp.Time)

			return next(c)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

func parseString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("invalid string")
	}
	return s, nil
}

// GetUsername はAuthJWTが入れたusernameを取り出す
func GetUsername(c echo.Context) (string, bool) {
	s, ok := c.Get(CtxUsernameKey).(string)
	return s, ok && s != ""
}

// GetTokenInfo はログアウト用にjtiとexpを取り出す
func GetTokenInfo(c echo.Context) (jti string, exp time.Time, ok bool) {
	jti, jok := c.Get(CtxTokenJTIKey).(string)
	exp, eok := c.Get(CtxTokenExpKey).(time.Time)
	return jti, exp, jok && eok && jti != ""
}
