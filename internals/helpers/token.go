// file: internals/helpers/token.go
package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"kampusku_backend/internals/configs"
)

// CreateToken signs the access token carried by every authenticated request.
// Claims: user_id, role, email.
func CreateToken(userID uuid.UUID, role, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"email":   email,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

func ParseToken(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(configs.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

/* ===============================
   Locals accessors (set by auth middleware)
=================================*/

func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	v, _ := c.Locals("user_id").(string)
	if strings.TrimSpace(v) == "" {
		return uuid.Nil, errors.New("user_id missing in token")
	}
	return uuid.Parse(v)
}

func GetUserRole(c *fiber.Ctx) string {
	v, _ := c.Locals("role").(string)
	return v
}

func GetUserEmail(c *fiber.Ctx) string {
	v, _ := c.Locals("user_email").(string)
	return v
}
