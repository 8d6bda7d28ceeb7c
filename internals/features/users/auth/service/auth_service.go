package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"escuelasegura_backend/internals/configs"
	userModel "escuelasegura_backend/internals/features/users/auth/model"
	profileModel "escuelasegura_backend/internals/features/users/profile/model"
)

const AccessTokenTTL = 24 * time.Hour

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// RegisterUser membuat baris users + profiles dalam satu transaksi.
// Pemanggil sudah memvalidasi field-level (termasuk grade-iff-student).
func RegisterUser(db *gorm.DB, email, passwordHash, fullName, role string, schoolID uuid.UUID, grade *string) (*profileModel.ProfileModel, error) {
	user := userModel.UserModel{
		UserEmail:        strings.ToLower(strings.TrimSpace(email)),
		UserPasswordHash: passwordHash,
	}
	profile := profileModel.ProfileModel{
		ProfileRole:     role,
		ProfileFullName: strings.TrimSpace(fullName),
		ProfileSchoolID: schoolID,
		ProfileGrade:    grade,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			low := strings.ToLower(err.Error())
			if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
				return ErrEmailTaken
			}
			return err
		}
		profile.ProfileID = user.UserID
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Authenticate memverifikasi email+password dan mengembalikan profile-nya.
func Authenticate(db *gorm.DB, email, password string) (*profileModel.ProfileModel, error) {
	var user userModel.UserModel
	if err := db.Where("user_email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(user.UserPasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	var profile profileModel.ProfileModel
	if err := db.Where("profile_id = ?", user.UserID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// IssueAccessToken menerbitkan JWT HMAC dengan klaim yang dibutuhkan
// policy engine: sub, role, school_id, grade.
func IssueAccessToken(p *profileModel.ProfileModel, now time.Time) (string, error) {
	secret := configs.JWTSecret
	if secret == "" {
		return "", errors.New("JWT_SECRET belum diset")
	}

	claims := jwt.MapClaims{
		"sub":       p.ProfileID.String(),
		"role":      p.ProfileRole,
		"school_id": p.ProfileSchoolID.String(),
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTokenTTL).Unix(),
	}
	if p.ProfileGrade != nil {
		claims["grade"] = *p.ProfileGrade
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// SetAuthCookie menaruh access token di cookie httpOnly (fallback untuk
// client yang tidak memakai header Authorization).
func SetAuthCookie(c *fiber.Ctx, token string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  now.Add(AccessTokenTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/",
	})
}

func ClearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/",
	})
}
