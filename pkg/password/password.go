package password

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinLength = 6
	// bcrypt 只使用前 72 个字节
	MaxBytes = 72
)

var (
	ErrTooShort = errors.New("密码至少需要6个字符")
	ErrTooLong  = errors.New("密码不能超过72个字节")
)

// Validate 校验明文密码长度
func Validate(plain string) error {
	if utf8.RuneCountInString(plain) < MinLength {
		return ErrTooShort
	}
	if len(plain) > MaxBytes {
		return ErrTooLong
	}
	return nil
}

// Hash 生成密码哈希
func Hash(plain string) (string, error) {
	if len(plain) > MaxBytes {
		return "", ErrTooLong
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify 校验密码，hash 为空时始终失败
func Verify(plain, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
