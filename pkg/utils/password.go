package utils

import "golang.org/x/crypto/bcrypt"

// dummyHash 用于账号不存在时仍做一次等价的 bcrypt 比较
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("padel-dummy-password"), bcrypt.DefaultCost)

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}

// BurnPasswordCheck 与 CheckPassword 耗时相同，结果恒为 false
func BurnPasswordCheck(pw string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(pw))
}
