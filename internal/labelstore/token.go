package labelstore

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Области действия токенов. Токен выписывается на конкретный субъект
// (имя файла или ID заказа) и не подходит ни к какому другому.
const (
	ScopeDownload = "download"
	ScopeLegacy   = "legacy"
)

// TokenIssuer выписывает и проверяет подписанные токены доступа с ограниченным
// сроком жизни. Токен - это capability: хранить его нельзя, выписывается
// заново при каждом показе ссылки.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Mint выписывает токен вида "<expiry>.<signature>".
func (t *TokenIssuer) Mint(scope, subject string) string {
	expiry := t.now().Add(t.ttl).Unix()
	return strconv.FormatInt(expiry, 10) + "." + t.sign(scope, subject, expiry)
}

// Authorize проверяет подпись и срок жизни токена для пары (scope, subject).
func (t *TokenIssuer) Authorize(token, scope, subject string) bool {
	rawExpiry, signature, found := strings.Cut(token, ".")
	if !found {
		return false
	}

	expiry, err := strconv.ParseInt(rawExpiry, 10, 64)
	if err != nil {
		return false
	}
	if t.now().Unix() > expiry {
		return false
	}

	expected := t.sign(scope, subject, expiry)
	return hmac.Equal([]byte(signature), []byte(expected))
}

func (t *TokenIssuer) sign(scope, subject string, expiry int64) string {
	mac := hmac.New(sha256.New, t.secret)
	mac.Write([]byte(scope))
	mac.Write([]byte{0})
	mac.Write([]byte(subject))
	mac.Write([]byte{0})
	mac.Write([]byte(strconv.FormatInt(expiry, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
