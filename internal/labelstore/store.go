package labelstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"labelservice/internal/entities"
)

// Имена файлов этикеток. Метка времени делает имя устойчивым к коллизиям,
// по этому же шаблону чистятся осиротевшие файлы в старых каталогах.
const (
	filenamePrefix  = "shipping_label_"
	FilenamePattern = "shipping_label_*.pdf"

	timestampLayout = "20060102150405"
)

// Store каталог этикеток вне публично раздаваемого дерева.
// Каждое чтение проходит через авторизацию токеном, имена файлов
// канонизируются и не могут выйти за пределы корня.
type Store struct {
	root   string
	tokens *TokenIssuer
}

func New(root string, tokens *TokenIssuer) *Store {
	return &Store{
		root:   root,
		tokens: tokens,
	}
}

// EnsureReady создаёт каталог хранилища и защитные маркеры: deny-all
// .htaccess на случай, если каталог всё же окажется под веб-корнем,
// и пустой индекс от листинга каталога.
func (s *Store) EnsureReady() error {
	if err := os.MkdirAll(s.root, 0o700); err != nil {
		return fmt.Errorf("create labels directory: %w", err)
	}

	htaccess := filepath.Join(s.root, ".htaccess")
	if _, err := os.Stat(htaccess); os.IsNotExist(err) {
		if err := os.WriteFile(htaccess, []byte("Order deny,allow\nDeny from all"), 0o600); err != nil {
			return fmt.Errorf("write deny rule: %w", err)
		}
	}

	index := filepath.Join(s.root, "index.html")
	if _, err := os.Stat(index); os.IsNotExist(err) {
		if err := os.WriteFile(index, []byte{}, 0o600); err != nil {
			return fmt.Errorf("write index marker: %w", err)
		}
	}

	return nil
}

// Write сохраняет байты этикетки под предложенным именем.
func (s *Store) Write(data []byte, filename string) (*entities.LabelRecord, error) {
	path, err := s.resolve(filename)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("write label %s: %w", filename, err)
	}

	return &entities.LabelRecord{
		Filename:  filename,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Read возвращает содержимое этикетки по имени файла.
func (s *Store) Read(filename string) ([]byte, error) {
	path, err := s.resolve(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read label %s: %w", filename, err)
	}
	return data, nil
}

func (s *Store) Exists(filename string) bool {
	path, err := s.resolve(filename)
	if err != nil {
		return false
	}

	_, err = os.Stat(path)
	return err == nil
}

// MintAccessToken выписывает свежий токен на скачивание конкретного файла.
func (s *Store) MintAccessToken(filename string) string {
	return s.tokens.Mint(ScopeDownload, filename)
}

// Authorize проверяет токен скачивания для файла.
func (s *Store) Authorize(token, filename string) bool {
	return s.tokens.Authorize(token, ScopeDownload, filename)
}

// MintLegacyToken выписывает токен на старую, ещё не перенесённую этикетку.
// Субъектом выступает ID заказа: имя файла у таких этикеток недоверенное.
func (s *Store) MintLegacyToken(orderID int64) string {
	return s.tokens.Mint(ScopeLegacy, strconv.FormatInt(orderID, 10))
}

// AuthorizeLegacy проверяет токен доступа к старой этикетке заказа.
func (s *Store) AuthorizeLegacy(token string, orderID int64) bool {
	return s.tokens.Authorize(token, ScopeLegacy, strconv.FormatInt(orderID, 10))
}

// resolve канонизирует имя файла и отклоняет любой результат за пределами
// корня хранилища (защита от обхода каталога через подстроенные имена).
func (s *Store) resolve(filename string) (string, error) {
	if filename == "" || strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		return "", ErrInvalidFilename
	}

	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return "", fmt.Errorf("resolve labels root: %w", err)
	}

	pathAbs, err := filepath.Abs(filepath.Join(s.root, filename))
	if err != nil {
		return "", ErrInvalidFilename
	}

	if !strings.HasPrefix(pathAbs, rootAbs+string(filepath.Separator)) {
		return "", ErrInvalidFilename
	}
	return pathAbs, nil
}

// SingleFilename имя файла этикетки одного заказа.
func SingleFilename(orderID int64, now time.Time) string {
	return filenamePrefix + strconv.FormatInt(orderID, 10) + "_" + now.Format(timestampLayout) + ".pdf"
}

// BulkFilename имя общего файла пакетной печати.
func BulkFilename(now time.Time) string {
	return filenamePrefix + "bulk_" + now.Format(timestampLayout) + ".pdf"
}

// MatchesNamingScheme true если имя файла следует схеме именования этикеток.
func MatchesNamingScheme(filename string) bool {
	return strings.HasPrefix(filename, filenamePrefix) && strings.HasSuffix(filename, ".pdf")
}
