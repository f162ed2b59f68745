// Package query turns caller-supplied input into fixed, parameterized SQL.
// Every template here is a constant; caller data only ever travels in Args.
package query

import (
	"strconv"
	"strings"

	"github.com/kairowan/gatehouse/internal/domain"
)

// Query 固定模板 + 绑定参数
type Query struct {
	Template string
	Args     []any
}

const (
	searchTemplate = "SELECT id, name, body FROM records WHERE name LIKE ? ESCAPE '\\' AND deleted_at IS NULL ORDER BY name LIMIT 100"
	profileTemplate = "SELECT id, username, email, password_hash, national_id, payment_card FROM users WHERE id = ? AND deleted_at IS NULL"
	tokenTemplate  = "SELECT value, role, expires_at FROM tokens WHERE value = ?"
)

const (
	// MaxTokenLen bounds the bearer value before it is bound; store tokens are
	// far shorter, anything longer cannot match a row.
	MaxTokenLen = 512

	maxProfileID = 1 << 53 // 上限之外一律当非法 id
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike neutralizes LIKE wildcards so the term matches literally.
func EscapeLike(s string) string { return likeEscaper.Replace(s) }

// BuildSearch binds the term as a single LIKE argument. Quotes, semicolons and
// control characters stay data; the executed statement shape never varies.
func BuildSearch(term string, maxLen int) (Query, error) {
	if maxLen <= 0 {
		maxLen = 128
	}
	if len(term) > maxLen {
		return Query{}, domain.Validation("search term too long")
	}
	return Query{
		Template: searchTemplate,
		Args:     []any{"%" + EscapeLike(term) + "%"},
	}, nil
}

// ParseProfileID validates a caller-supplied id as a bounded integer.
func ParseProfileID(idText string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(idText), 10, 64)
	if err != nil || id <= 0 || id > maxProfileID {
		return 0, domain.Validation("invalid profile id")
	}
	return id, nil
}

// BuildProfileLookup binds an already-validated id.
func BuildProfileLookup(id int64) Query {
	return Query{Template: profileTemplate, Args: []any{id}}
}

// BuildTokenLookup binds the opaque token value. Empty or oversized values are
// rejected before touching storage.
func BuildTokenLookup(value string) (Query, error) {
	if value == "" || len(value) > MaxTokenLen {
		return Query{}, domain.Validation("invalid token")
	}
	return Query{Template: tokenTemplate, Args: []any{value}}, nil
}
