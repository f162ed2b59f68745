package response

import "github.com/kairowan/gatehouse/internal/domain"

// 系统级错误码（基于 HTTP 语义）
const (
	CodeOK           = 0
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeServerError  = 500
	CodeUpstream     = 502
)

// CodeMsgMap 集中管理 code - msg
var CodeMsgMap = map[int]string{
	CodeOK:           "OK",
	CodeBadRequest:   "Bad Request",
	CodeUnauthorized: "Unauthorized",
	CodeForbidden:    "Forbidden",
	CodeNotFound:     "Not Found",
	CodeServerError:  "Internal Server Error",
	CodeUpstream:     "Bad Gateway",
}

// CodeForKind maps the domain taxonomy onto envelope codes. Untagged errors
// land on 500.
func CodeForKind(k domain.Kind) int {
	switch k {
	case domain.KindValidation:
		return CodeBadRequest
	case domain.KindAuthentication:
		return CodeUnauthorized
	case domain.KindAuthorization:
		return CodeForbidden
	case domain.KindNotFound:
		return CodeNotFound
	case domain.KindExternal:
		return CodeUpstream
	default:
		return CodeServerError
	}
}
