package query

import "github.com/kairowan/gatehouse/internal/domain"

// Report 是预先批准的导出语句；标识符是唯一入口，不接受任何自由查询文本
type Report struct {
	Name     string
	Columns  []string
	Template string
}

var reports = map[string]Report{
	"active-users": {
		Name:     "active-users",
		Columns:  []string{"id", "username", "email"},
		Template: "SELECT id, username, email FROM users WHERE deleted_at IS NULL ORDER BY id",
	},
	"record-count": {
		Name:     "record-count",
		Columns:  []string{"total"},
		Template: "SELECT COUNT(*) AS total FROM records WHERE deleted_at IS NULL",
	},
	"recent-records": {
		Name:     "recent-records",
		Columns:  []string{"id", "name"},
		Template: "SELECT id, name FROM records WHERE deleted_at IS NULL ORDER BY id DESC LIMIT 100",
	},
}

// BuildReport resolves a named report to its fixed statement.
func BuildReport(name string) (Report, error) {
	r, ok := reports[name]
	if !ok {
		return Report{}, domain.Validation("unknown report")
	}
	return r, nil
}

// ReportNames lists the available identifiers, for diagnostics and tests.
func ReportNames() []string {
	out := make([]string, 0, len(reports))
	for name := range reports {
		out = append(out, name)
	}
	return out
}
