package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID    = "run_id"
	KeyRepo     = "repository"
	KeyMonth    = "month"
	KeyProduct  = "product"
	KeyPath     = "path"
	KeyCommit   = "commit"
	KeyCommits  = "commits"
	KeyEntries  = "entries"
	KeyProducts = "products"
	KeyOutput   = "output"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr      { return slog.String(KeyRunID, id) }
func Repository(p string) slog.Attr  { return slog.String(KeyRepo, p) }
func Month(m string) slog.Attr       { return slog.String(KeyMonth, m) }
func Product(p string) slog.Attr     { return slog.String(KeyProduct, p) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func Commit(hash string) slog.Attr   { return slog.String(KeyCommit, hash) }
func Commits(n int) slog.Attr        { return slog.Int(KeyCommits, n) }
func Entries(n int) slog.Attr        { return slog.Int(KeyEntries, n) }
func Products(n int) slog.Attr       { return slog.Int(KeyProducts, n) }
func Output(target string) slog.Attr { return slog.String(KeyOutput, target) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
