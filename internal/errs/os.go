package errs

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"syscall"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"skein/internal/object"
)

const (
	DomainPOSIX    = "posix"
	DomainSQLite   = "sqlite"
	DomainMySQL    = "mysql"
	DomainPostgres = "postgres"
	DomainGo       = "go"
)

// OsError wraps a failure reported by the host. Two OsErrors are equal when
// they describe the same host failure: same domain, code and reason.
type OsError struct {
	Domain string
	Code   string
	Reason string
	Err    error
}

func NewOsError(domain, code, reason string) *OsError {
	return &OsError{Domain: domain, Code: code, Reason: reason}
}

// FromHost classifies a host failure. Taxonomy values pass through
// unchanged.
func FromHost(err error) LispError {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	osErr := &OsError{Domain: DomainGo, Code: "0", Reason: err.Error(), Err: err}

	var (
		sqliteErr sqlite3.Error
		mysqlErr  *mysql.MySQLError
		pqErr     *pq.Error
		pathErr   *fs.PathError
		errno     syscall.Errno
	)
	switch {
	case errors.As(err, &sqliteErr):
		osErr.Domain = DomainSQLite
		osErr.Code = strconv.Itoa(int(sqliteErr.ExtendedCode))
		osErr.Reason = sqliteErr.Error()
	case errors.As(err, &mysqlErr):
		osErr.Domain = DomainMySQL
		osErr.Code = strconv.Itoa(int(mysqlErr.Number))
		osErr.Reason = mysqlErr.Message
	case errors.As(err, &pqErr):
		osErr.Domain = DomainPostgres
		osErr.Code = string(pqErr.Code)
		osErr.Reason = pqErr.Message
	case errors.As(err, &pathErr):
		osErr.Domain = DomainPOSIX
		osErr.Reason = pathErr.Error()
		if errors.As(pathErr.Err, &errno) {
			osErr.Code = strconv.Itoa(int(errno))
		}
	case errors.As(err, &errno):
		osErr.Domain = DomainPOSIX
		osErr.Code = strconv.Itoa(int(errno))
		osErr.Reason = errno.Error()
	}
	return osErr
}

func (e *OsError) Type() ErrorType            { return OS }
func (e *OsError) Kind() string               { return OS.String() }
func (e *OsError) Irritants() []object.Object { return nil }
func (e *OsError) Error() string              { return Describe(e) }
func (e *OsError) Unwrap() error              { return e.Err }
func (e *OsError) Is(target error) bool       { return isEqual(e, target) }

func (e *OsError) Message() string {
	return fmt.Sprintf("%s (%s, %s)", e.Reason, e.Domain, e.Code)
}

func (e *OsError) Equals(other LispError) bool {
	o, ok := unbox(other).(*OsError)
	if !ok || o == nil {
		return false
	}
	return e.Domain == o.Domain && e.Code == o.Code && e.Reason == o.Reason
}

func (e *OsError) Hash() uint64 {
	h := newHash(OS, e.Domain)
	h.Write([]byte(e.Code))
	h.Write([]byte{0})
	h.Write([]byte(e.Reason))
	return h.Sum64()
}
