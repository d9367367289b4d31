package database

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
)

// JDBC / Navicat 专用参数，go-sql-driver 不认识（会被当成系统变量 SET）
var jdbcOnlyParams = []string{
	"user", "password", "charset", "characterEncoding", "useUnicode",
	"zeroDateTimeBehavior", "useSSL", "serverTimezone", "parseTime",
}

// mysqlDSN 把 mysql:// 或 jdbc:mysql:// 连接串转成 go-sql-driver DSN；
// 已经是 user:pass@tcp(...) 形式的原样返回。user/pass 非空时覆盖串里的凭据
func mysqlDSN(input, user, pass string) (string, error) {
	in := strings.TrimSpace(input)
	in = strings.TrimPrefix(in, "jdbc:")
	if !strings.HasPrefix(in, "mysql://") {
		return strings.TrimSpace(input), nil
	}
	u, err := url.Parse(in)
	if err != nil {
		return "", fmt.Errorf("parse mysql url: %w", err)
	}
	q := u.Query()

	c := mysqldrv.NewConfig()
	c.Net = "tcp"
	c.Addr = u.Host
	c.DBName = strings.TrimPrefix(u.Path, "/")
	c.ParseTime = q.Get("parseTime") != "false"
	if u.User != nil {
		c.User = u.User.Username()
		c.Passwd, _ = u.User.Password()
	}
	c.User = firstNonEmpty(user, q.Get("user"), c.User)
	c.Passwd = firstNonEmpty(pass, q.Get("password"), c.Passwd)
	c.TLSConfig = tlsMode(q.Get("useSSL"))

	if tz := q.Get("serverTimezone"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return "", fmt.Errorf("serverTimezone %q: %w", tz, err)
		}
		c.Loc = loc
	}

	c.Params = map[string]string{
		"charset": firstNonEmpty(q.Get("charset"), q.Get("characterEncoding"), "utf8mb4"),
	}
	for _, k := range jdbcOnlyParams {
		q.Del(k)
	}
	for k := range q {
		c.Params[k] = q.Get(k)
	}
	return c.FormatDSN(), nil
}

// useSSL → tls；留空表示不设置
func tlsMode(useSSL string) string {
	switch strings.ToLower(useSSL) {
	case "":
		return ""
	case "true", "1":
		return "true"
	case "skip-verify", "preferred":
		return strings.ToLower(useSSL)
	default:
		return "false"
	}
}

// maskDSN 日志里隐藏密码
func maskDSN(dsn string) string {
	c, err := mysqldrv.ParseDSN(dsn)
	if err != nil || c.Passwd == "" {
		return dsn
	}
	c.Passwd = "****"
	return c.FormatDSN()
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
