package sqldb

import (
	"strconv"
	"strings"
)

var PlaceholderPrefixForDBType = map[string]byte{
	"mysql":  '?',
	"pgsql":  '$',
	"mssql":  '@',
	"oracle": ':',
	"sqlite": 0, // NOTE: sqlite supports all of them
}

// ReplaceStaticPlaceholders numbers each `?` for dialects with ordinal placeholders ($1, $2, ...).
// `??` is left alone.
func ReplaceStaticPlaceholders(sql string, prefix byte) string {
	if prefix == '?' || prefix == 0 {
		return sql
	}
	var builder strings.Builder
	builder.Grow(len(sql) + 8)
	cnt := 1
	i := 0
	for i < len(sql) {
		if sql[i] == '?' {
			// Do Not Touch Dynamic Placeholders '??'
			if i+1 < len(sql) && sql[i+1] == '?' {
				builder.WriteByte('?')
				builder.WriteByte('?')
				i += 2
				continue
			}
			builder.WriteByte(prefix)
			builder.WriteString(strconv.Itoa(cnt))
			cnt++
		} else {
			builder.WriteByte(sql[i])
		}
		i++
	}
	return builder.String()
}
