package mapping

import "strings"

// Per-driver default type tables, keyed by the lowercased native type
// label each connector reports. Unknown types fall back to interface{}.

var mysqlTypes = map[string]string{
	"tinyint":    "int32",
	"smallint":   "int32",
	"mediumint":  "int32",
	"int":        "int32",
	"integer":    "int32",
	"year":       "int32",
	"bigint":     "int64",
	"float":      "float32",
	"double":     "float64",
	"decimal":    "float64",
	"numeric":    "float64",
	"varchar":    "string",
	"char":       "string",
	"text":       "string",
	"tinytext":   "string",
	"mediumtext": "string",
	"longtext":   "string",
	"enum":       "string",
	"set":        "string",
	"time":       "string",
	"datetime":   "time.Time",
	"timestamp":  "time.Time",
	"date":       "time.Time",
	"json":       "interface{}",
	"blob":       "[]byte",
	"tinyblob":   "[]byte",
	"mediumblob": "[]byte",
	"longblob":   "[]byte",
	"binary":     "[]byte",
	"varbinary":  "[]byte",
	"bit":        "[]byte",
}

var postgresTypes = map[string]string{
	"bool":        "bool",
	"int2":        "int16",
	"int4":        "int32",
	"int8":        "int64",
	"serial":      "int32",
	"bigserial":   "int64",
	"float4":      "float32",
	"float8":      "float64",
	"numeric":     "float64",
	"money":       "float64",
	"varchar":     "string",
	"bpchar":      "string",
	"text":        "string",
	"uuid":        "string",
	"name":        "string",
	"citext":      "string",
	"inet":        "string",
	"cidr":        "string",
	"time":        "string",
	"timetz":      "string",
	"interval":    "string",
	"timestamp":   "time.Time",
	"timestamptz": "time.Time",
	"date":        "time.Time",
	"json":        "interface{}",
	"jsonb":       "interface{}",
	"bytea":       "[]byte",
}

var mssqlTypes = map[string]string{
	"bit":              "bool",
	"tinyint":          "int32",
	"smallint":         "int32",
	"int":              "int32",
	"bigint":           "int64",
	"real":             "float32",
	"float":            "float64",
	"decimal":          "float64",
	"numeric":          "float64",
	"money":            "float64",
	"smallmoney":       "float64",
	"char":             "string",
	"varchar":          "string",
	"text":             "string",
	"nchar":            "string",
	"nvarchar":         "string",
	"ntext":            "string",
	"uniqueidentifier": "string",
	"xml":              "string",
	"time":             "string",
	"datetime":         "time.Time",
	"datetime2":        "time.Time",
	"smalldatetime":    "time.Time",
	"datetimeoffset":   "time.Time",
	"date":             "time.Time",
	"binary":           "[]byte",
	"varbinary":        "[]byte",
	"image":            "[]byte",
}

var sqliteTypes = map[string]string{
	"boolean":  "bool",
	"int":      "int64",
	"integer":  "int64",
	"tinyint":  "int64",
	"smallint": "int64",
	"bigint":   "int64",
	"real":     "float64",
	"double":   "float64",
	"float":    "float64",
	"numeric":  "float64",
	"decimal":  "float64",
	"char":     "string",
	"varchar":  "string",
	"nvarchar": "string",
	"text":     "string",
	"clob":     "string",
	"datetime": "time.Time",
	"date":     "time.Time",
	"blob":     "[]byte",
}

var snowflakeTypes = map[string]string{
	"boolean":       "bool",
	"number":        "float64",
	"decimal":       "float64",
	"numeric":       "float64",
	"int":           "int64",
	"integer":       "int64",
	"bigint":        "int64",
	"smallint":      "int64",
	"float":         "float64",
	"double":        "float64",
	"real":          "float64",
	"varchar":       "string",
	"char":          "string",
	"string":        "string",
	"text":          "string",
	"time":          "string",
	"date":          "time.Time",
	"datetime":      "time.Time",
	"timestamp":     "time.Time",
	"timestamp_ltz": "time.Time",
	"timestamp_ntz": "time.Time",
	"timestamp_tz":  "time.Time",
	"variant":       "interface{}",
	"object":        "interface{}",
	"array":         "interface{}",
	"binary":        "[]byte",
}

var driverTypes = map[string]map[string]string{
	"mysql":     mysqlTypes,
	"postgres":  postgresTypes,
	"mssql":     mssqlTypes,
	"sqlite":    sqliteTypes,
	"snowflake": snowflakeTypes,
}

// DefaultTypeMapper returns the built-in type mapper for a driver. Unknown
// drivers and unknown native types map to interface{}.
func DefaultTypeMapper(driver string) TypeMapper {
	table := driverTypes[driver]
	return func(typeName string) string {
		if mapped, ok := table[strings.ToLower(typeName)]; ok {
			return mapped
		}
		return "interface{}"
	}
}

// WithOverrides wraps a type mapper with user-supplied overrides keyed by
// the lowercased native type label.
func WithOverrides(base TypeMapper, overrides map[string]string) TypeMapper {
	if len(overrides) == 0 {
		return base
	}
	lowered := make(map[string]string, len(overrides))
	for k, v := range overrides {
		lowered[strings.ToLower(k)] = v
	}
	return func(typeName string) string {
		if mapped, ok := lowered[strings.ToLower(typeName)]; ok {
			return mapped
		}
		return base(typeName)
	}
}
